package config

import "github.com/rs/zerolog"

// GetDefaultProjectConfig obtains a default configuration for a fuzzing project.
func GetDefaultProjectConfig() *ProjectConfig {
	projectConfig := &ProjectConfig{
		Fuzzing: FuzzingConfig{
			MaxCallNum:          10,
			AttemptLimit:        100,
			CoverageMode:        CoverageModeInstruction,
			ConcolicEnabled:     true,
			ConcolicWait:        5,
			RewardGainFactor:    2,
			PenaltyFactor:       2,
			ValidMutationBonus:  0.1,
			PathDiscoveryBonus:  1,
			ExploitBonus:        1,
			ExploitDetection:    false,
			BalanceBaseline:     "0",
			BackendEndpoint:     "127.0.0.1:8888",
			SeedDirectory:       "seeds",
			CoveragePersistence: false,
			SenderRetryLimit:    100,
			SeedBias:            0.5,
			MinCompilerVersion:  "",
			Logging: LoggingConfig{
				Level:                zerolog.InfoLevel,
				EnableConsoleLogging: true,
				LogDirectory:         "",
			},
		},
	}
	return projectConfig
}

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProjectConfig describes the configuration of an entire fuzzing project.
type ProjectConfig struct {
	// Fuzzing describes the configuration used in fuzzing campaigns.
	Fuzzing FuzzingConfig `json:"fuzzing"`
}

// FuzzingConfig describes the configuration options used by the fuzzing.Fuzzer.
type FuzzingConfig struct {
	// MaxCallNum describes the fixed maximum length of a transaction sequence. Unused positions in the sequence are
	// empty slots, not scheduled transactions.
	MaxCallNum int `json:"maxCallNum"`

	// AttemptLimit describes the number of steps after which a fuzzing episode is forcibly terminated.
	AttemptLimit int `json:"attemptLimit"`

	// CoverageMode selects the unit of coverage tracking: "coverage" tracks visited instruction program counters,
	// "path" tracks distinct execution path signatures.
	CoverageMode string `json:"coverageMode"`

	// ConcolicEnabled describes whether symbolic exploration may replace a mutation step when coverage stagnates.
	ConcolicEnabled bool `json:"concolicEnabled"`

	// ConcolicWait describes the initial number of stagnant steps to tolerate before escalating to symbolic
	// exploration. The escalation controller tunes this threshold during a run.
	ConcolicWait float64 `json:"concolicWait"`

	// RewardGainFactor scales how aggressively the escalation threshold shrinks after a successful symbolic step.
	RewardGainFactor float64 `json:"rewardGainFactor"`

	// PenaltyFactor scales how the escalation threshold grows while plain mutation is still gaining coverage.
	PenaltyFactor float64 `json:"penaltyFactor"`

	// ValidMutationBonus is a fixed reward added whenever a mutation step produced an executable candidate state.
	ValidMutationBonus float64 `json:"validMutationBonus"`

	// PathDiscoveryBonus is a fixed reward added whenever an execution discovered a previously unseen path or
	// coverage location.
	PathDiscoveryBonus float64 `json:"pathDiscoveryBonus"`

	// ExploitBonus is a fixed reward added whenever exploit detection observed aggregate account balances rising
	// beyond the configured baseline.
	ExploitBonus float64 `json:"exploitBonus"`

	// ExploitDetection describes whether aggregate balance comparisons should be performed after each step.
	ExploitDetection bool `json:"exploitDetection"`

	// BalanceBaseline is the aggregate account balance, as a decimal string, above which a balance increase is
	// treated as an exploit. Note this is a fixed configured baseline, not each account's own prior balance.
	BalanceBaseline string `json:"balanceBaseline"`

	// BackendEndpoint describes the address the registered execution backend should connect to. The engine itself
	// never dials it; it is passed through to the backend implementation.
	BackendEndpoint string `json:"backendEndpoint"`

	// SeedDirectory describes the directory where the engine writes its account seed file and, when persistence is
	// enabled, its warm-start coverage database.
	SeedDirectory string `json:"seedDirectory"`

	// CoveragePersistence describes whether per-contract visited sets are persisted to disk so that repeated runs
	// against the same contract warm-start their coverage tracking.
	CoveragePersistence bool `json:"coveragePersistence"`

	// SenderRetryLimit bounds retry-until-distinct resampling loops for sender and value mutations.
	SenderRetryLimit int `json:"senderRetryLimit"`

	// SeedBias describes the probability with which argument synthesis draws from the seed corpus instead of
	// generating a fresh random value, when seeds are available.
	SeedBias float64 `json:"seedBias"`

	// MinCompilerVersion, when non-empty, describes the minimum semantic version the backend's compiler must report
	// for a contract load to be accepted.
	MinCompilerVersion string `json:"minCompilerVersion"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// LoggingConfig describes the configuration options used for logging.
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	Level zerolog.Level `json:"level"`

	// EnableConsoleLogging describes whether console logging is enabled.
	EnableConsoleLogging bool `json:"enableConsoleLogging"`

	// LogDirectory describes the directory where structured log files will be written. If empty, no log files are
	// kept.
	LogDirectory string `json:"logDirectory"`
}

// CoverageMode values selectable through FuzzingConfig.CoverageMode.
const (
	// CoverageModeInstruction tracks visited instruction program counters.
	CoverageModeInstruction = "coverage"
	// CoverageModePath tracks distinct execution path signatures.
	CoverageModePath = "path"
)

// Validate examines the values set in the config and returns an error if any value is invalid or the combination of
// values set is invalid.
func (p *ProjectConfig) Validate() error {
	if p.Fuzzing.MaxCallNum <= 0 {
		return fmt.Errorf("invalid maxCallNum: %d (must be positive)", p.Fuzzing.MaxCallNum)
	}
	if p.Fuzzing.AttemptLimit <= 0 {
		return fmt.Errorf("invalid attemptLimit: %d (must be positive)", p.Fuzzing.AttemptLimit)
	}
	if p.Fuzzing.CoverageMode != CoverageModeInstruction && p.Fuzzing.CoverageMode != CoverageModePath {
		return fmt.Errorf("invalid coverageMode: %q", p.Fuzzing.CoverageMode)
	}
	if p.Fuzzing.ConcolicEnabled && p.Fuzzing.ConcolicWait < 1 {
		return fmt.Errorf("invalid concolicWait: %v (must be at least 1)", p.Fuzzing.ConcolicWait)
	}
	if p.Fuzzing.RewardGainFactor <= 0 || p.Fuzzing.PenaltyFactor <= 0 {
		return fmt.Errorf("escalation factors must be positive")
	}
	if p.Fuzzing.SeedBias < 0 || p.Fuzzing.SeedBias > 1 {
		return fmt.Errorf("invalid seedBias: %v (must be within [0, 1])", p.Fuzzing.SeedBias)
	}
	if p.Fuzzing.SenderRetryLimit <= 0 {
		return fmt.Errorf("invalid senderRetryLimit: %d (must be positive)", p.Fuzzing.SenderRetryLimit)
	}
	if p.Fuzzing.ExploitDetection {
		if _, err := decimal.NewFromString(p.Fuzzing.BalanceBaseline); err != nil {
			return fmt.Errorf("invalid balanceBaseline %q: %v", p.Fuzzing.BalanceBaseline, err)
		}
	}
	return nil
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	projectConfig := GetDefaultProjectConfig()
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

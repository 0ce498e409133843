package cmd

import (
	"fmt"

	"github.com/cinderfuzz/cinder/fuzzing/config"
	"github.com/spf13/cobra"
)

// addFuzzFlags adds the various flags for the fuzz command
func addFuzzFlags() error {
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	fuzzCmd.Flags().SortFlags = false

	// Config file
	fuzzCmd.Flags().String("config", "", "path to config file")

	// Target contract
	fuzzCmd.Flags().String("target", "", "path to the contract source file to fuzz")
	fuzzCmd.Flags().String("contract", "", "name of the contract within the target file")

	// Campaign episodes
	fuzzCmd.Flags().Int("episodes", DefaultCampaignEpisodes,
		fmt.Sprintf("number of fuzzing episodes to run (default is %d)", DefaultCampaignEpisodes))

	// Tx sequence length
	fuzzCmd.Flags().Int("seq-len", 0,
		fmt.Sprintf("fixed transaction sequence length (unless a config file is provided, default is %d)", defaultConfig.Fuzzing.MaxCallNum))

	// Episode step budget
	fuzzCmd.Flags().Int("attempt-limit", 0,
		fmt.Sprintf("number of steps after which an episode times out (unless a config file is provided, default is %d)", defaultConfig.Fuzzing.AttemptLimit))

	// Coverage mode
	fuzzCmd.Flags().String("coverage-mode", "",
		fmt.Sprintf("coverage tracking mode, %q or %q (unless a config file is provided, default is %q)", config.CoverageModeInstruction, config.CoverageModePath, defaultConfig.Fuzzing.CoverageMode))

	// Backend endpoint
	fuzzCmd.Flags().String("backend", "",
		fmt.Sprintf("address of the execution backend (unless a config file is provided, default is %q)", defaultConfig.Fuzzing.BackendEndpoint))

	// Seed directory
	fuzzCmd.Flags().String("seed-dir", "",
		fmt.Sprintf("directory path for the account seed file and coverage database (unless a config file is provided, default is %q)", defaultConfig.Fuzzing.SeedDirectory))

	// Symbolic escalation
	fuzzCmd.Flags().Bool("concolic", false,
		fmt.Sprintf("enable symbolic escalation on coverage stagnation (unless a config file is provided, default is %t)", defaultConfig.Fuzzing.ConcolicEnabled))

	// Exploit detection
	fuzzCmd.Flags().Bool("exploit-detection", false,
		fmt.Sprintf("enable aggregate balance exploit detection (unless a config file is provided, default is %t)", defaultConfig.Fuzzing.ExploitDetection))
	return nil
}

// updateProjectConfigWithFuzzFlags will update the given projectConfig with any CLI arguments that were provided to the fuzz command
func updateProjectConfigWithFuzzFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update sequence length
	if cmd.Flags().Changed("seq-len") {
		projectConfig.Fuzzing.MaxCallNum, err = cmd.Flags().GetInt("seq-len")
		if err != nil {
			return err
		}
	}

	// Update episode step budget
	if cmd.Flags().Changed("attempt-limit") {
		projectConfig.Fuzzing.AttemptLimit, err = cmd.Flags().GetInt("attempt-limit")
		if err != nil {
			return err
		}
	}

	// Update coverage mode
	if cmd.Flags().Changed("coverage-mode") {
		projectConfig.Fuzzing.CoverageMode, err = cmd.Flags().GetString("coverage-mode")
		if err != nil {
			return err
		}
	}

	// Update backend endpoint
	if cmd.Flags().Changed("backend") {
		projectConfig.Fuzzing.BackendEndpoint, err = cmd.Flags().GetString("backend")
		if err != nil {
			return err
		}
	}

	// Update seed directory
	if cmd.Flags().Changed("seed-dir") {
		projectConfig.Fuzzing.SeedDirectory, err = cmd.Flags().GetString("seed-dir")
		if err != nil {
			return err
		}
	}

	// Update symbolic escalation enablement
	if cmd.Flags().Changed("concolic") {
		projectConfig.Fuzzing.ConcolicEnabled, err = cmd.Flags().GetBool("concolic")
		if err != nil {
			return err
		}
	}

	// Update exploit detection enablement
	if cmd.Flags().Changed("exploit-detection") {
		projectConfig.Fuzzing.ExploitDetection, err = cmd.Flags().GetBool("exploit-detection")
		if err != nil {
			return err
		}
	}
	return nil
}

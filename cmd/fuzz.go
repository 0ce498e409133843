package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/cinderfuzz/cinder/cmd/exitcodes"
	"github.com/cinderfuzz/cinder/fuzzing"
	"github.com/cinderfuzz/cinder/fuzzing/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// fuzzCmd represents the command provider for fuzzing
var fuzzCmd = &cobra.Command{
	Use:               "fuzz",
	Short:             "Starts a fuzzing campaign",
	Long:              `Starts a fuzzing campaign`,
	Args:              cmdValidateFuzzArgs,
	ValidArgsFunction: cmdValidFuzzArgs,
	RunE:              cmdRunFuzz,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the fuzz command
	err := addFuzzFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the fuzz command", err)
	}

	// Add the fuzz command and its associated flags to the root command
	rootCmd.AddCommand(fuzzCmd)
}

// cmdValidFuzzArgs will return which flags and sub-commands are valid for dynamic completion for the fuzz command
func cmdValidFuzzArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateFuzzArgs makes sure that there are no positional arguments provided to the fuzz command
func cmdValidateFuzzArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("fuzz does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the fuzz command", err)
		return err
	}
	return nil
}

// cmdRunFuzz executes the CLI fuzz command: it resolves the project configuration, builds the engine around the
// registered collaborators, loads the target contract and drives a baseline random campaign.
func cmdRunFuzz(cmd *cobra.Command, args []string) error {
	if providers.Backend == nil || providers.StaticAnalyzer == nil || providers.Detector == nil {
		err := fmt.Errorf("no execution backend, static analyzer or detector registered; this build must register its collaborators with cmd.SetProviders before running fuzz")
		cmdLogger.Error("Failed to run the fuzz command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}

	// If --config was not used, look for the default config file in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the fuzz command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	var projectConfig *config.ProjectConfig
	_, existenceError := os.Stat(configPath)
	if existenceError == nil {
		cmdLogger.Info("Reading the configuration file at: ", configPath)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the fuzz command", err)
			return err
		}
	} else if configFlagUsed {
		// A config file was explicitly provided but could not be found.
		cmdLogger.Error("Failed to run the fuzz command", existenceError)
		return existenceError
	} else {
		cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration instead", configPath))
		projectConfig = config.GetDefaultProjectConfig()
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithFuzzFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}

	target, err := cmd.Flags().GetString("target")
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}
	contractName, err := cmd.Flags().GetString("contract")
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}
	if target == "" || contractName == "" {
		err = fmt.Errorf("fuzz requires both --target and --contract")
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}
	episodes, err := cmd.Flags().GetInt("episodes")
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}

	// Stop our fuzzing on keyboard interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fuzzer, err := fuzzing.NewFuzzer(ctx, *projectConfig, providers.Backend, providers.StaticAnalyzer, providers.Detector, providers.SymbolicExecutor)
	if err != nil {
		cmdLogger.Error("Failed to create the fuzzer", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer func() {
		if closeErr := fuzzer.Close(); closeErr != nil {
			cmdLogger.Error("Failed to close the fuzzer", closeErr)
		}
	}()

	if err = fuzzer.LoadContract(ctx, target, contractName); err != nil {
		cmdLogger.Error("Failed to load the target contract", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	randomProvider := rand.New(rand.NewSource(time.Now().UnixNano()))
	campaign := fuzzing.NewCampaign(fuzzer, episodes, randomProvider, cmdLogger.NewSubLogger("module", "campaign"))
	result, err := campaign.Run(ctx)
	if err != nil {
		cmdLogger.Error("Fuzzing campaign failed", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	cmdLogger.Info("Campaign finished: ", result.Episodes, " episodes, ", result.Steps, " steps, coverage ", result.Coverage)
	for _, finding := range result.Findings {
		cmdLogger.Info(finding.String())
	}

	// Reported findings get their own exit code so CI pipelines can gate on them.
	if len(result.Findings) > 0 {
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeFindingsReported)
	}
	return nil
}

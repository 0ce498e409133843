package cmd

import (
	"github.com/cinderfuzz/cinder/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cmdLogger is the logger used by the cmd package, created before a project configuration is available.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, true)

var rootCmd = &cobra.Command{
	Use:   "cinder",
	Short: "A coverage-guided smart contract bytecode fuzzing engine",
	Long:  "cinder is a coverage-guided, feedback-driven fuzzing engine for smart contract bytecode",
}

func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}

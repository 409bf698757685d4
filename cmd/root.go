package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/stigscore/pkg/config"
	"github.com/user/stigscore/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stigscore",
	Short: "Score XCCDF compliance scan results by STIG category",
	Long: `stigscore parses XCCDF 1.1/1.2 scan results (e.g. DISA SCC output),
extracts per-control pass/fail status and computes overall and CAT1/CAT2/CAT3
compliance scores against configurable thresholds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetDebug(DebugMode)
		if ConfigPath != "" {
			config.SetConfigPath(ConfigPath)
		}
		switch OutputFormat {
		case "json", "yaml", "text":
			return nil
		default:
			return fmt.Errorf("unknown output format %q (json, yaml, text)", OutputFormat)
		}
	},
}

var (
	DebugMode    bool
	OutputFormat string
	ConfigPath   string
)

// ExitError carries a process exit code along with the error that caused it.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&OutputFormat, "output", "o", "json", "Output format: json, yaml or text")
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config", "", "Config file (default ~/.stigscore/config.yaml)")
}

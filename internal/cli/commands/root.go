// Package commands provides CLI command implementations for mythic.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/csabika98/Mythic/internal/cli/ui"
)

var flagOutputFormat string

var rootCmd = &cobra.Command{
	Use:   "mythic",
	Short: "Wine bottle manager - run Windows programs in isolated prefixes",
	Long: `Mythic manages named wine prefixes ("bottles") and runs Windows
programs inside them. Each bottle is an isolated environment with its own
registry, drive layout and settings, so programs cannot step on each other.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(flagOutputFormat)
		if err != nil {
			return err
		}
		return ui.SetGlobalFormatter(format)
	},
}

func init() {
	RegisterLoggerFlags(rootCmd)
	rootCmd.PersistentFlags().StringVarP(&flagOutputFormat, "format", "f", "", "Output format (pretty, json)")
}

// Execute runs the root command. ctx cancellation (e.g. SIGINT) kills any
// wine process this invocation started.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

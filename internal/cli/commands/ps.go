package commands

import (
	"github.com/spf13/cobra"

	"github.com/csabika98/Mythic/internal/cli/ui"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List processes tracked by this invocation",
	Long: `List the process table entries of the current invocation. The table
is per-process, so entries only appear while a run started here is still
in flight.`,
	RunE: runPs,
}

var killCmd = &cobra.Command{
	Use:   "kill <id>",
	Short: "Kill a tracked process by identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runKill,
}

func init() {
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(killCmd)
}

func runPs(cmd *cobra.Command, args []string) error {
	entries := sharedTable.List()

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(entries)
	}
	ui.PrintProcessList(entries)
	return nil
}

func runKill(cmd *cobra.Command, args []string) error {
	if err := sharedTable.Kill(args[0]); err != nil {
		return err
	}
	ui.Success("Killed %s", args[0])
	return nil
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/csabika98/Mythic/internal/cli/ui"
	"github.com/csabika98/Mythic/internal/core/bottle"
)

var regCmd = &cobra.Command{
	Use:   "reg",
	Short: "Read and write a bottle's registry",
	Example: `  # Force win10 reporting
  mythic reg add Games 'HKEY_CURRENT_USER\Software\Wine' Version win10

  # Read back a value
  mythic reg query Games 'HKEY_CURRENT_USER\Software\Wine' Version`,
}

var regValueType string

var regAddCmd = &cobra.Command{
	Use:   "add <bottle> <key> <name> <value>",
	Short: "Write a registry value inside a bottle",
	Args:  cobra.ExactArgs(4),
	RunE:  runRegAdd,
}

var regQueryCmd = &cobra.Command{
	Use:   "query <bottle> <key> <name>",
	Short: "Read a registry value inside a bottle",
	Args:  cobra.ExactArgs(3),
	RunE:  runRegQuery,
}

func init() {
	regAddCmd.Flags().StringVarP(&regValueType, "type", "t", bottle.RegSz, "Registry value type (REG_SZ, REG_DWORD)")

	regCmd.AddCommand(regAddCmd)
	regCmd.AddCommand(regQueryCmd)
	rootCmd.AddCommand(regCmd)
}

func runRegAdd(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	b, err := manager.Bottle(ctx, args[0])
	if err != nil {
		return err
	}

	if err := manager.AddRegistryKey(ctx, b, args[1], args[2], args[3], regValueType); err != nil {
		return err
	}

	ui.Success("Wrote %s\\%s in %s", args[1], args[2], b.Name)
	return nil
}

func runRegQuery(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	b, err := manager.Bottle(ctx, args[0])
	if err != nil {
		return err
	}

	out, err := manager.QueryRegistryKey(ctx, b, args[1], args[2])
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]string{
			"bottle": b.Name,
			"key":    args[1],
			"name":   args[2],
			"output": out,
		})
	}
	ui.OutputLine("%s", out)
	return nil
}

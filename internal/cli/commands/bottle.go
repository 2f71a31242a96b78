package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csabika98/Mythic/internal/cli/ui"
	"github.com/csabika98/Mythic/internal/core/bottle"
)

var bottleCmd = &cobra.Command{
	Use:   "bottle",
	Short: "Manage wine bottles",
	Long:  "Create, inspect and configure the named wine prefixes mythic manages.",
	Example: `  # Create and boot a bottle with esync enabled
  mythic bottle create Games --esync

  # List recorded bottles
  mythic bottle list

  # Check whether a bottle's prefix actually exists on disk
  mythic bottle exists Games

  # Toggle high-dpi rendering
  mythic bottle retina Games on`,
}

var bottleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded bottles",
	RunE:  runBottleList,
}

var (
	createDXVK   bool
	createEsync  bool
	createRetina bool
)

var bottleCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create and boot a bottle",
	Long: `Create a bottle named <name> and initialize its wine prefix.

Settings not given as flags fall back to the stored defaults. Creating an
already-recorded bottle re-runs initialization, which is harmless.`,
	Args: cobra.ExactArgs(1),
	RunE: runBottleCreate,
}

var bottleExistsCmd = &cobra.Command{
	Use:   "exists <name>",
	Short: "Check whether a bottle's prefix exists on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runBottleExists,
}

var bottleRetinaCmd = &cobra.Command{
	Use:   "retina <name> <on|off>",
	Short: "Toggle high-dpi rendering for a bottle",
	Args:  cobra.ExactArgs(2),
	RunE:  runBottleRetina,
}

func init() {
	bottleCreateCmd.Flags().BoolVar(&createDXVK, "dxvk", false, "Translate Direct3D to Vulkan")
	bottleCreateCmd.Flags().BoolVar(&createEsync, "esync", false, "Use eventfd-based synchronization")
	bottleCreateCmd.Flags().BoolVar(&createRetina, "retina", false, "Render at native pixel density")

	bottleCmd.AddCommand(bottleListCmd)
	bottleCmd.AddCommand(bottleCreateCmd)
	bottleCmd.AddCommand(bottleExistsCmd)
	bottleCmd.AddCommand(bottleRetinaCmd)
	rootCmd.AddCommand(bottleCmd)
}

func runBottleList(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}

	bottles, err := manager.Store().List(cmd.Context())
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(bottles)
	}
	ui.PrintBottleList(bottles)
	return nil
}

func runBottleCreate(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	name := args[0]

	settings, err := manager.Store().Defaults(ctx)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dxvk") {
		settings.DXVK = createDXVK
	}
	if cmd.Flags().Changed("esync") {
		settings.Esync = createEsync
	}
	if cmd.Flags().Changed("retina") {
		settings.Retina = createRetina
	}

	ui.Info("Booting bottle %s...", name)
	b, err := manager.Boot(ctx, name, settings).Result(ctx)
	if err != nil {
		return err
	}

	ui.Success("Bottle %s ready", b.Name)
	if !ui.GlobalFormatter.IsJSON() {
		ui.PrintBottle(b)
		return nil
	}
	return ui.GlobalFormatter.Output(b)
}

func runBottleExists(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}
	name := args[0]

	b, err := manager.Bottle(cmd.Context(), name)
	exists := err == nil && bottle.Exists(b.Path)
	if err != nil && !errors.Is(err, bottle.ErrNotFound) {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]interface{}{
			"name":   name,
			"exists": exists,
		})
	}
	ui.OutputLine("%t", exists)
	return nil
}

func runBottleRetina(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	name := args[0]

	var enabled bool
	switch args[1] {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[1])
	}

	b, err := manager.Bottle(ctx, name)
	if err != nil {
		return err
	}

	if err := manager.SetRetina(ctx, b, enabled); err != nil {
		return err
	}

	ui.Success("Retina mode %s for %s", args[1], name)
	return nil
}

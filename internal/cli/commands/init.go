package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csabika98/Mythic/internal/cli/ui"
	"github.com/csabika98/Mythic/internal/core/config"
	"github.com/csabika98/Mythic/internal/core/wine"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mythic configuration",
	Long:  "Write the default configuration and create the bottle container directory",
	RunE:  runInit,
}

var forceInit bool

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configManager := config.NewManager()

	if configManager.IsInitialized() && !forceInit {
		return fmt.Errorf("already initialized at %s (use --force to overwrite)", configManager.ConfigPath())
	}

	cfg := config.DefaultConfig()
	if err := configManager.Save(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Bottles.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create bottles directory: %w", err)
	}

	ui.Success("Initialized mythic")
	ui.OutputLine("  Config:  %s", configManager.ConfigPath())
	ui.OutputLine("  Bottles: %s", cfg.Bottles.Directory)

	runtime := wine.New(cfg.Wine.Binary, sharedTable, CreateQuietLogger("wine"))
	if !runtime.Installed() {
		ui.Warning("wine binary %q not found; install wine or set wine.binary in the config", cfg.Wine.Binary)
	}

	return nil
}

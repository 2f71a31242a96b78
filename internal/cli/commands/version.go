package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/csabika98/Mythic/internal/cli/ui"
)

// Version information - these will be set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		wineVersion := wineRuntimeVersion(cmd)

		if ui.GlobalFormatter.IsJSON() {
			return ui.GlobalFormatter.Output(map[string]string{
				"version":     Version,
				"gitCommit":   GitCommit,
				"buildDate":   BuildDate,
				"goVersion":   runtime.Version(),
				"os":          runtime.GOOS,
				"arch":        runtime.GOARCH,
				"wineVersion": wineVersion,
			})
		}

		ui.OutputLine("mythic version %s", Version)
		ui.OutputLine("  Git commit: %s", GitCommit)
		ui.OutputLine("  Build date: %s", BuildDate)
		ui.OutputLine("  Go version: %s", runtime.Version())
		ui.OutputLine("  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH)
		ui.OutputLine("  Wine:       %s", wineVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// wineRuntimeVersion reports the configured wine's version, degrading to
// a placeholder when mythic is uninitialized or wine is missing.
func wineRuntimeVersion(cmd *cobra.Command) string {
	manager, err := createManager()
	if err != nil {
		return "unknown"
	}
	version, err := manager.Runtime().Version(cmd.Context())
	if err != nil {
		return "not installed"
	}
	return version
}

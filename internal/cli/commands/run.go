package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csabika98/Mythic/internal/core/wine"
)

var (
	runIdentifier string
	runEnvPairs   []string
	runInput      string
	runTrigger    string
)

var runCmd = &cobra.Command{
	Use:   "run <bottle> [--] <program> [args...]",
	Short: "Run a Windows program inside a bottle",
	Long: `Run a program inside the named bottle, streaming its output to the
terminal. The process is tracked in the invocation's process table under
--id (or a generated identifier) for the duration of the run.

--input writes to the program's stdin. Without --trigger it is written
immediately; with --trigger it is held back until the given substring
appears on the chosen stream, then written once. Either way stdin is
closed afterwards so programs reading to EOF terminate.`,
	Example: `  # Run a program
  mythic run Games -- notepad.exe

  # Pass environment overrides
  mythic run Games -e LANG=de_DE.UTF-8 -- setup.exe

  # Answer a password prompt on stdout
  mythic run Games --trigger "Password:" --input "hunter2
" -- installer.exe`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runIdentifier, "id", "", "Process table identifier (generated when empty)")
	runCmd.Flags().StringArrayVarP(&runEnvPairs, "env", "e", nil, "Environment variables (KEY=VALUE)")
	runCmd.Flags().StringVar(&runInput, "input", "", "Text written to the program's stdin")
	runCmd.Flags().StringVar(&runTrigger, "trigger", "", "Hold --input until this substring appears ([stdout:|stderr:]text)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	b, err := manager.Bottle(ctx, args[0])
	if err != nil {
		return err
	}

	env, err := parseEnvVars(runEnvPairs)
	if err != nil {
		return err
	}
	trigger, err := parseTrigger(runTrigger)
	if err != nil {
		return err
	}
	if trigger != nil && runInput == "" {
		return fmt.Errorf("--trigger requires --input")
	}

	wineCmd := b.Command(runIdentifier, args[1:], env)
	wineCmd.Input = runInput
	wineCmd.Trigger = trigger
	wineCmd.Live = &wine.LiveSink{
		OnStdout: func(chunk string) { fmt.Fprint(os.Stdout, chunk) },
		OnStderr: func(chunk string) { fmt.Fprint(os.Stderr, chunk) },
	}

	_, _, err = manager.Runtime().Execute(ctx, wineCmd)
	return err
}

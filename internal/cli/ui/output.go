package ui

import (
	"fmt"
	"os"

	"github.com/csabika98/Mythic/internal/core/bottle"
	"github.com/csabika98/Mythic/internal/core/wine"
)

// Print functions for consistent output

func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// OutputLine prints a formatted line to stdout
func OutputLine(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// BottleStatus renders the bottle's lifecycle state for display. A
// recorded entry whose prefix never materialized shows as "missing".
func BottleStatus(b bottle.Bottle) string {
	switch {
	case b.Busy:
		return WarningStyle.Render("busy")
	case !bottle.Exists(b.Path):
		return DimStyle.Render("missing")
	default:
		return SuccessStyle.Render("ready")
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return DimStyle.Render("off")
}

// PrintBottle displays a single bottle with formatting
func PrintBottle(b bottle.Bottle) {
	fmt.Printf("%s %s %s\n", BottleIcon, BoldStyle.Render(b.Name), BottleStatus(b))
	fmt.Printf("   %s %s\n", DimStyle.Render("Path:"), b.Path)
	fmt.Printf("   %s dxvk=%s esync=%s retina=%s\n",
		DimStyle.Render("Settings:"),
		onOff(b.Settings.DXVK),
		onOff(b.Settings.Esync),
		onOff(b.Settings.Retina),
	)
}

// PrintBottleList displays a list of bottles using a table
func PrintBottleList(bottles []bottle.Bottle) {
	if len(bottles) == 0 {
		Info("No bottles found")
		return
	}

	tbl := NewTable("NAME", "STATUS", "DXVK", "ESYNC", "RETINA", "PATH")
	for _, b := range bottles {
		tbl.AddRow(b.Name, BottleStatus(b),
			onOff(b.Settings.DXVK),
			onOff(b.Settings.Esync),
			onOff(b.Settings.Retina),
			b.Path,
		)
	}

	PrintSectionHeader(BottleIcon, "Bottles", len(bottles))
	tbl.Print()
	fmt.Println()
}

// PrintProcessList displays the supervisor's live process table
func PrintProcessList(entries []wine.Entry) {
	if len(entries) == 0 {
		Info("No processes running")
		return
	}

	tbl := NewTable("IDENTIFIER", "PID")
	for _, e := range entries {
		pid := fmt.Sprintf("%d", e.PID)
		if e.PID < 0 {
			pid = DimStyle.Render("-")
		}
		tbl.AddRow(e.Identifier, pid)
	}

	PrintSectionHeader(ProcessIcon, "Processes", len(entries))
	tbl.Print()
	fmt.Println()
}

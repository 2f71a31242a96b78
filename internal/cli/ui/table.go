package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

// NewTable creates a new table with consistent styling
func NewTable(headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	// Only the first column (the name) is bold
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return BoldStyle.Render(fmt.Sprintf(format, vals...))
	})

	tbl.WithPadding(2)

	// lipgloss knows how to measure strings carrying ANSI codes
	tbl.WithWidthFunc(lipgloss.Width)

	return tbl
}

// PrintSectionHeader prints a consistent section header
func PrintSectionHeader(icon string, title string, count int) {
	OutputLine("\n%s %s (%d)", icon, title, count)
}

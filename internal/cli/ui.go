package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pixelup/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached = lipgloss.NewStyle().Foreground(colorGreen)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconCached  = "cached"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Run Output
// =============================================================================

// outcomeLine renders one entry of the action log.
func outcomeLine(o pipeline.Outcome) string {
	msg := o.Message()
	switch o.Action {
	case pipeline.ActionUpgraded:
		line := styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf("upgraded %s kind=%s", o.Path, o.Kind)
		if o.Cached {
			line += " " + StyleDim.Render("·") + " " + styleCached.Render(iconCached)
		}
		return line
	case pipeline.ActionPlanned:
		return styleIconInfo.Render(iconInfo) + " " + msg
	case pipeline.ActionSkipped:
		return styleIconInfo.Render(iconInfo) + " " + StyleDim.Render(msg)
	case pipeline.ActionMissing:
		return styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg)
	case pipeline.ActionFailed:
		return styleIconError.Render(iconError) + " " + msg
	}
	return msg
}

// summaryTable renders the final counts.
func summaryTable(s *pipeline.Summary) string {
	rows := [][]string{}
	if s.DryRun {
		rows = append(rows, []string{"Planned", strconv.Itoa(s.Planned)})
	} else {
		rows = append(rows,
			[]string{"Upgraded", strconv.Itoa(s.Upgraded)},
			[]string{"Cached", strconv.Itoa(s.Cached)},
			[]string{"Skipped", strconv.Itoa(s.Skipped)},
		)
	}
	rows = append(rows,
		[]string{"Missing", strconv.Itoa(len(s.Missing))},
		[]string{"Failed", strconv.Itoa(len(s.Failed))},
	)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Result", "Assets").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 1 {
				return styleCell.Foreground(colorCyan)
			}
			return styleCell.Foreground(colorGray)
		}).
		String()
}

// printSummary prints the action log, the summary table and the summary
// line.
func printSummary(s *pipeline.Summary) {
	for _, rej := range s.Rejected {
		printWarning("registry entry %s rejected: %s", rej.ID, rej.Reason)
	}
	for _, u := range s.Unreadable {
		printWarning("cannot read %s, skipped", u.Path)
	}
	if s.Empty() {
		printInfo("No targets matched.")
		return
	}
	for _, o := range s.Outcomes {
		fmt.Println(outcomeLine(o))
	}
	fmt.Println(summaryTable(s))
	printSuccess("%s", s.String())
	printDetail("run %s", s.RunID)
}

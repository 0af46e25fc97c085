package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/xxld0125/low-code-ai-sub004/pkg/rules"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary accents
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// printOutcome writes a validation outcome as a styled report.
func printOutcome(w io.Writer, out rules.Outcome) {
	if out.IsValid && len(out.Warnings) == 0 {
		fmt.Fprintln(w, styleSuccess.Render(iconSuccess+" page is valid"))
		return
	}

	for _, e := range out.Errors {
		line := fmt.Sprintf("%s [%s] %s", iconError, e.Code, e.Message)
		if e.ComponentID != "" {
			line += styleDim.Render(fmt.Sprintf("  (%s)", e.ComponentID))
		}
		fmt.Fprintln(w, styleError.Render(line))
	}
	for _, warn := range out.Warnings {
		line := fmt.Sprintf("%s [%s] %s", iconWarning, warn.Code, warn.Message)
		if warn.Suggestion != "" {
			line += styleDim.Render("  hint: " + warn.Suggestion)
		}
		fmt.Fprintln(w, styleWarning.Render(line))
	}
	for _, s := range out.Suggestions {
		fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("%s %s: %s", iconInfo, s.Type, s.Description)))
	}
}

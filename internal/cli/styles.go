// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5FB3B3")
	// SuccessColor indicates healthy figures (income, under budget).
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates budgets nearing their ceiling.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates over-budget or negative figures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats income and under-budget figures.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats budgets running hot.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats over-budget and negative figures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))
)

// FormatAmount renders a money amount with two decimals, colored by sign.
func FormatAmount(amount float64) string {
	text := fmt.Sprintf("%.2f", amount)
	if amount < 0 {
		return ErrorStyle.Render(text)
	}
	return SuccessStyle.Render(text)
}

// ProgressBar renders a fixed-width budget usage bar. Percentages at or
// above 100 fill the bar and switch to the error color; 80 and up warns.
func ProgressBar(percentage float64, width int) string {
	if width <= 0 {
		width = 20
	}

	filled := int(percentage / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percentage >= 100:
		return ErrorStyle.Render(bar)
	case percentage >= 80:
		return WarningStyle.Render(bar)
	default:
		return SuccessStyle.Render(bar)
	}
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

func RiskColor(risk domain.RiskLevel) lipgloss.Style {
	switch risk {
	case domain.RiskHigh:
		return StyleRed
	case domain.RiskMedium:
		return StyleYellow
	case domain.RiskLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RiskIndicator returns a colored risk indicator such as "● HIGH".
func RiskIndicator(risk domain.RiskLevel) string {
	if risk == "" {
		risk = domain.RiskUnknown
	}
	return RiskColor(risk).Render("● " + strings.ToUpper(string(risk)))
}

// StateBadge renders a profile state as a readable label.
func StateBadge(state domain.ProfileState) string {
	label := strings.ReplaceAll(string(state), "_", " ")
	switch state {
	case domain.StateStressed:
		return StyleRed.Render("▲ " + label)
	case domain.StateNeedsSupport:
		return StyleYellow.Render("◆ " + label)
	case domain.StateInactive:
		return StyleDim.Render("○ " + label)
	case domain.StateActive:
		return StyleGreen.Render("● " + label)
	default:
		return StyleBlue.Render("● " + label)
	}
}

func TrendIndicator(trend domain.Trend) string {
	switch trend {
	case domain.TrendImproving:
		return StyleGreen.Render("↑ improving")
	case domain.TrendDeclining:
		return StyleRed.Render("↓ declining")
	case domain.TrendStable:
		return StyleBlue.Render("→ stable")
	default:
		return StyleDim.Render("? unknown")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

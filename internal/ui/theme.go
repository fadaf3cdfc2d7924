package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Header   lipgloss.Style
	Prompt   lipgloss.Style
	Hint     lipgloss.Style
	Pass     lipgloss.Style
	Fuzzy    lipgloss.Style
	Partial  lipgloss.Style
	Fail     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Feedback lipgloss.Style
	Summary  lipgloss.Style
}

func DefaultTheme() Theme {
	mint := lipgloss.Color("#67F0A8")
	amber := lipgloss.Color("#FFC857")
	brick := lipgloss.Color("#FF6F91")
	blue := lipgloss.Color("#5EEBFF")
	powder := lipgloss.Color("#EAF2FF")
	ink := lipgloss.Color("#0E1420")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().
			Foreground(powder).
			Bold(true),
		Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9CAAC6")).Italic(true),
		Pass:    lipgloss.NewStyle().Foreground(mint).Bold(true),
		Fuzzy:   lipgloss.NewStyle().Foreground(amber).Bold(true),
		Partial: lipgloss.NewStyle().Foreground(amber),
		Fail:    lipgloss.NewStyle().Foreground(brick).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9CAAC6")),
		Accent:  lipgloss.NewStyle().Foreground(blue).Bold(true),
		Feedback: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		Summary: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(1, 2),
	}
}

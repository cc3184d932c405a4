// Package ui provides the terminal user interface for the mouse mover.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C27C0E", Dark: "#F2B233"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// progress bar gradient endpoints
const (
	gradientStart = "#7D56F4"
	gradientEnd   = "#43BF6D"
)

// Style represents a collection of styles used in the application
type Style struct {
	Title        lipgloss.Style
	ActiveStatus lipgloss.Style
	IdleStatus   lipgloss.Style
	Selected     lipgloss.Style
	Unselected   lipgloss.Style
	InputBox     lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Health       map[string]lipgloss.Style
	Help         lipgloss.Style
	Error        lipgloss.Style
	Countdown    lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		ActiveStatus: base.
			Foreground(defaultColors.Special),

		IdleStatus: base.
			Foreground(defaultColors.Subtle),

		Selected: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Unselected: base,

		InputBox: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Highlight).
			Padding(0, 1),

		Label: base.
			Width(12).
			Foreground(defaultColors.Subtle),

		Value: lipgloss.NewStyle().
			Bold(true),

		Health: map[string]lipgloss.Style{
			"ok":      lipgloss.NewStyle().Foreground(defaultColors.Special),
			"unknown": lipgloss.NewStyle().Foreground(defaultColors.Warning),
			"failing": lipgloss.NewStyle().Foreground(defaultColors.Error),
		},

		Help: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Subtle).
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()

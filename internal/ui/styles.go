package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for errors, price drops
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorBorder    = "238" // Dark gray - for unselected widget borders
	ColorWarning   = "208" // Orange - for move/resize mode
	ColorGain      = "42"  // Green - for price gains
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title   lipgloss.Style // Bold accent color - for main titles
	Error   lipgloss.Style // Inline widget errors
	Box     lipgloss.Style // Compact modal box with rounded border
	Hint    lipgloss.Style // Help/hint text (muted color)
	Muted   lipgloss.Style
	Normal  lipgloss.Style
	Status  lipgloss.Style // Status indicators (accent color)
	Empty   lipgloss.Style // Empty state text (muted, italic)
	Gain    lipgloss.Style
	Loss    lipgloss.Style
	Section lipgloss.Style // Bold highlight - for totals and figures

	// Widget frames
	Widget         lipgloss.Style
	WidgetSelected lipgloss.Style
	WidgetMoving   lipgloss.Style
	WidgetTitle    lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Gain: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorGain)),
	Loss: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Widget: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)),
	WidgetSelected: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)),
	WidgetMoving: lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(ColorWarning)),
	WidgetTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
}

// NewCompactListDelegate returns a delegate with zero spacing and shared styles.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.ShowDescription = false
	d.Styles.SelectedTitle = Styles.Section
	d.Styles.SelectedDesc = Styles.Section
	d.Styles.NormalTitle = Styles.Muted
	d.Styles.NormalDesc = Styles.Muted
	return d
}

// tableStyles returns read-only table styles: no row is highlighted.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	return s
}

// changeStyle picks the gain or loss style by sign.
func changeStyle(negative bool) lipgloss.Style {
	if negative {
		return Styles.Loss
	}
	return Styles.Gain
}

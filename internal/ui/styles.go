package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Leaf greens on a dark soil background.
var (
	ColorLeaf    = lipgloss.Color("#7FB069")
	ColorMoss    = lipgloss.Color("#3D5A3A")
	ColorSoil    = lipgloss.Color("#18201A")
	ColorStone   = lipgloss.Color("#8A968C")
	ColorText    = lipgloss.Color("#DCE6D8")
	ColorRowAlt  = lipgloss.Color("#202A22")
	ColorGreen   = lipgloss.Color("#a6e3a1")
	ColorRed     = lipgloss.Color("#f38ba8")
	ColorYellow  = lipgloss.Color("#f9e2af")
	ColorBlue    = lipgloss.Color("#89b4fa")
	ColorMuted   = ColorStone
	borderMuted  = lipgloss.NormalBorder()
	borderDialog = lipgloss.RoundedBorder()
)

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorLeaf).Bold(true).Padding(0, 1)

	TitleStyle = HeaderStyle.
			BorderStyle(borderMuted).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	TableHeaderStyle = HeaderStyle.Background(ColorMoss)
	SelectedRowStyle = lipgloss.NewStyle().Foreground(ColorSoil).Background(ColorLeaf)
	NormalRowStyle   = lipgloss.NewStyle().Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(borderMuted).
			BorderTop(true).
			BorderForeground(ColorMuted)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorLeaf)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle      = lipgloss.NewStyle().Foreground(ColorRed).Padding(0, 1)
	SuccessStyle    = lipgloss.NewStyle().Foreground(ColorGreen).Padding(0, 1)
	FieldErrorStyle = lipgloss.NewStyle().Foreground(ColorRed)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLeaf).Bold(true)
	InputStyle = lipgloss.NewStyle().Foreground(ColorText).Background(ColorMoss).Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(borderMuted).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	DialogStyle = PanelStyle.
			BorderStyle(borderDialog).
			BorderForeground(ColorLeaf)

	StatCardStyle = PanelStyle.Padding(0, 2).Align(lipgloss.Center)

	BreadcrumbStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	BreadcrumbActiveStyle = lipgloss.NewStyle().Foreground(ColorLeaf)

	EmptyStateStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Padding(2, 4)
	StatusBarStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
)

// statusColor picks the colour of a status badge from its raw value.
func statusColor(status string) lipgloss.Color {
	switch status {
	case "completed", "resolved", "fulfilled", "matched":
		return ColorGreen
	case "scheduled", "upcoming", "requested":
		return ColorBlue
	case "in_progress", "ongoing", "pending", "open", "available":
		return ColorYellow
	case "rejected", "cancelled", "closed":
		return ColorRed
	}
	return ColorMuted
}

func renderStatus(status, label string) string {
	return lipgloss.NewStyle().Foreground(statusColor(status)).Render(label)
}

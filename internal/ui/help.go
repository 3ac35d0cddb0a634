package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderFormHelp(width)
	}

	switch screen {
	case model.ScreenPickupDetail:
		return renderPickupDetailHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

// renderTabHelp lists the keys that do something on the given tab.
func renderTabHelp(tab model.Tab, width int) string {
	keys := []string{helpKey("←/→ 1-8", "tabs")}
	switch tab {
	case model.TabOverview:
		keys = append(keys,
			helpKey("p", "schedule pickup"),
			helpKey("D", "donate"),
			helpKey("i", "raise issue"),
			helpKey("h", "seek help"),
		)
	case model.TabPickups:
		keys = append(keys,
			helpKey("j/k", "navigate"),
			helpKey("f", "upcoming/completed/cancelled"),
			helpKey("enter", "timeline"),
			helpKey("a", "schedule"),
		)
	case model.TabDonations:
		keys = append(keys,
			helpKey("j/k", "navigate"),
			helpKey("f", "status"),
			helpKey("a/D", "donate"),
		)
	case model.TabEvents:
		keys = append(keys,
			helpKey("j/k", "navigate"),
			helpKey("f", "status"),
			helpKey("J", "join event"),
		)
	case model.TabIssues:
		keys = append(keys,
			helpKey("j/k", "navigate"),
			helpKey("f", "status"),
			helpKey("a", "raise issue"),
		)
	case model.TabHelp:
		keys = append(keys,
			helpKey("j/k", "navigate"),
			helpKey("f", "status"),
			helpKey("a", "ask for help"),
		)
	case model.TabLeaderboard:
		keys = append(keys,
			helpKey("j/k", "navigate"),
			helpKey("s/S", "sort"),
		)
	case model.TabFeedback:
		keys = append(keys, helpKey("a", "give feedback"))
	}
	keys = append(keys,
		helpKey("r", "refresh"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	)
	return renderHelpLine(keys, width)
}

func renderPickupDetailHelp(width int) string {
	keys := []string{
		helpKey("b/esc", "back"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab/↓", "next field"),
		helpKey("shift+tab/↑", "prev field"),
		helpKey("←/→ space", "choose"),
		helpKey("ctrl+s", "submit"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"← / → / [ / ]", "Previous / next tab"},
			{"1-8", "Jump to tab"},
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"tab / shift+tab", "Cycle active column"},
			{"/ then 1-9", "Jump to column"},
			{"s / S", "Sort active column asc/desc"},
			{"c / C", "Hide active column / show all"},
			{"n / N", "Filter by selected value / clear"},
			{"f", "Cycle status filter"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d", "Half page down"},
			{"ctrl+u", "Half page up"},
			{"r", "Refresh (retry after an error)"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Actions"),
		helpSection([]helpItem{
			{"p", "Schedule a waste pickup"},
			{"D", "Donate items"},
			{"i", "Raise an issue"},
			{"h", "Seek community help"},
			{"J", "Join the selected event (Events tab)"},
			{"a", "Add on the current tab (feedback on Feedback)"},
			{"enter", "Pickup timeline (Pickups tab)"},
		}),
		titleSection("Forms"),
		helpSection([]helpItem{
			{"tab / ↓ / enter", "Next field"},
			{"shift+tab / ↑", "Previous field"},
			{"← / → / space", "Change a choice or toggle"},
			{"ctrl+s", "Submit"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}

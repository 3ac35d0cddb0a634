package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/actions"
	"greenpath/internal/model"
)

const donateQuote = `"One person's clutter is another's treasure.
Donate your unused items and spread joy."`

var whyDonate = []string{
	"Help families and children in need.",
	"Reduce clutter and promote sustainability.",
	"Give items a second life instead of ending up in landfills.",
	"Support community development and resource sharing.",
}

// donatePage is the full-page donation request form. It stays open after a
// successful submission with its fields reset.
type donatePage struct {
	form *formView[actions.DonationValues, model.Donation]
}

func newDonatePage(d actions.Deps) *donatePage {
	return &donatePage{form: newDonationForm(d)}
}

func (p *donatePage) View(width, height int) string {
	hero := lipgloss.JoinVertical(lipgloss.Center,
		HeaderStyle.Render("Donate Now"),
		HelpDescStyle.Italic(true).Render(donateQuote),
	)
	intro := NormalRowStyle.Render("Fill out the form below and we'll contact you to arrange a pickup.")

	formWidth := width - 6
	showSide := width >= 110
	if showSide {
		formWidth = width*2/3 - 6
	}
	body := PanelStyle.Width(formWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			TitleStyle.Render("Donation Details"),
			"",
			p.form.View(formWidth-6, height-12),
		),
	)
	if showSide {
		var lines []string
		for _, w := range whyDonate {
			lines = append(lines, "• "+w)
		}
		side := PanelStyle.Width(width - formWidth - 10).Render(lipgloss.JoinVertical(lipgloss.Left,
			LabelStyle.Render("Why Donate?"),
			"",
			HelpDescStyle.Render("Your unused items can make a big difference in someone's life."),
			"",
			NormalRowStyle.Render(strings.Join(lines, "\n")),
		))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", side)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, hero),
		"",
		intro,
		body,
	)
}

// DonateModel runs the donation page on its own.
type DonateModel struct {
	page   *donatePage
	banner banner
	width  int
	height int
	quit   key.Binding
}

// NewDonateModel creates the standalone donation page.
func NewDonateModel(d actions.Deps) DonateModel {
	d = withDefaults(d)
	return DonateModel{
		page: newDonatePage(d),
		quit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (m DonateModel) Init() tea.Cmd {
	return nil
}

func (m DonateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			return m, tea.Quit
		}
		return m, m.page.form.Update(msg)

	case model.FormCancelledMsg:
		if m.page.form.Submitting() {
			return m, nil
		}
		return m, tea.Quit

	case submitDoneMsg:
		m.page.form.Finish(msg)
		return m, m.banner.show(msg.notice)

	case model.ClearNoticeMsg:
		m.banner.clear(msg)
		return m, nil

	case spinner.TickMsg:
		return m, m.page.form.Tick(msg)
	}
	return m, nil
}

func (m DonateModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	help := RenderHelp(model.ScreenDonate, model.ModeInsert, m.width)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.page.View(m.width, m.height-4),
		m.banner.View(),
		help,
	)
}

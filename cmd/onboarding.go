package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/config"
	"greenpath/internal/form"
	"greenpath/internal/ui"
	"greenpath/internal/validate"
)

// setupValues is what first-run setup asks for.
type setupValues struct {
	BaseURL  string `form:"baseURL" validate:"required,url" msg:"Enter the full backend URL, e.g. http://localhost:8080"`
	FullName string `form:"fullName" validate:"min=2" msg:"Name must be at least 2 characters"`
	Email    string `form:"email" validate:"email" msg:"Please enter a valid email address"`
	Phone    string `form:"phone" validate:"phone" msg:"Please enter a valid phone number"`
	UserID   string `form:"userID" validate:"required,numeric" msg:"Enter your numeric Green Path user id"`
}

func (v setupValues) settings() (config.Settings, error) {
	id, err := strconv.ParseInt(v.UserID, 10, 64)
	if err != nil {
		return config.Settings{}, fmt.Errorf("invalid user id %q: %w", v.UserID, err)
	}
	return config.Settings{
		BaseURL: strings.TrimSuffix(v.BaseURL, "/"),
		Profile: config.ProfileConfig{
			UserID:   id,
			FullName: v.FullName,
			Email:    v.Email,
			Phone:    v.Phone,
		},
	}, nil
}

// shouldRunOnboarding is true on first run in an interactive terminal.
func shouldRunOnboarding(path string) bool {
	if config.Exists(path) {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type onboardingStep int

const (
	stepBackend onboardingStep = iota
	stepProfile
	stepDone
)

type setupField struct {
	name  string
	label string
	step  onboardingStep
}

var setupFields = []setupField{
	{"baseURL", "Backend URL", stepBackend},
	{"fullName", "Full Name", stepProfile},
	{"email", "Email", stepProfile},
	{"phone", "Phone", stepProfile},
	{"userID", "User ID", stepProfile},
}

type onboardingModel struct {
	step     onboardingStep
	inputs   []textinput.Model
	focused  int
	ctrl     *form.Controller[setupValues]
	values   setupValues
	complete bool
	status   string
	width    int
	height   int
}

// Onboarding reuses the dashboard palette.
var (
	obTitleStyle  = lipgloss.NewStyle().Foreground(ui.ColorLeaf).Bold(true)
	obHeaderStyle = ui.TitleStyle
	obPanelStyle  = ui.PanelStyle
	obLabelStyle  = ui.LabelStyle
	obMutedStyle  = ui.HelpDescStyle
	obWarnStyle   = ui.FieldErrorStyle
	obFooterStyle = ui.FooterStyle

	obTabsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ui.ColorMuted)
	obTabInactive = lipgloss.NewStyle().Foreground(ui.ColorMuted).Padding(0, 2)
	obTabActive   = lipgloss.NewStyle().Foreground(ui.ColorText).Bold(true).Underline(true).Padding(0, 2)

	obInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorLeaf).
			Padding(0, 1)
)

func newOnboardingModel(defaults config.Settings) onboardingModel {
	initial := map[string]string{
		"baseURL":  defaults.BaseURL,
		"fullName": defaults.Profile.FullName,
		"email":    defaults.Profile.Email,
		"phone":    defaults.Profile.Phone,
	}
	if defaults.Profile.UserID > 0 {
		initial["userID"] = strconv.FormatInt(defaults.Profile.UserID, 10)
	}
	ctrl := form.New(validate.New[setupValues](), initial)

	m := onboardingModel{step: stepBackend, ctrl: ctrl}
	for _, f := range setupFields {
		in := textinput.New()
		in.CharLimit = 200
		in.Prompt = "› "
		in.TextStyle = lipgloss.NewStyle().Foreground(ui.ColorText)
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
		in.Cursor.Style = lipgloss.NewStyle().Foreground(ui.ColorSoil).Background(ui.ColorLeaf)
		in.SetValue(ctrl.Value(f.name))
		m.inputs = append(m.inputs, in)
	}
	m.inputs[0].Placeholder = "http://localhost:8080"
	m.inputs[0].Focus()
	return m
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.status = "Setup canceled. Settings come from the environment until you finish setup."
			m.step = stepDone
			return m, tea.Quit
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "enter":
			return m.advance()
		}
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		m.ctrl.Set(setupFields[m.focused].name, strings.TrimSpace(m.inputs[m.focused].Value()))
		return m, cmd
	}
	return m, nil
}

// moveFocus cycles through the inputs of the current step.
func (m *onboardingModel) moveFocus(delta int) {
	var idxs []int
	for i, f := range setupFields {
		if f.step == m.step {
			idxs = append(idxs, i)
		}
	}
	pos := 0
	for i, idx := range idxs {
		if idx == m.focused {
			pos = i
		}
	}
	m.focusInput(idxs[(pos+delta+len(idxs))%len(idxs)])
}

func (m *onboardingModel) focusInput(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.step = setupFields[i].step
	m.inputs[i].Focus()
}

// advance moves to the next field, or submits on the last one. Invalid
// input sends the cursor back to the first field with an error.
func (m onboardingModel) advance() (tea.Model, tea.Cmd) {
	if m.focused < len(setupFields)-1 {
		m.focusInput(m.focused + 1)
		return m, nil
	}
	v, ok := m.ctrl.Begin()
	if !ok {
		errs := m.ctrl.VisibleErrors()
		for i, f := range setupFields {
			if _, bad := errs[f.name]; bad {
				m.focusInput(i)
				break
			}
		}
		return m, nil
	}
	m.ctrl.Finish(nil)
	m.values = v
	m.complete = true
	m.status = "Settings saved. Opening your dashboard..."
	m.step = stepDone
	return m, tea.Quit
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	tabs := m.renderTabs(width)
	footer := m.renderFooter(width)

	contentHeight := max(height-6, 8)
	content := m.renderContent(width, contentHeight)
	body := lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)

	return lipgloss.NewStyle().
		Foreground(ui.ColorText).
		Width(width).
		Height(height).
		Render(body)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + obTitleStyle.Render("greenpath") + " " + obMutedStyle.Render("› Setup")
	right := obMutedStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return obHeaderStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderTabs(width int) string {
	backendTab := obTabInactive.Render("Backend")
	profileTab := obTabInactive.Render("Your Profile")
	switch m.step {
	case stepBackend:
		backendTab = obTabActive.Render("Backend")
	case stepProfile:
		profileTab = obTabActive.Render("Your Profile")
	}
	return obTabsStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, "  ", backendTab, profileTab))
}

func (m onboardingModel) renderFooter(width int) string {
	if m.step == stepDone {
		return obFooterStyle.Width(width).Render("Setup complete")
	}
	return obFooterStyle.Width(width).Render("tab/↑↓ move  enter next  esc cancel")
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}
	inputWidth := max(30, cardWidth-14)
	errs := m.ctrl.VisibleErrors()

	var lines []string
	switch m.step {
	case stepBackend:
		lines = append(lines,
			obLabelStyle.Render("Where is the Green Path service?"),
			"",
			obMutedStyle.Render("Use the URL your organisation gave you, or run"),
			obMutedStyle.Render("`greenpath devserver` and keep the default."),
			"",
		)
	case stepProfile:
		lines = append(lines,
			obLabelStyle.Render("Tell us who you are"),
			"",
			obMutedStyle.Render("Your name, email and phone pre-fill donation requests."),
			"",
		)
	default:
		msg := obMutedStyle.Render(m.status)
		if !m.complete {
			msg = obWarnStyle.Render(m.status)
		}
		card := obPanelStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, obLabelStyle.Render("Onboarding Complete"), "", msg))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
	}

	for i, f := range setupFields {
		if f.step != m.step {
			continue
		}
		lines = append(lines, obLabelStyle.Render(f.label), obInputStyle.Width(inputWidth).Render(m.inputs[i].View()))
		if msg, bad := errs[f.name]; bad {
			lines = append(lines, obWarnStyle.Render(msg))
		}
	}
	lines = append(lines, "", obMutedStyle.Render("You can change these later in ~/.greenpath/config.yaml"))

	card := obPanelStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

// runOnboarding asks for the backend and profile and writes them to path.
// It reports false when the user cancels.
func runOnboarding(path string, defaults config.Settings) (bool, error) {
	prog := tea.NewProgram(newOnboardingModel(defaults), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return false, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return false, fmt.Errorf("unexpected onboarding model type")
	}
	if !m.complete {
		return false, nil
	}
	settings, err := m.values.settings()
	if err != nil {
		return false, err
	}
	if err := config.Save(path, settings); err != nil {
		return false, err
	}
	return true, nil
}

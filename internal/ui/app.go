package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"greenpath/internal/actions"
	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
	"greenpath/internal/util"
)

// listKeys are the cache keys the dashboard reads.
var listKeys = []string{
	api.KeyWasteReports,
	api.KeyDonations,
	api.KeyEvents,
	api.KeyIssues,
	api.KeyHelpRequests,
	api.KeyLeaderboard,
}

var tabKeys = map[model.Tab]string{
	model.TabPickups:     api.KeyWasteReports,
	model.TabDonations:   api.KeyDonations,
	model.TabEvents:      api.KeyEvents,
	model.TabIssues:      api.KeyIssues,
	model.TabHelp:        api.KeyHelpRequests,
	model.TabLeaderboard: api.KeyLeaderboard,
}

// joinDoneMsg reports the outcome of an event registration.
type joinDoneMsg struct {
	eventID int64
	notice  actions.Notice
}

// Options configures the dashboard.
type Options struct {
	// PrefsPath is where table layout choices are saved. Empty disables it.
	PrefsPath string
	Logger    zerolog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	deps   actions.Deps
	log    zerolog.Logger
	watch  *watcher
	screen model.Screen
	mode   model.Mode
	tab    model.Tab
	gState GState

	width  int
	height int

	info        string
	banner      banner
	showingHelp bool
	columnJump  bool
	spinner     spinner.Model

	pickups     *recordTable[model.WasteReport]
	donations   *recordTable[model.Donation]
	events      *recordTable[model.Event]
	issues      *recordTable[model.Issue]
	help        *recordTable[model.HelpRequest]
	leaderboard *recordTable[model.LeaderboardEntry]
	feedback    *recordTable[model.Feedback]
	sent        []model.Feedback

	detail  *ReportDetailModel
	dialog  dialog
	donate  *donatePage
	joining map[int64]bool

	keys      KeyMap
	prefsPath string
	prefs     UIPreferences
}

func withDefaults(d actions.Deps) actions.Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// New creates the dashboard. d.Cache must be set; every tab reads from it.
func New(d actions.Deps, opts Options) Model {
	d = withDefaults(d)
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		deps:        d,
		log:         opts.Logger,
		watch:       newWatcher(d.Cache),
		screen:      model.ScreenDashboard,
		mode:        model.ModeNav,
		tab:         model.TabOverview,
		gState:      GStateIdle,
		spinner:     sp,
		pickups:     newPickupTable(),
		donations:   newDonationTable(d.Now),
		events:      newEventTable(d.Now, d.Profile.UserID),
		issues:      newIssueTable(d.Now),
		help:        newHelpTable(d.Now),
		leaderboard: newLeaderboardTable(d.Profile.UserID),
		feedback:    newFeedbackTable(d.Now),
		joining:     map[int64]bool{},
		keys:        DefaultKeyMap(),
		prefsPath:   opts.PrefsPath,
		prefs:       loadUIPreferences(opts.PrefsPath),
	}
	for _, tab := range model.Tabs {
		if t := m.tableFor(tab); t != nil {
			if p, ok := m.prefs.Tables[tab.String()]; ok {
				t.ApplyPrefs(p)
			}
		}
	}
	return m
}

// Init mounts every list and starts listening for cache updates.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.watch.feed.next(), m.spinner.Tick}
	for _, k := range listKeys {
		cmds = append(cmds, m.watch.watch(k))
	}
	return tea.Batch(cmds...)
}

// Close detaches from the cache. Results that arrive later are dropped.
func (m Model) Close() {
	m.watch.close()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, tab := range model.Tabs {
			if t := m.tableFor(tab); t != nil {
				t.SetHeight(m.contentHeight() - 1)
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == model.ModeNav && m.columnJump {
			switch msg.String() {
			case "esc":
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				table := m.currentTable()
				if table != nil && table.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					m.persistCurrentTablePrefs()
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}

		if key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNavMode(msg)

	case resourceMsg:
		m.applyResource(msg.key)
		if msg.fromFeed {
			return m, m.watch.feed.next()
		}
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case joinDoneMsg:
		delete(m.joining, msg.eventID)
		return m, m.banner.show(msg.notice)

	case model.NoticeMsg:
		return m, m.banner.show(actions.Notice{Title: msg.Title, Body: msg.Body, Error: msg.Error})

	case model.ErrorMsg:
		return m, m.banner.show(actions.Failure("Error", msg.Err))

	case model.ClearNoticeMsg:
		m.banner.clear(msg)
		return m, nil

	case model.FormCancelledMsg:
		m.closeForm()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.dialog != nil {
			cmds = append(cmds, m.dialog.Tick(msg))
		}
		if m.donate != nil {
			cmds = append(cmds, m.donate.form.Tick(msg))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// applyResource pulls the latest snapshot for key into its table.
func (m *Model) applyResource(k string) {
	r, ok := m.watch.refresh(k)
	if !ok || r.Value == nil {
		return
	}
	switch k {
	case api.KeyWasteReports:
		if v, ok := query.Value[[]model.WasteReport](r); ok {
			m.pickups.SetRows(v)
			if m.detail != nil {
				for _, rep := range v {
					if rep.ID == m.detail.report.ID {
						m.detail.report = rep
					}
				}
			}
		}
	case api.KeyDonations:
		if v, ok := query.Value[[]model.Donation](r); ok {
			m.donations.SetRows(v)
		}
	case api.KeyEvents:
		if v, ok := query.Value[[]model.Event](r); ok {
			m.events.SetRows(v)
		}
	case api.KeyIssues:
		if v, ok := query.Value[[]model.Issue](r); ok {
			m.issues.SetRows(v)
		}
	case api.KeyHelpRequests:
		if v, ok := query.Value[[]model.HelpRequest](r); ok {
			m.help.SetRows(v)
		}
	case api.KeyLeaderboard:
		if v, ok := query.Value[[]model.LeaderboardEntry](r); ok {
			m.leaderboard.SetRows(v)
		}
	}
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	cmd := m.banner.show(msg.notice)
	if f, ok := msg.value.(model.Feedback); ok && msg.err == nil {
		if f.CreatedAt.IsZero() {
			f.CreatedAt = m.deps.Now()
		}
		m.sent = append(m.sent, f)
		m.feedback.SetRows(m.sent)
	}

	switch {
	case m.dialog != nil && m.dialog.ID() == msg.form:
		m.dialog.Finish(msg)
		if msg.err == nil {
			m.dialog = nil
			m.mode = model.ModeNav
		}
	case m.donate != nil && m.donate.form.ID() == msg.form:
		m.donate.form.Finish(msg)
	default:
		m.log.Debug().Int("form", msg.form).Msg("result for closed form")
	}
	return m, cmd
}

func (m *Model) openDialog(d dialog) {
	m.dialog = d
	m.mode = model.ModeInsert
	m.columnJump = false
	m.info = ""
}

func (m *Model) closeForm() {
	m.mode = model.ModeNav
	m.dialog = nil
	if m.screen == model.ScreenDonate {
		m.donate = nil
		m.screen = model.ScreenDashboard
	}
}

// handleInsertMode routes keys to the open form.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.dialog != nil:
		return m, m.dialog.Update(msg)
	case m.donate != nil:
		return m, m.donate.form.Update(msg)
	}
	m.mode = model.ModeNav
	return m, nil
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenPickupDetail {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.screen = model.ScreenDashboard
			m.detail = nil
		case msg.String() == "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.ColumnJump):
			m.columnJump = true
			m.info = "Jump to column: press 1-9 (esc to cancel)"
			return m, nil
		case key.Matches(msg, m.keys.SortAsc):
			t.SortActiveColumn(false)
			m.info = "Sorted ascending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.SortDesc):
			t.SortActiveColumn(true)
			m.info = "Sorted descending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.HideColumn):
			if t.HideActiveColumn() {
				m.info = "Column hidden"
				m.persistCurrentTablePrefs()
			} else {
				m.info = "Cannot hide last visible column"
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowColumns):
			t.ShowAllColumns()
			m.info = "All columns shown"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.FilterValue):
			if t.FilterBySelectedValue() {
				m.info = "Filter applied from selected value"
				m.persistCurrentTablePrefs()
			} else {
				m.info = "No filterable value in selected cell"
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearFilter):
			if t.ClearFilter() {
				m.info = "Filter cleared"
				m.persistCurrentTablePrefs()
			}
			return m, nil
		case key.Matches(msg, m.keys.Scope):
			if label, ok := t.CycleScope(); ok {
				m.info = "Showing " + strings.ToLower(label)
				m.persistCurrentTablePrefs()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			t.MoveDown()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			t.MoveUp()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			t.JumpToBottom()
			return m, nil
		case key.Matches(msg, m.keys.HalfPageDown):
			t.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keys.HalfPageUp):
			t.HalfPageUp()
			return m, nil
		}
	}

	// Handle "gg" state machine
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if t := m.currentTable(); t != nil {
			t.JumpToTop()
		}
		return m, nil
	}
	m.gState = GStateIdle

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(model.Tabs) {
		m.selectTab(model.Tabs[n-1])
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevTab):
		m.selectTab(model.Tabs[(int(m.tab)+len(model.Tabs)-1)%len(model.Tabs)])
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.selectTab(model.Tabs[(int(m.tab)+1)%len(model.Tabs)])
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		return m, m.retry()
	case key.Matches(msg, m.keys.SchedulePickup):
		m.openDialog(newPickupDialog(m.deps))
		return m, nil
	case key.Matches(msg, m.keys.RaiseIssue):
		m.openDialog(newIssueDialog(m.deps))
		return m, nil
	case key.Matches(msg, m.keys.SeekHelp):
		m.openDialog(newHelpDialog(m.deps))
		return m, nil
	case key.Matches(msg, m.keys.Donate):
		m.openDonate()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m.addForTab()
	case key.Matches(msg, m.keys.JoinEvent):
		if m.tab == model.TabEvents {
			return m.joinSelected()
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if m.tab == model.TabPickups {
			if r, ok := m.pickups.Selected(); ok {
				m.detail = NewReportDetailModel(r, m.deps.Now)
				m.screen = model.ScreenPickupDetail
			}
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) selectTab(tab model.Tab) {
	m.tab = tab
	m.info = ""
	m.columnJump = false
	m.log.Debug().Stringer("tab", tab).Msg("tab selected")
}

func (m *Model) openDonate() {
	m.donate = newDonatePage(m.deps)
	m.screen = model.ScreenDonate
	m.mode = model.ModeInsert
	m.info = ""
}

// addForTab opens the form that creates a record of the current tab.
func (m Model) addForTab() (tea.Model, tea.Cmd) {
	switch m.tab {
	case model.TabIssues:
		m.openDialog(newIssueDialog(m.deps))
	case model.TabHelp:
		m.openDialog(newHelpDialog(m.deps))
	case model.TabFeedback:
		m.openDialog(newFeedbackDialog(m.deps))
	case model.TabDonations:
		m.openDonate()
	case model.TabEvents:
		return m.joinSelected()
	default:
		m.openDialog(newPickupDialog(m.deps))
	}
	return m, nil
}

// joinSelected registers the profile user for the highlighted event. Events
// that cannot be joined are rejected before any request is made.
func (m Model) joinSelected() (tea.Model, tea.Cmd) {
	e, ok := m.events.Selected()
	if !ok {
		return m, nil
	}
	if m.joining[e.ID] {
		m.info = "Already joining " + e.Title
		return m, nil
	}
	if err := actions.CanJoin(e, m.deps.Profile.UserID); err != nil {
		return m, m.banner.show(actions.Failure(actions.JoinFailedTitle, err))
	}

	m.joining[e.ID] = true
	m.info = "Joining " + e.Title + "..."
	mut := actions.NewJoinEventMutation(m.deps)
	id := e.ID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		res := mut.Execute(ctx, id)
		if res.Err != nil {
			return joinDoneMsg{eventID: id, notice: actions.Failure(actions.JoinFailedTitle, res.Err)}
		}
		return joinDoneMsg{eventID: id, notice: actions.EventJoined}
	}
}

// retry refetches what the current tab shows.
func (m *Model) retry() tea.Cmd {
	keys := listKeys
	if k, ok := tabKeys[m.tab]; ok {
		keys = []string{k}
	} else if m.tab == model.TabFeedback {
		return nil
	}
	m.info = "Refreshing..."
	cmds := make([]tea.Cmd, 0, len(keys))
	for _, k := range keys {
		cmds = append(cmds, retryCmd(m.deps.Cache, k))
	}
	return tea.Batch(cmds...)
}

func (m *Model) tableFor(tab model.Tab) tableController {
	switch tab {
	case model.TabPickups:
		return m.pickups
	case model.TabDonations:
		return m.donations
	case model.TabEvents:
		return m.events
	case model.TabIssues:
		return m.issues
	case model.TabHelp:
		return m.help
	case model.TabLeaderboard:
		return m.leaderboard
	case model.TabFeedback:
		return m.feedback
	}
	return nil
}

func (m *Model) currentTable() tableController {
	if m.screen != model.ScreenDashboard {
		return nil
	}
	return m.tableFor(m.tab)
}

func (m *Model) persistCurrentTablePrefs() {
	t := m.currentTable()
	if t == nil {
		return
	}
	m.prefs.Tables[m.tab.String()] = t.Prefs()
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Msg("save ui preferences")
	}
}

func (m Model) contentHeight() int {
	// header, tabs, banner line, footer
	return max(m.height-7, 3)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	contentHeight := m.contentHeight()
	var content string
	var breadcrumbParts []string
	showTabs := m.screen == model.ScreenDashboard

	switch m.screen {
	case model.ScreenDonate:
		breadcrumbParts = []string{"Donate"}
		contentHeight += 2
		if m.donate != nil {
			content = m.donate.View(m.width, contentHeight)
		}
	case model.ScreenPickupDetail:
		breadcrumbParts = []string{"Pickups", "Detail"}
		contentHeight += 2
		if m.detail != nil {
			breadcrumbParts = []string{"Pickups", m.detail.report.Title}
			content = m.detail.View(m.width, contentHeight)
		}
	default:
		breadcrumbParts = []string{m.tab.String()}
		content = m.tabView(m.width, contentHeight)
		if m.dialog != nil {
			breadcrumbParts = append(breadcrumbParts, m.dialog.Title())
			content = m.renderDialog(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumbParts, m.width, m.deps.Now())
	footer := RenderHelp(m.screen, m.mode, m.width)
	if m.screen == model.ScreenDashboard && m.mode == model.ModeNav {
		footer = renderTabHelp(m.tab, m.width)
	}

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	status := m.banner.View()
	if status == "" && m.info != "" {
		status = SuccessStyle.Render(m.info)
	}

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.tab, m.width))
	}
	parts = append(parts, lipgloss.NewStyle().Width(m.width).Render(status), content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// tabView renders the loading, error, empty or populated state of a tab.
func (m Model) tabView(width, height int) string {
	switch m.tab {
	case model.TabOverview:
		return m.overviewView(width, height)
	case model.TabFeedback:
		intro := HelpDescStyle.Render("  We'd love to hear how we're doing. Press  a  to share feedback.")
		return lipgloss.JoinVertical(lipgloss.Left, intro, "", m.feedback.View(width, height-2))
	}

	noun := strings.ToLower(m.tab.String())
	r := m.watch.get(tabKeys[m.tab])
	t := m.currentTable()

	if r.Value == nil {
		if r.Status == query.StatusError {
			msg := ErrorStyle.Render(fmt.Sprintf("Couldn't load %s: %s", noun, api.Message(r.Err))) +
				"\n\n" + HelpDescStyle.Render("  Press  r  to retry.")
			return EmptyStateStyle.Width(width).Height(height).Render(msg)
		}
		return EmptyStateStyle.Width(width).Height(height).Render(m.spinner.View() + " Loading " + noun + "...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.View(width, height-1),
		m.freshness(r),
	)
}

// freshness describes how current a populated tab is.
func (m Model) freshness(r query.Resource) string {
	switch {
	case r.Fetching:
		return StatusBarStyle.Render(m.spinner.View() + " refreshing...")
	case r.Status == query.StatusError:
		return ErrorStyle.Render("Couldn't refresh: " + api.Message(r.Err) + " · press r to retry")
	}
	return StatusBarStyle.Render("updated " + util.FormatUpdated(r.UpdatedAt))
}

func (m Model) overviewView(width, height int) string {
	var in overviewInput
	loading := true
	for _, k := range listKeys {
		if m.watch.get(k).Value != nil {
			loading = false
		}
	}
	if loading {
		for _, k := range listKeys {
			if r := m.watch.get(k); r.Status == query.StatusError {
				msg := ErrorStyle.Render("Couldn't load your dashboard: "+api.Message(r.Err)) +
					"\n\n" + HelpDescStyle.Render("  Press  r  to retry.")
				return EmptyStateStyle.Width(width).Height(height).Render(msg)
			}
		}
		return EmptyStateStyle.Width(width).Height(height).Render(m.spinner.View() + " Loading your dashboard...")
	}

	in.reports, _ = query.Value[[]model.WasteReport](m.watch.get(api.KeyWasteReports))
	in.donations, _ = query.Value[[]model.Donation](m.watch.get(api.KeyDonations))
	in.events, _ = query.Value[[]model.Event](m.watch.get(api.KeyEvents))
	in.issues, _ = query.Value[[]model.Issue](m.watch.get(api.KeyIssues))
	in.help, _ = query.Value[[]model.HelpRequest](m.watch.get(api.KeyHelpRequests))
	in.board, _ = query.Value[[]model.LeaderboardEntry](m.watch.get(api.KeyLeaderboard))

	now := m.deps.Now()
	o := summarize(m.deps.Profile, now, in)
	return lipgloss.NewStyle().Padding(1, 2).Render(renderOverview(o, m.deps.Profile.UserID, now, width-4))
}

func (m Model) renderDialog(width, height int) string {
	w := min(width-4, 86)
	body := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(m.dialog.Title()),
		"",
		m.dialog.View(w-6, height-6),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, DialogStyle.Width(w).Render(body))
}

func renderTabs(active model.Tab, width int) string {
	var tabStrings []string
	for i, tab := range model.Tabs {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(ColorMuted)

		if tab == active {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(fmt.Sprintf("%d %s", i+1, tab)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int, now time.Time) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("greenpath")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(now.Format("Mon 02 Jan")) + "  "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

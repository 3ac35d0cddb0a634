package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/util"
)

type column[T any] struct {
	key    string
	label  string
	width  int
	hidden bool
	// value is the plain text used for sorting and filtering.
	value func(T) string
	// cell renders the value; nil means value truncated to the column.
	cell func(T) string
}

// scope is a named subset of the rows, cycled with f.
type scope[T any] struct {
	label string
	match func(T) bool
}

// recordTable lists one kind of backend record with the column, sort and
// filter controls shared by every dashboard tab.
type recordTable[T any] struct {
	noun    string
	empty   string
	id      func(T) int64
	allRows []T
	rows    []T
	cursor  int
	offset  int
	page    int

	columns      []column[T]
	activeColumn int
	sortKey      string
	sortDesc     bool
	filterKey    string
	filterValue  string

	scopes    []scope[T]
	scopeIdx  int
	highlight func(T) bool
}

func newRecordTable[T any](noun, empty string, id func(T) int64, columns []column[T], scopes ...scope[T]) *recordTable[T] {
	return &recordTable[T]{
		noun:    noun,
		empty:   empty,
		id:      id,
		columns: columns,
		scopes:  scopes,
		page:    10,
	}
}

// SetRows replaces the data and keeps the cursor on the same record when it
// is still present.
func (m *recordTable[T]) SetRows(rows []T) {
	var selected int64
	hadSelection := false
	if r, ok := m.Selected(); ok {
		selected, hadSelection = m.id(r), true
	}
	m.allRows = append([]T(nil), rows...)
	m.rebuild()
	if !hadSelection {
		return
	}
	for i, r := range m.rows {
		if m.id(r) == selected {
			m.cursor = i
			m.scrollToCursor()
			return
		}
	}
}

func (m *recordTable[T]) SetHeight(h int) {
	m.page = max(h-3, 1)
	m.scrollToCursor()
}

// Selected returns the row under the cursor.
func (m *recordTable[T]) Selected() (T, bool) {
	var zero T
	if len(m.rows) == 0 {
		return zero, false
	}
	return m.rows[m.cursor], true
}

func (m *recordTable[T]) Len() int { return len(m.rows) }

func (m *recordTable[T]) rebuild() {
	rows := make([]T, 0, len(m.allRows))
	for _, r := range m.allRows {
		if len(m.scopes) > 0 && !m.scopes[m.scopeIdx].match(r) {
			continue
		}
		rows = append(rows, r)
	}

	if m.filterKey != "" && m.filterValue != "" {
		filtered := rows[:0]
		target := strings.ToLower(strings.TrimSpace(m.filterValue))
		for _, r := range rows {
			if strings.EqualFold(strings.TrimSpace(m.getValue(r, m.filterKey)), target) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if m.sortKey != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			left := strings.ToLower(m.getValue(rows[i], m.sortKey))
			right := strings.ToLower(m.getValue(rows[j], m.sortKey))
			if left == right {
				return m.id(rows[i]) > m.id(rows[j])
			}
			if m.sortDesc {
				return left > right
			}
			return left < right
		})
	}

	m.rows = rows
	m.clampCursor()
}

func (m *recordTable[T]) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *recordTable[T]) scrollToCursor() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.page {
		m.offset = m.cursor - m.page + 1
	}
}

func (m *recordTable[T]) getValue(row T, key string) string {
	for _, c := range m.columns {
		if c.key == key {
			return c.value(row)
		}
	}
	return ""
}

// CycleScope switches to the next scope and returns its label.
func (m *recordTable[T]) CycleScope() (string, bool) {
	if len(m.scopes) < 2 {
		return "", false
	}
	m.scopeIdx = (m.scopeIdx + 1) % len(m.scopes)
	m.cursor, m.offset = 0, 0
	m.rebuild()
	return m.scopes[m.scopeIdx].label, true
}

func (m *recordTable[T]) ScopeLabel() string {
	if len(m.scopes) == 0 {
		return ""
	}
	return m.scopes[m.scopeIdx].label
}

func (m *recordTable[T]) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *recordTable[T]) PrevColumn() {
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *recordTable[T]) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func (m *recordTable[T]) SortActiveColumn(desc bool) {
	m.sortKey = m.columns[m.activeColumn].key
	m.sortDesc = desc
	m.rebuild()
}

func (m *recordTable[T]) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *recordTable[T]) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *recordTable[T]) FilterBySelectedValue() bool {
	if len(m.rows) == 0 {
		return false
	}
	key := m.columns[m.activeColumn].key
	value := strings.TrimSpace(m.getValue(m.rows[m.cursor], key))
	if value == "" {
		return false
	}
	m.filterKey = key
	m.filterValue = value
	m.rebuild()
	return true
}

func (m *recordTable[T]) ClearFilter() bool {
	if m.filterKey == "" {
		return false
	}
	m.filterKey = ""
	m.filterValue = ""
	m.rebuild()
	return true
}

func (m *recordTable[T]) TableMeta() string {
	col := strings.ToUpper(m.columns[m.activeColumn].label)
	parts := []string{fmt.Sprintf("col %s", col)}
	if len(m.scopes) > 0 {
		parts = append(parts, "show "+strings.ToLower(m.ScopeLabel()))
	}
	if m.sortKey != "" {
		order := "asc"
		if m.sortDesc {
			order = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(m.sortKey), order))
	}
	if m.filterKey != "" {
		parts = append(parts, fmt.Sprintf("filter %s=%q", strings.ToUpper(m.filterKey), m.filterValue))
	}
	return strings.Join(parts, "  ·  ")
}

func (m *recordTable[T]) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *recordTable[T]) ensureVisibleActiveColumn() {
	if !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

// View renders the table.
func (m *recordTable[T]) View(width, height int) string {
	if len(m.rows) == 0 {
		msg := m.empty
		if len(m.allRows) > 0 {
			msg = fmt.Sprintf("No %s match the current view.\nPress  f  to change what is shown or  N  to clear the filter.", m.noun)
		}
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(msg)
	}

	visible := m.visibleColumnIndexes()
	if len(visible) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No visible columns. Press C to show all columns.")
	}

	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	totalFixed := 0
	for _, idx := range visible {
		col := m.columns[idx]
		label := strings.ToUpper(col.label)
		if idx == m.activeColumn {
			label = "❋ " + label
		}
		if m.sortKey == col.key {
			if m.sortDesc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		cellWidth := max(col.width, lipgloss.Width(label)+2)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}

	if extra := width - totalFixed - 4; extra > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle.Bold(true))

	visibleHeight := max(height-3, 1)
	var rows []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		row := m.rows[i]
		style := NormalRowStyle
		if i%2 == 1 {
			style = style.Background(ColorRowAlt)
		}
		if m.highlight != nil && m.highlight(row) {
			style = style.Foreground(ColorGreen).Bold(true)
		}
		if i == m.cursor {
			style = SelectedRowStyle
		}

		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			col := m.columns[idx]
			if col.cell != nil {
				cells = append(cells, col.cell(row))
				continue
			}
			cells = append(cells, util.TruncateString(col.value(row), col.width-2))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	filterInfo := ""
	if len(m.rows) != len(m.allRows) {
		filterInfo = fmt.Sprintf("  ·  showing %d/%d", len(m.rows), len(m.allRows))
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	status := StatusBarStyle.Render(fmt.Sprintf("Total %s: %d%s%s", m.noun, len(m.allRows), filterInfo, meta))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		"",
		status,
	)
}

// MoveDown moves the cursor down.
func (m *recordTable[T]) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		m.scrollToCursor()
	}
}

// MoveUp moves the cursor up.
func (m *recordTable[T]) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		m.scrollToCursor()
	}
}

func (m *recordTable[T]) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

func (m *recordTable[T]) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		m.scrollToCursor()
	}
}

func (m *recordTable[T]) HalfPageDown() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(m.cursor+max(m.page/2, 1), len(m.rows)-1)
	m.scrollToCursor()
}

func (m *recordTable[T]) HalfPageUp() {
	m.cursor = max(m.cursor-max(m.page/2, 1), 0)
	m.scrollToCursor()
}

// Helper function to render a table row
func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

// ApplyPrefs restores saved column, sort and scope choices.
func (m *recordTable[T]) ApplyPrefs(prefs TablePrefs) {
	if prefs.SortKey != "" {
		m.sortKey = prefs.SortKey
		m.sortDesc = prefs.SortDesc
	}
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		hidden[c] = true
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].key]
	}
	if prefs.ActiveColumn != "" {
		for i, c := range m.columns {
			if c.key == prefs.ActiveColumn {
				m.activeColumn = i
				break
			}
		}
	}
	for i, s := range m.scopes {
		if s.label == prefs.Scope {
			m.scopeIdx = i
		}
	}
	m.ensureVisibleActiveColumn()
	m.rebuild()
}

func (m *recordTable[T]) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.key)
		}
	}
	return TablePrefs{
		SortKey:       m.sortKey,
		SortDesc:      m.sortDesc,
		HiddenColumns: hidden,
		ActiveColumn:  m.columns[m.activeColumn].key,
		Scope:         m.ScopeLabel(),
	}
}

package ui

type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	SortActiveColumn(desc bool)
	HideActiveColumn() bool
	ShowAllColumns()
	FilterBySelectedValue() bool
	ClearFilter() bool
	CycleScope() (string, bool)
	TableMeta() string
	ApplyPrefs(prefs TablePrefs)
	Prefs() TablePrefs

	MoveUp()
	MoveDown()
	JumpToTop()
	JumpToBottom()
	HalfPageDown()
	HalfPageUp()
	SetHeight(h int)
	Len() int
	View(width, height int) string
}

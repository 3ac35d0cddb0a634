package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// NoticeMsg asks the UI to show a notification.
type NoticeMsg struct {
	Title string
	Body  string
	Error bool
}

// ClearNoticeMsg hides the notification with the given sequence number.
type ClearNoticeMsg struct {
	Seq int
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// Tab is one section of the dashboard.
type Tab int

const (
	TabOverview Tab = iota
	TabPickups
	TabDonations
	TabEvents
	TabIssues
	TabHelp
	TabLeaderboard
	TabFeedback
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabOverview, TabPickups, TabDonations, TabEvents, TabIssues, TabHelp, TabLeaderboard, TabFeedback}

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabPickups:
		return "Pickups"
	case TabDonations:
		return "Donations"
	case TabEvents:
		return "Events"
	case TabIssues:
		return "Issues"
	case TabHelp:
		return "Help"
	case TabLeaderboard:
		return "Leaderboard"
	case TabFeedback:
		return "Feedback"
	}
	return "Unknown"
}

// Screen represents different app screens.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenPickupDetail
	ScreenDonate
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)

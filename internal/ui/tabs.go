package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"greenpath/internal/actions"
	"greenpath/internal/model"
	"greenpath/internal/util"
)

func statusScopes[T any, S ~string](statuses []S, get func(T) S) []scope[T] {
	scopes := []scope[T]{{label: "All", match: func(T) bool { return true }}}
	for _, s := range statuses {
		scopes = append(scopes, scope[T]{
			label: model.Label(s),
			match: func(r T) bool { return get(r) == s },
		})
	}
	return scopes
}

func statusColumn[T any, S ~string](get func(T) S) column[T] {
	return column[T]{
		key: "status", label: "status", width: 14,
		value: func(r T) string { return string(get(r)) },
		cell: func(r T) string {
			s := get(r)
			return renderStatus(string(s), model.Label(s))
		},
	}
}

func dayColumn[T any](key, label string, get func(T) time.Time, now func() time.Time) column[T] {
	return column[T]{
		key: key, label: label, width: 14,
		value: func(r T) string {
			t := get(r)
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format(time.RFC3339)
		},
		cell: func(r T) string { return util.FormatDateHuman(get(r), now()) },
	}
}

func urgentColumn[T any](get func(T) bool) column[T] {
	return column[T]{
		key: "urgent", label: "urgent", width: 8,
		value: func(r T) string {
			if get(r) {
				return "yes"
			}
			return "no"
		},
		cell: func(r T) string {
			if get(r) {
				return lipgloss.NewStyle().Foreground(ColorRed).Render("● urgent")
			}
			return lipgloss.NewStyle().Foreground(ColorMuted).Render("—")
		},
	}
}

func newPickupTable() *recordTable[model.WasteReport] {
	t := newRecordTable("pickups",
		"    No pickups here yet.\n    Press  p  to schedule your first collection.",
		func(r model.WasteReport) int64 { return r.ID },
		[]column[model.WasteReport]{
			{
				key: "date", label: "date", width: 14,
				value: func(r model.WasteReport) string { return r.ScheduledDate },
				cell:  func(r model.WasteReport) string { return util.FormatDate(r.ScheduledDate) },
			},
			{key: "slot", label: "slot", width: 20, value: func(r model.WasteReport) string { return r.ScheduledTimeSlot }},
			{key: "title", label: "title", width: 26, value: func(r model.WasteReport) string { return r.Title }},
			{
				key: "type", label: "type", width: 16,
				value: func(r model.WasteReport) string { return actions.LabelOf(actions.WasteTypes, r.WasteType) },
			},
			{key: "location", label: "location", width: 24, value: func(r model.WasteReport) string { return r.Location }},
			statusColumn(func(r model.WasteReport) model.ReportStatus { return r.Status }),
		},
		scope[model.WasteReport]{label: "Upcoming", match: func(r model.WasteReport) bool { return r.Status.Upcoming() }},
		scope[model.WasteReport]{label: "Completed", match: func(r model.WasteReport) bool { return r.Status == model.ReportCompleted }},
		scope[model.WasteReport]{label: "Cancelled", match: func(r model.WasteReport) bool { return r.Status.Cancelled() }},
		scope[model.WasteReport]{label: "All", match: func(model.WasteReport) bool { return true }},
	)
	return t
}

func newDonationTable(now func() time.Time) *recordTable[model.Donation] {
	get := func(d model.Donation) model.DonationStatus { return d.Status }
	return newRecordTable("donations",
		"    No donations yet.\n    Press  D  to donate clothes, books or household items.",
		func(d model.Donation) int64 { return d.ID },
		[]column[model.Donation]{
			dayColumn("created", "created", func(d model.Donation) time.Time { return d.CreatedAt }, now),
			{
				key: "item", label: "item", width: 18,
				value: func(d model.Donation) string { return actions.LabelOf(actions.DonationTypes, d.ItemName) },
			},
			{
				key: "condition", label: "condition", width: 12,
				value: func(d model.Donation) string { return actions.LabelOf(actions.Conditions, d.Condition) },
			},
			{
				key: "qty", label: "qty", width: 6,
				value: func(d model.Donation) string { return fmt.Sprintf("%06d", d.Quantity) },
				cell:  func(d model.Donation) string { return fmt.Sprint(d.Quantity) },
			},
			{key: "city", label: "city", width: 14, value: func(d model.Donation) string { return d.Location.City }},
			{
				key: "pickup", label: "pickup", width: 14,
				value: func(d model.Donation) string { return d.ScheduledDate },
				cell:  func(d model.Donation) string { return util.FormatDate(d.ScheduledDate) },
			},
			statusColumn(get),
		},
		statusScopes(model.DonationStatuses, get)...,
	)
}

func newEventTable(now func() time.Time, userID int64) *recordTable[model.Event] {
	get := func(e model.Event) model.EventStatus { return e.Status }
	return newRecordTable("events",
		"    No community events are scheduled right now.\n    Check back soon.",
		func(e model.Event) int64 { return e.ID },
		[]column[model.Event]{
			dayColumn("date", "date", func(e model.Event) time.Time { return e.Date }, now),
			{key: "title", label: "title", width: 28, value: func(e model.Event) string { return e.Title }},
			{
				key: "where", label: "where", width: 24,
				value: func(e model.Event) string {
					return strings.Trim(e.Location.Address+", "+e.Location.City, ", ")
				},
			},
			{
				key: "spots", label: "spots", width: 10,
				value: func(e model.Event) string { return fmt.Sprintf("%06d", len(e.Participants)) },
				cell: func(e model.Event) string {
					if e.MaxParticipants == 0 {
						return fmt.Sprint(len(e.Participants))
					}
					return fmt.Sprintf("%d/%d", len(e.Participants), e.MaxParticipants)
				},
			},
			{
				key: "joined", label: "joined", width: 8,
				value: func(e model.Event) string {
					if e.Joined(userID) {
						return "yes"
					}
					return "no"
				},
				cell: func(e model.Event) string {
					if e.Joined(userID) {
						return lipgloss.NewStyle().Foreground(ColorGreen).Render("✓")
					}
					return ""
				},
			},
			statusColumn(get),
		},
		statusScopes(model.EventStatuses, get)...,
	)
}

func newIssueTable(now func() time.Time) *recordTable[model.Issue] {
	get := func(i model.Issue) model.IssueStatus { return i.Status }
	return newRecordTable("issues",
		"    No issues reported yet.\n    Press  i  to report missed pickups or illegal dumping.",
		func(i model.Issue) int64 { return i.ID },
		[]column[model.Issue]{
			dayColumn("created", "created", func(i model.Issue) time.Time { return i.CreatedAt }, now),
			{key: "title", label: "title", width: 26, value: func(i model.Issue) string { return i.Title }},
			{
				key: "type", label: "type", width: 16,
				value: func(i model.Issue) string { return actions.LabelOf(actions.IssueTypes, i.IssueType) },
			},
			{key: "location", label: "location", width: 22, value: func(i model.Issue) string { return i.Location }},
			urgentColumn(func(i model.Issue) bool { return i.IsUrgent }),
			statusColumn(get),
		},
		statusScopes(model.IssueStatuses, get)...,
	)
}

func newHelpTable(now func() time.Time) *recordTable[model.HelpRequest] {
	get := func(h model.HelpRequest) model.HelpStatus { return h.Status }
	return newRecordTable("help requests",
		"    No help requests at the moment.\n    Press  h  to ask the community for help.",
		func(h model.HelpRequest) int64 { return h.ID },
		[]column[model.HelpRequest]{
			dayColumn("date", "date", func(h model.HelpRequest) time.Time { return h.Date }, now),
			{key: "title", label: "title", width: 26, value: func(h model.HelpRequest) string { return h.Title }},
			{
				key: "category", label: "category", width: 12,
				value: func(h model.HelpRequest) string { return actions.LabelOf(actions.HelpCategories, h.Category) },
			},
			{key: "location", label: "location", width: 20, value: func(h model.HelpRequest) string { return h.Location }},
			urgentColumn(func(h model.HelpRequest) bool { return h.IsUrgent }),
			statusColumn(get),
		},
		statusScopes(model.HelpStatuses, get)...,
	)
}

func newLeaderboardTable(userID int64) *recordTable[model.LeaderboardEntry] {
	t := newRecordTable("members",
		"    Nobody has earned points yet.\n    Schedule a pickup or donate to get on the board.",
		func(l model.LeaderboardEntry) int64 { return l.UserID },
		[]column[model.LeaderboardEntry]{
			{
				key: "rank", label: "rank", width: 8,
				value: func(l model.LeaderboardEntry) string { return fmt.Sprintf("%06d", l.Rank) },
				cell:  func(l model.LeaderboardEntry) string { return util.FormatOrdinal(l.Rank) },
			},
			{key: "name", label: "name", width: 24, value: func(l model.LeaderboardEntry) string { return l.FullName }},
			{
				key: "points", label: "points", width: 12,
				value: func(l model.LeaderboardEntry) string { return fmt.Sprintf("%09d", l.SocialPoints) },
				cell:  func(l model.LeaderboardEntry) string { return util.FormatPoints(l.SocialPoints) },
			},
			{
				key: "badges", label: "badges", width: 30,
				value: func(l model.LeaderboardEntry) string { return strings.Join(l.Badges, ", ") },
			},
		},
	)
	t.highlight = func(l model.LeaderboardEntry) bool { return l.UserID == userID }
	return t
}

// Feedback has no list endpoint; the tab shows what was sent this session.
func newFeedbackTable(now func() time.Time) *recordTable[model.Feedback] {
	return newRecordTable("feedback",
		"    You haven't sent feedback this session.\n    Press  a  to tell us how we're doing.",
		func(f model.Feedback) int64 { return f.CreatedAt.UnixNano() },
		[]column[model.Feedback]{
			dayColumn("sent", "sent", func(f model.Feedback) time.Time { return f.CreatedAt }, now),
			{
				key: "type", label: "type", width: 22,
				value: func(f model.Feedback) string { return actions.LabelOf(actions.FeedbackTypes, f.FeedbackType) },
			},
			{
				key: "rating", label: "rating", width: 10,
				value: func(f model.Feedback) string { return fmt.Sprint(f.Rating) },
				cell: func(f model.Feedback) string {
					return lipgloss.NewStyle().Foreground(ColorYellow).Render(strings.Repeat("★", f.Rating))
				},
			},
			{key: "comments", label: "comments", width: 40, value: func(f model.Feedback) string { return f.Comments }},
		},
	)
}

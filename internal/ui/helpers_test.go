package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"greenpath/internal/actions"
	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
)

// Friday 16 October 2026.
var testNow = time.Date(2026, 10, 16, 11, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

var testProfile = model.Profile{UserID: 7, FullName: "Priya Nair", Email: "priya@example.com", Phone: "9876543210", SocialPoints: 40}

// fakeAPI serves list fetches and records writes.
type fakeAPI struct {
	mu      sync.Mutex
	fetches map[string]int
	fail    map[string]error

	reports   []model.WasteReport
	donations []model.Donation
	events    []model.Event
	issues    []model.Issue
	help      []model.HelpRequest
	board     []model.LeaderboardEntry

	createdReports []model.NewWasteReport
	createdIssues  []model.NewIssue
	donated        []model.NewDonation
	feedback       []model.NewFeedback
	joins          []model.JoinEvent
	writeErr       error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		fetches: map[string]int{},
		fail:    map[string]error{},
		reports: []model.WasteReport{
			{ID: 1, UserID: 7, Title: "Recyclables pickup", WasteType: "recyclable", Status: model.ReportScheduled, ScheduledDate: "2026-10-19", CreatedAt: testNow.Add(-48 * time.Hour)},
			{ID: 2, UserID: 7, Title: "Garden Waste pickup", WasteType: "garden", Status: model.ReportCompleted, ScheduledDate: "2026-10-02", CreatedAt: testNow.Add(-20 * 24 * time.Hour)},
			{ID: 3, UserID: 7, Title: "Bulky Items pickup", WasteType: "bulky", Status: model.ReportRejected, CreatedAt: testNow.Add(-10 * 24 * time.Hour)},
		},
		donations: []model.Donation{
			{ID: 1, UserID: 7, ItemName: "books", Category: "books", Quantity: 12, Status: model.DonationAvailable, CreatedAt: testNow.Add(-24 * time.Hour)},
		},
		events: []model.Event{
			{ID: 1, Title: "Riverside Clean-up", Date: testNow.Add(72 * time.Hour), Status: model.EventUpcoming, MaxParticipants: 40, Participants: []int64{7}},
			{ID: 2, Title: "E-waste Collection Camp", Date: testNow.Add(9 * 24 * time.Hour), Status: model.EventUpcoming, MaxParticipants: 2, Participants: []int64{1, 2}},
			{ID: 3, Title: "Tree Planting Drive", Date: testNow.Add(5 * 24 * time.Hour), Status: model.EventUpcoming, MaxParticipants: 30},
		},
		issues: []model.Issue{},
		help: []model.HelpRequest{
			{ID: 1, UserID: 2, Title: "Winter clothes", Category: "clothing", Status: model.HelpOpen, Date: testNow},
		},
		board: []model.LeaderboardEntry{
			{Rank: 1, UserID: 2, FullName: "Asha Verma", SocialPoints: 320, Badges: []string{"Eco Champion"}},
			{Rank: 2, UserID: 7, FullName: "Priya Nair", SocialPoints: 140, Badges: []string{"Green Starter"}},
		},
	}
}

func (f *fakeAPI) Fetch(ctx context.Context, key string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[key]++
	if err := f.fail[key]; err != nil {
		return nil, err
	}
	switch key {
	case api.KeyWasteReports:
		return append([]model.WasteReport(nil), f.reports...), nil
	case api.KeyDonations:
		return append([]model.Donation(nil), f.donations...), nil
	case api.KeyEvents:
		return append([]model.Event(nil), f.events...), nil
	case api.KeyIssues:
		return append([]model.Issue{}, f.issues...), nil
	case api.KeyHelpRequests:
		return append([]model.HelpRequest(nil), f.help...), nil
	case api.KeyLeaderboard:
		return append([]model.LeaderboardEntry(nil), f.board...), nil
	}
	return nil, errors.New("unknown key " + key)
}

func (f *fakeAPI) fetchCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[key]
}

func (f *fakeAPI) CreateDonation(ctx context.Context, d model.NewDonation) (model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.Donation{}, f.writeErr
	}
	f.donated = append(f.donated, d)
	return model.Donation{ID: int64(len(f.donations) + 1), UserID: d.UserID, ItemName: d.ItemName, Status: d.Status}, nil
}

func (f *fakeAPI) SubmitFeedback(ctx context.Context, fb model.NewFeedback) (model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.Feedback{}, f.writeErr
	}
	f.feedback = append(f.feedback, fb)
	return model.Feedback{ID: 1, UserID: fb.UserID, Rating: fb.Rating, Comments: fb.Comments, FeedbackType: fb.FeedbackType}, nil
}

func (f *fakeAPI) JoinEvent(ctx context.Context, j model.JoinEvent) (model.Participation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.Participation{}, f.writeErr
	}
	f.joins = append(f.joins, j)
	for i := range f.events {
		if f.events[i].ID == j.EventID {
			f.events[i].Participants = append(f.events[i].Participants, j.UserID)
		}
	}
	return model.Participation{EventID: j.EventID, UserID: j.UserID, JoinedAt: testNow}, nil
}

func (f *fakeAPI) CreateWasteReport(ctx context.Context, r model.NewWasteReport) (model.WasteReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.WasteReport{}, f.writeErr
	}
	f.createdReports = append(f.createdReports, r)
	rec := model.WasteReport{ID: int64(len(f.reports) + 1), UserID: r.UserID, Title: r.Title, Status: r.Status, ScheduledDate: r.ScheduledDate, CreatedAt: testNow}
	f.reports = append(f.reports, rec)
	return rec, nil
}

func (f *fakeAPI) CreateIssue(ctx context.Context, i model.NewIssue) (model.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.Issue{}, f.writeErr
	}
	f.createdIssues = append(f.createdIssues, i)
	return model.Issue{ID: 1, UserID: i.UserID, Title: i.Title, Status: model.IssuePending}, nil
}

func (f *fakeAPI) CreateHelpRequest(ctx context.Context, h model.NewHelpRequest) (model.HelpRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return model.HelpRequest{}, f.writeErr
	}
	return model.HelpRequest{ID: 2, UserID: h.UserID, Title: h.Title, Status: model.HelpOpen}, nil
}

func newTestDeps(t *testing.T, fake *fakeAPI) actions.Deps {
	t.Helper()
	cache, err := query.NewCache(fake.Fetch, query.Options{Now: clock})
	require.NoError(t, err)
	return actions.Deps{Backend: fake, Cache: cache, Profile: testProfile, Now: clock}
}

// collect runs cmd and every command it batches, returning the messages.
// Nil commands and spinner ticks are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenpath/internal/actions"
	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
)

func newTestModel(t *testing.T, fake *fakeAPI) (Model, actions.Deps) {
	t.Helper()
	d := newTestDeps(t, fake)
	m := New(d, Options{})
	t.Cleanup(m.Close)
	m, _ = update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m, d
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(m, keyPress(k))
	}
	return m, cmd
}

// loadAll mounts every list and applies the first load of each.
func loadAll(m Model) Model {
	for _, k := range listKeys {
		m, _ = update(m, m.watch.watch(k)())
	}
	return m
}

func TestDashboard_LoadsEveryTab(t *testing.T) {
	fake := newFakeAPI()
	m, _ := newTestModel(t, fake)

	assert.Contains(t, m.View(), "Loading your dashboard...")

	m = loadAll(m)
	for _, k := range listKeys {
		assert.Equal(t, 1, fake.fetchCount(k), k)
	}
	assert.Equal(t, 1, m.pickups.Len(), "only upcoming pickups are shown by default")
	assert.Equal(t, 1, m.donations.Len())
	assert.Equal(t, 3, m.events.Len())
	assert.Equal(t, 2, m.leaderboard.Len())

	view := m.View()
	assert.Contains(t, view, "greenpath")
	assert.Contains(t, view, "Welcome back, Priya Nair")

	m, _ = press(m, "2")
	assert.Equal(t, model.TabPickups, m.tab)
	view = m.View()
	assert.Contains(t, view, "Recyclables pickup")
	assert.Contains(t, view, "updated")

	m, _ = press(m, "5")
	assert.Contains(t, m.View(), "No issues reported yet.")
}

func TestDashboard_ErrorStateAndRetry(t *testing.T) {
	fake := newFakeAPI()
	fake.fail[api.KeyEvents] = errors.New("connection refused")
	m, d := newTestModel(t, fake)
	m = loadAll(m)

	m, _ = press(m, "4")
	view := m.View()
	assert.Contains(t, view, "Couldn't load events: connection refused")
	assert.Contains(t, view, "Press  r  to retry.")
	assert.Equal(t, 0, m.events.Len())

	fake.mu.Lock()
	delete(fake.fail, api.KeyEvents)
	fake.mu.Unlock()

	m, cmd := press(m, "r")
	require.NotNil(t, cmd)
	for _, msg := range collect(cmd) {
		m, _ = update(m, msg)
	}
	d.Cache.Wait()
	m, _ = update(m, resourceMsg{key: api.KeyEvents})

	assert.Equal(t, 3, m.events.Len())
	assert.NotContains(t, m.View(), "Couldn't load events")
	assert.Equal(t, 1, fake.fetchCount(api.KeyWasteReports), "retry only refetches the current tab")
}

func TestDashboard_RefreshErrorKeepsRows(t *testing.T) {
	fake := newFakeAPI()
	m, d := newTestModel(t, fake)
	m = loadAll(m)
	m, _ = press(m, "3")

	fake.mu.Lock()
	fake.fail[api.KeyDonations] = errors.New("gateway timeout")
	fake.mu.Unlock()

	m, cmd := press(m, "r")
	for _, msg := range collect(cmd) {
		m, _ = update(m, msg)
	}
	d.Cache.Wait()
	m, _ = update(m, resourceMsg{key: api.KeyDonations})

	assert.Equal(t, 1, m.donations.Len())
	assert.Contains(t, m.View(), "Couldn't refresh: gateway timeout")
}

func TestDashboard_JoinEvent(t *testing.T) {
	fake := newFakeAPI()
	m, d := newTestModel(t, fake)
	m = loadAll(m)
	m, _ = press(m, "4")

	// event 1 is already joined
	m, cmd := press(m, "J")
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), actions.ErrAlreadyJoined.Error())

	// event 2 is full
	m, _ = press(m, "j", "J")
	assert.Contains(t, m.View(), actions.ErrEventFull.Error())
	assert.Empty(t, fake.joins)

	m, cmd = press(m, "j", "J")
	require.NotNil(t, cmd)
	assert.True(t, m.joining[3])

	// a second press while the request is in flight sends nothing
	m, again := press(m, "J")
	assert.Nil(t, again)
	assert.Equal(t, "Already joining Tree Planting Drive", m.info)

	done := find[joinDoneMsg](t, collect(cmd))
	assert.Equal(t, actions.EventJoined, done.notice)
	m, _ = update(m, done)
	assert.False(t, m.joining[3])
	require.Len(t, fake.joins, 1)
	assert.Equal(t, model.JoinEvent{UserID: testProfile.UserID, EventID: 3}, fake.joins[0])

	d.Cache.Wait()
	assert.Equal(t, 2, fake.fetchCount(api.KeyEvents), "joining refetches the mounted events list")
	m, _ = update(m, resourceMsg{key: api.KeyEvents})
	sel, ok := m.events.Selected()
	require.True(t, ok)
	assert.True(t, sel.Joined(testProfile.UserID))
	assert.Contains(t, m.View(), "You've successfully joined the event.")
}

func TestDashboard_SchedulePickup(t *testing.T) {
	fake := newFakeAPI()
	m, d := newTestModel(t, fake)
	m = loadAll(m)

	m, _ = press(m, "p")
	require.NotNil(t, m.dialog)
	assert.Equal(t, model.ModeInsert, m.mode)
	assert.Contains(t, m.View(), "Schedule")

	f, ok := m.dialog.(*formView[actions.PickupValues, model.WasteReport])
	require.True(t, ok)
	fillPickup(f)

	m, cmd := press(m, "ctrl+s")
	require.NotNil(t, cmd)
	done := find[submitDoneMsg](t, collect(cmd))
	m, _ = update(m, done)

	assert.Nil(t, m.dialog)
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Contains(t, m.View(), "Pickup scheduled")
	require.Len(t, fake.createdReports, 1)

	d.Cache.Wait()
	m, _ = update(m, resourceMsg{key: api.KeyWasteReports})
	assert.Equal(t, 2, m.pickups.Len())
	assert.Equal(t, 2, fake.fetchCount(api.KeyLeaderboard))
}

func TestDashboard_ResultAfterDialogClosed(t *testing.T) {
	fake := newFakeAPI()
	m, _ := newTestModel(t, fake)
	m = loadAll(m)

	m, _ = press(m, "i")
	f, ok := m.dialog.(*formView[actions.IssueValues, model.Issue])
	require.True(t, ok)
	f.set("title", "Overflowing bin")
	f.set("issueType", "overflowing_bin")
	f.set("description", "The bin at the corner has not been emptied")
	f.set("location", "5th Cross, Jayanagar")

	m, submit := press(m, "ctrl+s")
	require.NotNil(t, submit)

	m, cancel := press(m, "esc")
	require.NotNil(t, cancel)
	m, _ = update(m, cancel())
	require.Nil(t, m.dialog)
	assert.Equal(t, model.ModeNav, m.mode)

	m, _ = update(m, find[submitDoneMsg](t, collect(submit)))
	assert.Nil(t, m.dialog)
	assert.Contains(t, m.View(), "Issue reported")
	assert.Len(t, fake.createdIssues, 1)
}

func TestDashboard_FeedbackTabShowsSentFeedback(t *testing.T) {
	fake := newFakeAPI()
	m, _ := newTestModel(t, fake)
	m = loadAll(m)

	m, _ = press(m, "8", "a")
	f, ok := m.dialog.(*formView[actions.FeedbackValues, model.Feedback])
	require.True(t, ok)
	f.set("rating", "5")
	f.set("feedbackType", actions.FeedbackTypes[0].Value)
	f.set("comments", "Pickups are always on time")

	m, cmd := press(m, "ctrl+s")
	m, _ = update(m, find[submitDoneMsg](t, collect(cmd)))

	require.Len(t, fake.feedback, 1)
	assert.Equal(t, 1, m.feedback.Len())
	assert.Contains(t, m.View(), "Pickups are always on time")
}

func TestDashboard_PickupDetail(t *testing.T) {
	m, _ := newTestModel(t, newFakeAPI())
	m = loadAll(m)

	m, _ = press(m, "2", "enter")
	require.Equal(t, model.ScreenPickupDetail, m.screen)
	view := m.View()
	assert.Contains(t, view, "Timeline:")
	assert.Contains(t, view, "Recyclables pickup")

	m, _ = press(m, "esc")
	assert.Equal(t, model.ScreenDashboard, m.screen)
	assert.Nil(t, m.detail)
}

func TestDashboard_ClosedModelDropsLateResults(t *testing.T) {
	m, d := newTestModel(t, newFakeAPI())
	m = loadAll(m)
	m.Close()

	d.Cache.Invalidate(t.Context(), query.Prefix(api.KeyDonations))
	d.Cache.Wait()
	_, ok := m.watch.refresh(api.KeyDonations)
	assert.False(t, ok)
}

func TestDonateModel_SubmitAndReset(t *testing.T) {
	fake := newFakeAPI()
	d := newTestDeps(t, fake)
	var m tea.Model = NewDonateModel(d)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})

	dm := m.(DonateModel)
	f := dm.page.form
	assert.Equal(t, "Priya Nair", f.ctrl.Value("name"))
	assert.Equal(t, "priya@example.com", f.ctrl.Value("email"))

	for name, v := range map[string]string{
		"donationType": "books",
		"condition":    "good",
		"quantity":     "12 books",
		"description":  "School textbooks for grades 6 to 8",
		"address":      "12 Lake Road, Indiranagar",
		"city":         "Bengaluru",
		"pinCode":      "560038",
		"isPacked":     "yes",
		"date":         "2026-10-17",
		"timeSlot":     "10:00 AM - 12:00 PM",
	} {
		f.set(name, v)
	}

	m, cmd := m.Update(keyPress("ctrl+s"))
	require.NotNil(t, cmd)
	m, _ = m.Update(find[submitDoneMsg](t, collect(cmd)))

	require.Len(t, fake.donated, 1)
	sent := fake.donated[0]
	assert.Equal(t, "books", sent.ItemName)
	assert.Equal(t, 12, sent.Quantity)
	assert.True(t, sent.IsPacked)
	assert.Equal(t, model.Location{BasicAddress: "12 Lake Road, Indiranagar", City: "Bengaluru", PinCode: "560038"}, sent.Location)

	assert.Empty(t, f.ctrl.Value("description"))
	assert.Equal(t, "Priya Nair", f.ctrl.Value("name"), "defaults come back after a successful submit")
	assert.Contains(t, m.View(), "Thank you")
}

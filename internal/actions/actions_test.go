package actions

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenpath/internal/api"
	"greenpath/internal/form"
	"greenpath/internal/model"
	"greenpath/internal/query"
)

// Friday 16 October 2026.
var testNow = time.Date(2026, 10, 16, 11, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type fakeBackend struct {
	mu        sync.Mutex
	donations []model.Donation
	created   []model.NewDonation
	feedback  []model.NewFeedback
	joins     []model.JoinEvent
	reports   []model.NewWasteReport
	issues    []model.NewIssue
	help      []model.NewHelpRequest
	fail      error
}

func (f *fakeBackend) CreateDonation(ctx context.Context, d model.NewDonation) (model.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return model.Donation{}, f.fail
	}
	f.created = append(f.created, d)
	rec := model.Donation{ID: int64(len(f.donations) + 1), ItemName: d.ItemName, Status: d.Status, Quantity: d.Quantity}
	f.donations = append(f.donations, rec)
	return rec, nil
}

func (f *fakeBackend) SubmitFeedback(ctx context.Context, fb model.NewFeedback) (model.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, fb)
	return model.Feedback{ID: 1, Rating: fb.Rating}, nil
}

func (f *fakeBackend) JoinEvent(ctx context.Context, j model.JoinEvent) (model.Participation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joins = append(f.joins, j)
	return model.Participation{EventID: j.EventID, UserID: j.UserID}, nil
}

func (f *fakeBackend) CreateWasteReport(ctx context.Context, r model.NewWasteReport) (model.WasteReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
	return model.WasteReport{ID: 1, Status: r.Status}, nil
}

func (f *fakeBackend) CreateIssue(ctx context.Context, i model.NewIssue) (model.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues = append(f.issues, i)
	return model.Issue{ID: 1, Status: i.Status}, nil
}

func (f *fakeBackend) CreateHelpRequest(ctx context.Context, h model.NewHelpRequest) (model.HelpRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.help = append(f.help, h)
	return model.HelpRequest{ID: 1, Status: h.Status}, nil
}

func (f *fakeBackend) fetch(ctx context.Context, key string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if key != api.KeyDonations {
		return []any{}, nil
	}
	return append([]model.Donation(nil), f.donations...), nil
}

func newDeps(t *testing.T) (Deps, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	c, err := query.NewCache(fb.fetch, query.Options{})
	require.NoError(t, err)
	return Deps{
		Backend: fb,
		Cache:   c,
		Profile: model.Profile{UserID: 7, FullName: "Asha Rao", Email: "asha@example.com", Phone: "9876543210"},
		Now:     clock,
	}, fb
}

func fillDonation(c *form.Controller[DonationValues], date string) {
	c.Set("donationType", "books")
	c.Set("address", "12 Lake Road")
	c.Set("city", "Pune")
	c.Set("pinCode", "411001")
	c.Set("description", "Two boxes of school textbooks")
	c.Set("condition", "good")
	c.Set("quantity", "3")
	c.Set("isPacked", "yes")
	c.Set("date", date)
	c.Set("timeSlot", "10:00 AM - 12:00 PM")
}

func TestDonation_DateConstraints(t *testing.T) {
	deps, fb := newDeps(t)
	m := NewDonationMutation(deps)

	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "sunday", date: "2026-10-18", want: "Pickup is not available on Sundays"},
		{name: "yesterday", date: "2026-10-15", want: "Pickup date cannot be in the past"},
		{name: "missing", date: "", want: "Please select a date for pickup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := form.New(DonationSchema(clock), DonationDefaults(deps.Profile))
			fillDonation(c, tt.date)
			_, ok := form.Submit(context.Background(), c, m)
			assert.False(t, ok)
			assert.Equal(t, tt.want, c.FieldError("date"))
		})
	}
	assert.Empty(t, fb.created)
}

func TestDonation_NextMondaySubmits(t *testing.T) {
	deps, fb := newDeps(t)
	c := form.New(DonationSchema(clock), DonationDefaults(deps.Profile))
	fillDonation(c, "2026-10-19")

	res, ok := form.Submit(context.Background(), c, NewDonationMutation(deps))
	require.True(t, ok)
	require.True(t, res.OK())
	require.Len(t, fb.created, 1)

	got := fb.created[0]
	assert.Equal(t, "2026-10-19", got.ScheduledDate)
	assert.Equal(t, "10:00 AM - 12:00 PM", got.ScheduledTimeSlot)
	assert.Equal(t, model.NewDonation{
		ItemName:          "books",
		Description:       "Two boxes of school textbooks",
		Category:          "books",
		UserID:            7,
		Images:            []string{},
		Status:            model.DonationAvailable,
		Condition:         "good",
		Quantity:          3,
		Location:          model.Location{BasicAddress: "12 Lake Road", City: "Pune", PinCode: "411001"},
		ScheduledDate:     "2026-10-19",
		ScheduledTimeSlot: "10:00 AM - 12:00 PM",
		IsPacked:          true,
	}, got)

	// the form resets to its defaults, keeping profile details
	assert.Equal(t, form.Pristine, c.Phase())
	assert.Equal(t, "Asha Rao", c.Value("name"))
	assert.Equal(t, "", c.Value("donationType"))
}

func TestDonation_RequiredFields(t *testing.T) {
	deps, fb := newDeps(t)
	c := form.New(DonationSchema(clock), DonationDefaults(model.Profile{}))

	_, ok := form.Submit(context.Background(), c, NewDonationMutation(deps))
	require.False(t, ok)
	errs := c.VisibleErrors()
	assert.Equal(t, "Please select a donation type", errs["donationType"])
	assert.Equal(t, "Name must be at least 2 characters", errs["name"])
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Equal(t, "Please indicate if items are packed", errs["isPacked"])
	assert.Equal(t, "Please specify the quantity", errs["quantity"])
	assert.Equal(t, "Please select a time slot", errs["timeSlot"])
	assert.NotContains(t, errs, "isUrgent")
	assert.NotContains(t, errs, "additionalNotes")
	assert.Empty(t, fb.created)
}

func TestDonation_InvalidatesList(t *testing.T) {
	deps, _ := newDeps(t)
	cancel := deps.Cache.Observe(api.KeyDonations, func(query.Resource) {})
	defer cancel()

	before := deps.Cache.Load(context.Background(), api.KeyDonations)
	list, _ := query.Value[[]model.Donation](before)
	require.Empty(t, list)

	c := form.New(DonationSchema(clock), DonationDefaults(deps.Profile))
	fillDonation(c, "2026-10-19")
	res, ok := form.Submit(context.Background(), c, NewDonationMutation(deps))
	require.True(t, ok && res.OK())
	deps.Cache.Wait()

	after := deps.Cache.Load(context.Background(), api.KeyDonations)
	list, _ = query.Value[[]model.Donation](after)
	require.Len(t, list, 1)
	assert.Equal(t, "books", list[0].ItemName)
}

func TestDonation_BackendErrorKeepsValues(t *testing.T) {
	deps, fb := newDeps(t)
	fb.fail = &api.Error{Status: 422, Message: "PIN code not serviced"}
	deps.Cache.Load(context.Background(), api.KeyDonations)

	c := form.New(DonationSchema(clock), DonationDefaults(deps.Profile))
	fillDonation(c, "2026-10-19")
	res, ok := form.Submit(context.Background(), c, NewDonationMutation(deps))
	require.True(t, ok)
	require.False(t, res.OK())

	n := Failure(DonationFailedTitle, res.Err)
	assert.Equal(t, Notice{Title: "Failed to submit donation", Body: "PIN code not serviced", Error: true}, n)
	assert.Equal(t, form.Editing, c.Phase())
	assert.Equal(t, "411001", c.Value("pinCode"))
	assert.False(t, deps.Cache.Peek(api.KeyDonations).Stale)
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{
		"3":      3,
		" 12 ":   12,
		"3 bags": 3,
		"abc":    1,
		"":       1,
		"0":      1,
		"-2":     -2,
		"+4":     4,

		"99999999999999999999 kg": math.MaxInt,
		"-99999999999999999999":   math.MinInt,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseQuantity(in), "input %q", in)
	}
}

func TestFeedback_RatingRequired(t *testing.T) {
	deps, fb := newDeps(t)
	m := NewFeedbackMutation(deps)
	c := form.New(FeedbackSchema(), nil)
	c.Set("comments", "Great service overall")
	c.Set("feedbackType", "pickup")

	_, ok := form.Submit(context.Background(), c, m)
	require.False(t, ok)
	assert.Equal(t, "Please select a rating", c.FieldError("rating"))
	assert.Empty(t, fb.feedback)

	c.Set("rating", "5")
	res, ok := form.Submit(context.Background(), c, m)
	require.True(t, ok)
	require.True(t, res.OK())
	require.Len(t, fb.feedback, 1)
	assert.Equal(t, model.NewFeedback{
		UserID:       7,
		Rating:       5,
		Comments:     "Great service overall",
		FeedbackType: "pickup",
		CreatedAt:    testNow,
	}, fb.feedback[0])
}

func TestFeedback_ShortComments(t *testing.T) {
	_, errs := FeedbackSchema().Validate(map[string]string{"rating": "4", "comments": "ok", "feedbackType": "app"})
	assert.Equal(t, "Please provide more details in your feedback", errs["comments"])
}

func TestPickup_Payload(t *testing.T) {
	deps, fb := newDeps(t)
	c := form.New(PickupSchema(clock), nil)
	c.Set("wasteType", "e-waste")
	c.Set("description", "Old monitor and two keyboards")
	c.Set("address", "4 Hill View, Pune")
	c.Set("date", "10/20/2026")
	c.Set("timeSlot", "8:00 AM - 10:00 AM")

	res, ok := form.Submit(context.Background(), c, NewPickupMutation(deps))
	require.True(t, ok && res.OK())
	require.Len(t, fb.reports, 1)
	assert.Equal(t, "E-Waste pickup", fb.reports[0].Title)
	assert.Equal(t, "2026-10-20", fb.reports[0].ScheduledDate)
	assert.Equal(t, model.ReportPending, fb.reports[0].Status)
}

func TestPickup_UnknownSlot(t *testing.T) {
	_, errs := PickupSchema(clock).Validate(map[string]string{
		"wasteType":   "garden",
		"description": "Hedge trimmings, four sacks",
		"address":     "4 Hill View",
		"date":        "2026-10-19",
		"timeSlot":    "midnight",
	})
	assert.Equal(t, map[string]string{"timeSlot": "Please select a time slot"}, map[string]string(errs))
}

func TestIssue_And_Help(t *testing.T) {
	deps, fb := newDeps(t)

	ic := form.New(IssueSchema(), map[string]string{"isUrgent": "false"})
	ic.Set("title", "Overflowing bin")
	ic.Set("issueType", "overflowing_bin")
	ic.Set("description", "The bin near the park overflows daily")
	ic.Set("location", "Park Street corner")
	ic.Set("isUrgent", "true")
	res, ok := form.Submit(context.Background(), ic, NewIssueMutation(deps))
	require.True(t, ok && res.OK())
	require.Len(t, fb.issues, 1)
	assert.True(t, fb.issues[0].IsUrgent)
	assert.Equal(t, model.IssuePending, fb.issues[0].Status)

	hc := form.New(HelpSchema(), HelpDefaults(deps.Profile))
	hc.Set("title", "Need winter blankets")
	hc.Set("category", "clothing")
	hc.Set("description", "Family of four needs blankets")
	hc.Set("location", "Ward 12, Pune")
	hres, ok := form.Submit(context.Background(), hc, NewHelpMutation(deps))
	require.True(t, ok && hres.OK())
	require.Len(t, fb.help, 1)
	assert.Equal(t, "9876543210", fb.help[0].ContactPhone)
	assert.Equal(t, model.HelpOpen, fb.help[0].Status)
}

func TestJoinEvent(t *testing.T) {
	deps, fb := newDeps(t)
	res := NewJoinEventMutation(deps).Execute(context.Background(), 9)
	require.True(t, res.OK())
	assert.Equal(t, []model.JoinEvent{{UserID: 7, EventID: 9}}, fb.joins)
}

func TestCanJoin(t *testing.T) {
	ev := model.Event{ID: 1, Status: model.EventUpcoming, MaxParticipants: 2, Participants: []int64{3}}
	assert.NoError(t, CanJoin(ev, 7))
	assert.ErrorIs(t, CanJoin(ev, 3), ErrAlreadyJoined)

	ev.Participants = append(ev.Participants, 4)
	assert.ErrorIs(t, CanJoin(ev, 7), ErrEventFull)

	ev.Status = model.EventCompleted
	assert.ErrorIs(t, CanJoin(ev, 7), ErrEventClosed)
}

func TestFailureMessage(t *testing.T) {
	n := Failure(JoinFailedTitle, errors.New("network error: connection refused"))
	assert.Equal(t, "network error: connection refused", n.Body)
	assert.True(t, n.Error)
}

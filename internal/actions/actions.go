// Package actions defines every form the customer can submit: its fields and
// rules, the request it maps to, and the cached lists the write invalidates.
package actions

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
	"greenpath/internal/util"
)

// Backend is the subset of the REST client that performs writes.
type Backend interface {
	CreateDonation(ctx context.Context, d model.NewDonation) (model.Donation, error)
	SubmitFeedback(ctx context.Context, f model.NewFeedback) (model.Feedback, error)
	JoinEvent(ctx context.Context, j model.JoinEvent) (model.Participation, error)
	CreateWasteReport(ctx context.Context, r model.NewWasteReport) (model.WasteReport, error)
	CreateIssue(ctx context.Context, i model.NewIssue) (model.Issue, error)
	CreateHelpRequest(ctx context.Context, h model.NewHelpRequest) (model.HelpRequest, error)
}

var _ Backend = (*api.Client)(nil)

// Deps carries what every mutation needs.
type Deps struct {
	Backend Backend
	Cache   *query.Cache
	Profile model.Profile
	Now     func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Option is one entry of a select field.
type Option struct {
	Value string
	Label string
}

// Values returns the raw values of opts.
func Values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// LabelOf returns the label for value, or value itself when unknown.
func LabelOf(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Notice is the message shown after a submission finishes.
type Notice struct {
	Title string
	Body  string
	Error bool
}

// Failure builds the error notice for a failed submission.
func Failure(title string, err error) Notice {
	return Notice{Title: title, Body: api.Message(err), Error: true}
}

// TimeSlots are the pickup windows offered for every scheduled collection.
var TimeSlots = []Option{
	{"8:00 AM - 10:00 AM", "8:00 AM - 10:00 AM"},
	{"10:00 AM - 12:00 PM", "10:00 AM - 12:00 PM"},
	{"12:00 PM - 2:00 PM", "12:00 PM - 2:00 PM"},
	{"2:00 PM - 4:00 PM", "2:00 PM - 4:00 PM"},
	{"4:00 PM - 6:00 PM", "4:00 PM - 6:00 PM"},
	{"6:00 PM - 8:00 PM", "6:00 PM - 8:00 PM"},
}

// ParseQuantity reads the leading integer of s. Input without one, or a
// quantity of zero, counts as a single item. Values beyond the int range
// saturate at its bounds.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		return n
	}
	if err != nil || n == 0 {
		return 1
	}
	return n
}

// scheduledDay normalises a validated date field to YYYY-MM-DD.
func scheduledDay(raw string, now time.Time) string {
	day, err := util.ParseDay(raw, now.Location())
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return day.Format(util.DateLayout)
}

func prefixes(keys ...string) []query.Matcher {
	out := make([]query.Matcher, len(keys))
	for i, k := range keys {
		out[i] = query.Prefix(k)
	}
	return out
}

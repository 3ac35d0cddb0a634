package api

import (
	"context"
	"fmt"
	"net/http"

	"greenpath/internal/model"
)

// Cache keys double as the GET paths of the list endpoints.
const (
	KeyWasteReports = "/api/waste-reports"
	KeyDonations    = "/api/donations"
	KeyEvents       = "/api/events"
	KeyIssues       = "/api/issues"
	KeyHelpRequests = "/api/help-requests"
	KeyLeaderboard  = "/api/leaderboard"
	KeyFeedback     = "/api/feedback"
)

// EventParticipantsPath is the registration endpoint of one event.
func EventParticipantsPath(eventID int64) string {
	return fmt.Sprintf("%s/%d/participants", KeyEvents, eventID)
}

func list[T model.Validator](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	for i, rec := range out {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func create[T model.Validator](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	if err := c.Do(ctx, http.MethodPost, path, body, &out); err != nil {
		return out, err
	}
	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func (c *Client) WasteReports(ctx context.Context) ([]model.WasteReport, error) {
	return list[model.WasteReport](ctx, c, KeyWasteReports)
}

func (c *Client) Donations(ctx context.Context) ([]model.Donation, error) {
	return list[model.Donation](ctx, c, KeyDonations)
}

func (c *Client) Events(ctx context.Context) ([]model.Event, error) {
	return list[model.Event](ctx, c, KeyEvents)
}

func (c *Client) Issues(ctx context.Context) ([]model.Issue, error) {
	return list[model.Issue](ctx, c, KeyIssues)
}

func (c *Client) HelpRequests(ctx context.Context) ([]model.HelpRequest, error) {
	return list[model.HelpRequest](ctx, c, KeyHelpRequests)
}

func (c *Client) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return list[model.LeaderboardEntry](ctx, c, KeyLeaderboard)
}

func (c *Client) CreateDonation(ctx context.Context, d model.NewDonation) (model.Donation, error) {
	return create[model.Donation](ctx, c, KeyDonations, d)
}

func (c *Client) SubmitFeedback(ctx context.Context, f model.NewFeedback) (model.Feedback, error) {
	return create[model.Feedback](ctx, c, KeyFeedback, f)
}

func (c *Client) JoinEvent(ctx context.Context, j model.JoinEvent) (model.Participation, error) {
	return create[model.Participation](ctx, c, EventParticipantsPath(j.EventID), j)
}

func (c *Client) CreateWasteReport(ctx context.Context, r model.NewWasteReport) (model.WasteReport, error) {
	return create[model.WasteReport](ctx, c, KeyWasteReports, r)
}

func (c *Client) CreateIssue(ctx context.Context, i model.NewIssue) (model.Issue, error) {
	return create[model.Issue](ctx, c, KeyIssues, i)
}

func (c *Client) CreateHelpRequest(ctx context.Context, h model.NewHelpRequest) (model.HelpRequest, error) {
	return create[model.HelpRequest](ctx, c, KeyHelpRequests, h)
}

// Fetch loads the list stored under a cache key. It has the shape of a
// query.Fetcher.
func (c *Client) Fetch(ctx context.Context, key string) (any, error) {
	switch key {
	case KeyWasteReports:
		return c.WasteReports(ctx)
	case KeyDonations:
		return c.Donations(ctx)
	case KeyEvents:
		return c.Events(ctx)
	case KeyIssues:
		return c.Issues(ctx)
	case KeyHelpRequests:
		return c.HelpRequests(ctx)
	case KeyLeaderboard:
		return c.Leaderboard(ctx)
	}
	return nil, fmt.Errorf("no endpoint for key %q", key)
}

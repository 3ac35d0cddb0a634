package actions

import (
	"context"
	"strconv"
	"time"

	"greenpath/internal/model"
	"greenpath/internal/query"
	"greenpath/internal/validate"
)

var FeedbackTypes = []Option{
	{"general", "General Feedback"},
	{"pickup", "Waste Pickup Service"},
	{"donation", "Donation Process"},
	{"issue", "Issue Resolution"},
	{"events", "Community Events"},
	{"app", "App Experience"},
}

var Ratings = []Option{
	{"5", "5 - Excellent"},
	{"4", "4 - Good"},
	{"3", "3 - Average"},
	{"2", "2 - Poor"},
	{"1", "1 - Very Poor"},
}

// FeedbackValues is the service feedback form.
type FeedbackValues struct {
	Rating       string `form:"rating" validate:"required,oneof=1 2 3 4 5" msg:"Please select a rating"`
	Comments     string `form:"comments" validate:"min=10" msg:"Please provide more details in your feedback"`
	FeedbackType string `form:"feedbackType" validate:"required,oneof=general pickup donation issue events app" msg:"Please select a feedback type"`
}

func FeedbackSchema() *validate.Schema[FeedbackValues] {
	return validate.New[FeedbackValues]()
}

func FeedbackPayload(v FeedbackValues, userID int64, now time.Time) model.NewFeedback {
	rating, _ := strconv.Atoi(v.Rating)
	return model.NewFeedback{
		UserID:       userID,
		Rating:       rating,
		Comments:     v.Comments,
		FeedbackType: v.FeedbackType,
		CreatedAt:    now.UTC(),
	}
}

var (
	FeedbackSubmitted = Notice{
		Title: "Feedback Submitted",
		Body:  "Thank you for your feedback! We appreciate your input.",
	}
	FeedbackFailedTitle = "Failed to submit feedback"
)

// NewFeedbackMutation sends feedback. No cached list depends on it.
func NewFeedbackMutation(d Deps) *query.Mutation[FeedbackValues, model.Feedback] {
	return query.NewMutation("submit feedback", d.Cache,
		func(ctx context.Context, v FeedbackValues) (model.Feedback, error) {
			return d.Backend.SubmitFeedback(ctx, FeedbackPayload(v, d.Profile.UserID, d.now()))
		},
	)
}

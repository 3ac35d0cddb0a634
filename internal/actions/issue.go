package actions

import (
	"context"

	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
	"greenpath/internal/validate"
)

var IssueTypes = []Option{
	{"missed_pickup", "Missed Pickup"},
	{"illegal_dumping", "Illegal Dumping"},
	{"overflowing_bin", "Overflowing Bin"},
	{"damaged_bin", "Damaged Bin"},
	{"other", "Other"},
}

// IssueValues is the raise-an-issue form.
type IssueValues struct {
	Title       string `form:"title" validate:"min=5" msg:"Please give the issue a short title"`
	IssueType   string `form:"issueType" validate:"required,oneof=missed_pickup illegal_dumping overflowing_bin damaged_bin other" msg:"Please select an issue type"`
	Description string `form:"description" validate:"min=10" msg:"Please describe the issue in at least 10 characters"`
	Location    string `form:"location" validate:"min=5" msg:"Please provide the location of the issue"`
	IsUrgent    bool   `form:"isUrgent"`
}

func IssueSchema() *validate.Schema[IssueValues] {
	return validate.New[IssueValues]()
}

func IssuePayload(v IssueValues, userID int64) model.NewIssue {
	return model.NewIssue{
		UserID:      userID,
		Title:       v.Title,
		IssueType:   v.IssueType,
		Description: v.Description,
		Location:    v.Location,
		IsUrgent:    v.IsUrgent,
		Status:      model.IssuePending,
	}
}

var (
	IssueRaised = Notice{
		Title: "Issue reported",
		Body:  "Thanks for letting us know. Our team will look into it.",
	}
	IssueFailedTitle = "Failed to report issue"
)

func NewIssueMutation(d Deps) *query.Mutation[IssueValues, model.Issue] {
	return query.NewMutation("raise issue", d.Cache,
		func(ctx context.Context, v IssueValues) (model.Issue, error) {
			return d.Backend.CreateIssue(ctx, IssuePayload(v, d.Profile.UserID))
		},
		prefixes(api.KeyIssues)...,
	)
}

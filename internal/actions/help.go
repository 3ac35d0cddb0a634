package actions

import (
	"context"

	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
	"greenpath/internal/validate"
)

var HelpCategories = []Option{
	{"food", "Food"},
	{"clothing", "Clothing"},
	{"shelter", "Shelter"},
	{"medical", "Medical"},
	{"education", "Education"},
	{"other", "Other"},
}

// HelpValues is the request-community-help form.
type HelpValues struct {
	Title        string `form:"title" validate:"min=5" msg:"Please give your request a short title"`
	Category     string `form:"category" validate:"required,oneof=food clothing shelter medical education other" msg:"Please select a category"`
	Description  string `form:"description" validate:"min=10" msg:"Please describe the help you need"`
	Location     string `form:"location" validate:"min=5" msg:"Please provide your location"`
	ContactPhone string `form:"contactPhone" validate:"phone" msg:"Please enter a valid phone number"`
	IsUrgent     bool   `form:"isUrgent"`
}

func HelpSchema() *validate.Schema[HelpValues] {
	return validate.New[HelpValues]()
}

func HelpDefaults(p model.Profile) map[string]string {
	return map[string]string{"contactPhone": p.Phone, "isUrgent": "false"}
}

func HelpPayload(v HelpValues, userID int64) model.NewHelpRequest {
	return model.NewHelpRequest{
		UserID:       userID,
		Title:        v.Title,
		Category:     v.Category,
		Description:  v.Description,
		Location:     v.Location,
		ContactPhone: v.ContactPhone,
		IsUrgent:     v.IsUrgent,
		Status:       model.HelpOpen,
	}
}

var (
	HelpRequested = Notice{
		Title: "Request posted",
		Body:  "Your neighbours can now see and respond to your request.",
	}
	HelpFailedTitle = "Failed to post help request"
)

func NewHelpMutation(d Deps) *query.Mutation[HelpValues, model.HelpRequest] {
	return query.NewMutation("request help", d.Cache,
		func(ctx context.Context, v HelpValues) (model.HelpRequest, error) {
			return d.Backend.CreateHelpRequest(ctx, HelpPayload(v, d.Profile.UserID))
		},
		prefixes(api.KeyHelpRequests)...,
	)
}

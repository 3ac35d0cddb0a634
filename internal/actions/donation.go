package actions

import (
	"context"
	"time"

	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
	"greenpath/internal/validate"
)

var DonationTypes = []Option{
	{"clothing", "Clothing"},
	{"furniture", "Furniture"},
	{"electronics", "Electronics"},
	{"books", "Books"},
	{"toys", "Toys"},
	{"household", "Household Items"},
	{"other", "Other"},
}

var Conditions = []Option{
	{"new", "New"},
	{"like_new", "Like New"},
	{"good", "Good"},
	{"fair", "Fair"},
	{"used", "Used"},
}

var YesNo = []Option{
	{"yes", "Yes"},
	{"no", "No"},
}

// DonationValues is the donation request form.
type DonationValues struct {
	DonationType    string `form:"donationType" validate:"required,oneof=clothing furniture electronics books toys household other" msg:"Please select a donation type"`
	Name            string `form:"name" validate:"min=2" msg:"Name must be at least 2 characters"`
	Email           string `form:"email" validate:"email" msg:"Please enter a valid email address"`
	Phone           string `form:"phone" validate:"phone" msg:"Please enter a valid phone number"`
	Address         string `form:"address" validate:"min=5" msg:"Please provide your complete address"`
	City            string `form:"city" validate:"min=2" msg:"Please provide your city"`
	PinCode         string `form:"pinCode" validate:"min=5" msg:"Please provide a valid PIN code"`
	Description     string `form:"description" validate:"min=10" msg:"Please provide a description of the donation items"`
	Condition       string `form:"condition" validate:"required,oneof=new like_new good fair used" msg:"Please select the condition of the item"`
	Quantity        string `form:"quantity" validate:"required" msg:"Please specify the quantity"`
	IsPacked        string `form:"isPacked" validate:"oneof=yes no" msg:"Please indicate if items are packed"`
	IsUrgent        bool   `form:"isUrgent"`
	Date            string `form:"date"`
	TimeSlot        string `form:"timeSlot" validate:"required" msg:"Please select a time slot"`
	AdditionalNotes string `form:"additionalNotes"`
}

// DonationSchema validates the donation form against the clock now.
func DonationSchema(now func() time.Time) *validate.Schema[DonationValues] {
	return validate.New[DonationValues]().With(
		validate.PickupDate("date", func(v DonationValues) string { return v.Date }, now),
		validate.Choice("timeSlot", func(v DonationValues) string { return v.TimeSlot }, Values(TimeSlots), "Please select a time slot"),
	)
}

// DonationDefaults pre-fills contact details from the profile.
func DonationDefaults(p model.Profile) map[string]string {
	return map[string]string{
		"name":     p.FullName,
		"email":    p.Email,
		"phone":    p.Phone,
		"isUrgent": "false",
	}
}

// DonationPayload maps a validated form to the create request.
func DonationPayload(v DonationValues, userID int64, now time.Time) model.NewDonation {
	return model.NewDonation{
		ItemName:    v.DonationType,
		Description: v.Description,
		Category:    v.DonationType,
		UserID:      userID,
		Images:      []string{},
		Status:      model.DonationAvailable,
		Condition:   v.Condition,
		Quantity:    ParseQuantity(v.Quantity),
		Location: model.Location{
			BasicAddress: v.Address,
			City:         v.City,
			PinCode:      v.PinCode,
		},
		ScheduledDate:     scheduledDay(v.Date, now),
		ScheduledTimeSlot: v.TimeSlot,
		IsPacked:          v.IsPacked == "yes",
		IsUrgent:          v.IsUrgent,
		AdditionalNotes:   v.AdditionalNotes,
	}
}

var (
	DonationSubmitted = Notice{
		Title: "Donation submitted successfully",
		Body:  "Thank you for your donation. We'll contact you to arrange a pickup.",
	}
	DonationFailedTitle = "Failed to submit donation"
)

// NewDonationMutation creates donations and refreshes the donation list.
func NewDonationMutation(d Deps) *query.Mutation[DonationValues, model.Donation] {
	return query.NewMutation("create donation", d.Cache,
		func(ctx context.Context, v DonationValues) (model.Donation, error) {
			return d.Backend.CreateDonation(ctx, DonationPayload(v, d.Profile.UserID, d.now()))
		},
		prefixes(api.KeyDonations, api.KeyLeaderboard)...,
	)
}

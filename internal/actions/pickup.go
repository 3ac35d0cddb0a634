package actions

import (
	"context"
	"time"

	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
	"greenpath/internal/validate"
)

var WasteTypes = []Option{
	{"household", "Household Waste"},
	{"recyclable", "Recyclables"},
	{"e-waste", "E-Waste"},
	{"hazardous", "Hazardous Waste"},
	{"garden", "Garden Waste"},
	{"bulky", "Bulky Items"},
}

// PickupValues is the schedule-a-pickup form.
type PickupValues struct {
	WasteType    string `form:"wasteType" validate:"required,oneof=household recyclable e-waste hazardous garden bulky" msg:"Please select the type of waste"`
	Description  string `form:"description" validate:"min=10" msg:"Please describe the waste to be collected"`
	Address      string `form:"address" validate:"min=5" msg:"Please provide your complete address"`
	Date         string `form:"date"`
	TimeSlot     string `form:"timeSlot" validate:"required" msg:"Please select a time slot"`
	Instructions string `form:"instructions"`
}

func PickupSchema(now func() time.Time) *validate.Schema[PickupValues] {
	return validate.New[PickupValues]().With(
		validate.PickupDate("date", func(v PickupValues) string { return v.Date }, now),
		validate.Choice("timeSlot", func(v PickupValues) string { return v.TimeSlot }, Values(TimeSlots), "Please select a time slot"),
	)
}

func PickupPayload(v PickupValues, userID int64, now time.Time) model.NewWasteReport {
	return model.NewWasteReport{
		UserID:            userID,
		Title:             LabelOf(WasteTypes, v.WasteType) + " pickup",
		WasteType:         v.WasteType,
		Description:       v.Description,
		Location:          v.Address,
		ScheduledDate:     scheduledDay(v.Date, now),
		ScheduledTimeSlot: v.TimeSlot,
		Instructions:      v.Instructions,
		Status:            model.ReportPending,
	}
}

var (
	PickupScheduled = Notice{
		Title: "Pickup scheduled",
		Body:  "We'll confirm your collection slot shortly.",
	}
	PickupFailedTitle = "Failed to schedule pickup"
)

func NewPickupMutation(d Deps) *query.Mutation[PickupValues, model.WasteReport] {
	return query.NewMutation("schedule pickup", d.Cache,
		func(ctx context.Context, v PickupValues) (model.WasteReport, error) {
			return d.Backend.CreateWasteReport(ctx, PickupPayload(v, d.Profile.UserID, d.now()))
		},
		prefixes(api.KeyWasteReports, api.KeyLeaderboard)...,
	)
}

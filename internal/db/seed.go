package db

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

// Seed fills an empty database with the demo user, a few neighbours for the
// leaderboard and upcoming events. It does nothing once events exist.
func Seed(db *sql.DB, demo model.Profile, now time.Time) error {
	var n int
	if err := sq.Select("COUNT(*)").From("events").RunWith(db).QueryRow().Scan(&n); err != nil {
		return fmt.Errorf("failed to count events: %w", err)
	}
	if n > 0 {
		return nil
	}

	users := []model.Profile{
		demo,
		{UserID: demo.UserID + 1, FullName: "Asha Verma", SocialPoints: 320},
		{UserID: demo.UserID + 2, FullName: "Rohan Mehta", SocialPoints: 140},
		{UserID: demo.UserID + 3, FullName: "Lena Ortiz", SocialPoints: 85},
	}
	for _, u := range users {
		if err := EnsureUser(db, u); err != nil {
			return err
		}
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC)
	events := []model.Event{
		{
			Title:           "Riverside Clean-up Drive",
			Description:     "Collect plastic waste along the river bank. Gloves and bags provided.",
			Date:            day.AddDate(0, 0, 3),
			Location:        model.EventLocation{Address: "North Ghat, River Road", City: "Pune"},
			Status:          model.EventUpcoming,
			OrganizerID:     demo.UserID + 1,
			MaxParticipants: 40,
		},
		{
			Title:           "E-waste Collection Camp",
			Description:     "Drop off old phones, chargers and batteries for safe recycling.",
			Date:            day.AddDate(0, 0, 9),
			Location:        model.EventLocation{Address: "Community Hall, Sector 4", City: "Pune"},
			Status:          model.EventUpcoming,
			OrganizerID:     demo.UserID + 2,
			MaxParticipants: 2,
		},
		{
			Title:       "Composting Workshop",
			Description: "Learn to turn kitchen scraps into compost at home.",
			Date:        day.AddDate(0, 0, -5),
			Location:    model.EventLocation{Address: "Green Park Pavilion", City: "Pune"},
			Status:      model.EventCompleted,
			OrganizerID: demo.UserID + 1,
		},
	}
	for _, e := range events {
		if _, err := InsertEvent(db, e); err != nil {
			return err
		}
	}

	_, err := InsertWasteReport(db, model.NewWasteReport{
		UserID:            demo.UserID,
		Title:             "Recyclable pickup",
		WasteType:         "recyclable",
		Description:       "Two bags of sorted paper and cardboard.",
		Location:          "12 Lake View Road, Pune",
		ScheduledDate:     day.AddDate(0, 0, 2).Format("2006-01-02"),
		ScheduledTimeSlot: "10:00 AM - 12:00 PM",
		Status:            model.ReportScheduled,
	})
	return err
}

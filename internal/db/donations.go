package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

var donationColumns = []string{
	"id", "user_id", "item_name", "COALESCE(description, '')", "COALESCE(category, '')",
	"COALESCE(condition, '')", "quantity", "status", "location", "COALESCE(scheduled_date, '')",
	"COALESCE(scheduled_time_slot, '')", "is_packed", "is_urgent", "COALESCE(additional_notes, '')",
	"images", "created_at",
}

func scanDonation(row sq.RowScanner) (model.Donation, error) {
	var d model.Donation
	var status, location, images, createdAt string
	var packed, urgent int
	if err := row.Scan(&d.ID, &d.UserID, &d.ItemName, &d.Description, &d.Category, &d.Condition,
		&d.Quantity, &status, &location, &d.ScheduledDate, &d.ScheduledTimeSlot, &packed, &urgent,
		&d.AdditionalNotes, &images, &createdAt); err != nil {
		return model.Donation{}, err
	}
	d.Status = model.DonationStatus(status)
	d.IsPacked = packed == 1
	d.IsUrgent = urgent == 1
	d.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(location), &d.Location); err != nil {
		return model.Donation{}, fmt.Errorf("donation %d location: %w", d.ID, err)
	}
	if err := json.Unmarshal([]byte(images), &d.Images); err != nil {
		return model.Donation{}, fmt.Errorf("donation %d images: %w", d.ID, err)
	}
	return d, nil
}

// ListDonations returns donations, newest first.
func ListDonations(db *sql.DB, f Filter) ([]model.Donation, error) {
	q := f.apply(sq.Select(donationColumns...).From("donations"), "user_id", "status").
		OrderBy("created_at DESC", "id DESC")

	rows, err := q.RunWith(db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	results := []model.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation row: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating donation rows: %w", err)
	}
	return results, nil
}

// GetDonation retrieves a single donation by ID.
func GetDonation(db *sql.DB, id int64) (model.Donation, error) {
	row := sq.Select(donationColumns...).From("donations").Where(sq.Eq{"id": id}).RunWith(db).QueryRow()
	d, err := scanDonation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Donation{}, ErrNotFound
	}
	if err != nil {
		return model.Donation{}, fmt.Errorf("failed to get donation: %w", err)
	}
	return d, nil
}

// InsertDonation records a new donation offer.
func InsertDonation(db *sql.DB, d model.NewDonation) (model.Donation, error) {
	location, err := json.Marshal(d.Location)
	if err != nil {
		return model.Donation{}, fmt.Errorf("failed to encode donation location: %w", err)
	}
	images := d.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return model.Donation{}, fmt.Errorf("failed to encode donation images: %w", err)
	}
	status := d.Status
	if status == "" {
		status = model.DonationAvailable
	}

	res, err := sq.Insert("donations").
		Columns("user_id", "item_name", "description", "category", "condition", "quantity", "status",
			"location", "scheduled_date", "scheduled_time_slot", "is_packed", "is_urgent",
			"additional_notes", "images").
		Values(d.UserID, d.ItemName, nullable(d.Description), nullable(d.Category), nullable(d.Condition),
			max(d.Quantity, 1), string(status), string(location), nullable(d.ScheduledDate),
			nullable(d.ScheduledTimeSlot), boolInt(d.IsPacked), boolInt(d.IsUrgent),
			nullable(d.AdditionalNotes), string(imagesJSON)).
		RunWith(db).Exec()
	if err != nil {
		return model.Donation{}, fmt.Errorf("failed to insert donation: %w", err)
	}
	id, err := lastID(res, "donation")
	if err != nil {
		return model.Donation{}, err
	}
	return GetDonation(db, id)
}

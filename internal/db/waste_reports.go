package db

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

var wasteReportColumns = []string{
	"id", "user_id", "title", "COALESCE(waste_type, '')", "COALESCE(description, '')",
	"COALESCE(location, '')", "status", "COALESCE(scheduled_date, '')",
	"COALESCE(scheduled_time_slot, '')", "COALESCE(completed_date, '')", "created_at",
}

func scanWasteReport(row sq.RowScanner) (model.WasteReport, error) {
	var r model.WasteReport
	var status, createdAt string
	if err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.WasteType, &r.Description, &r.Location,
		&status, &r.ScheduledDate, &r.ScheduledTimeSlot, &r.CompletedDate, &createdAt); err != nil {
		return model.WasteReport{}, err
	}
	r.Status = model.ReportStatus(status)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// ListWasteReports returns pickups, newest first.
func ListWasteReports(db *sql.DB, f Filter) ([]model.WasteReport, error) {
	q := f.apply(sq.Select(wasteReportColumns...).From("waste_reports"), "user_id", "status").
		OrderBy("created_at DESC", "id DESC")

	rows, err := q.RunWith(db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list waste reports: %w", err)
	}
	defer rows.Close()

	results := []model.WasteReport{}
	for rows.Next() {
		r, err := scanWasteReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waste report row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating waste report rows: %w", err)
	}
	return results, nil
}

// GetWasteReport retrieves a single pickup by ID.
func GetWasteReport(db *sql.DB, id int64) (model.WasteReport, error) {
	row := sq.Select(wasteReportColumns...).From("waste_reports").Where(sq.Eq{"id": id}).RunWith(db).QueryRow()
	r, err := scanWasteReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WasteReport{}, ErrNotFound
	}
	if err != nil {
		return model.WasteReport{}, fmt.Errorf("failed to get waste report: %w", err)
	}
	return r, nil
}

// InsertWasteReport creates a pickup request.
func InsertWasteReport(db *sql.DB, r model.NewWasteReport) (model.WasteReport, error) {
	if r.Status == "" {
		r.Status = model.ReportPending
	}
	res, err := sq.Insert("waste_reports").
		Columns("user_id", "title", "waste_type", "description", "location", "status",
			"scheduled_date", "scheduled_time_slot", "instructions").
		Values(r.UserID, r.Title, nullable(r.WasteType), nullable(r.Description), nullable(r.Location),
			string(r.Status), nullable(r.ScheduledDate), nullable(r.ScheduledTimeSlot), nullable(r.Instructions)).
		RunWith(db).Exec()
	if err != nil {
		return model.WasteReport{}, fmt.Errorf("failed to insert waste report: %w", err)
	}
	id, err := lastID(res, "waste report")
	if err != nil {
		return model.WasteReport{}, err
	}
	return GetWasteReport(db, id)
}

// SetWasteReportStatus moves a pickup along its lifecycle.
func SetWasteReportStatus(db *sql.DB, id int64, status model.ReportStatus, completedDate string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	res, err := sq.Update("waste_reports").
		Set("status", string(status)).
		Set("completed_date", nullable(completedDate)).
		Where(sq.Eq{"id": id}).
		RunWith(db).Exec()
	if err != nil {
		return fmt.Errorf("failed to update waste report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

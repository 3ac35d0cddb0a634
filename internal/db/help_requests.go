package db

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

var helpColumns = []string{
	"id", "user_id", "title", "COALESCE(category, '')", "COALESCE(description, '')",
	"COALESCE(location, '')", "COALESCE(contact_phone, '')", "is_urgent", "status", "created_at",
}

func scanHelpRequest(row sq.RowScanner) (model.HelpRequest, error) {
	var h model.HelpRequest
	var urgent int
	var status, createdAt string
	if err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Category, &h.Description, &h.Location,
		&h.ContactPhone, &urgent, &status, &createdAt); err != nil {
		return model.HelpRequest{}, err
	}
	h.IsUrgent = urgent == 1
	h.Status = model.HelpStatus(status)
	h.Date = parseTime(createdAt)
	return h, nil
}

// ListHelpRequests returns open community requests, urgent first.
func ListHelpRequests(db *sql.DB, f Filter) ([]model.HelpRequest, error) {
	q := f.apply(sq.Select(helpColumns...).From("help_requests"), "user_id", "status").
		OrderBy("is_urgent DESC", "created_at DESC", "id DESC")

	rows, err := q.RunWith(db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list help requests: %w", err)
	}
	defer rows.Close()

	results := []model.HelpRequest{}
	for rows.Next() {
		h, err := scanHelpRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan help request row: %w", err)
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating help request rows: %w", err)
	}
	return results, nil
}

func GetHelpRequest(db *sql.DB, id int64) (model.HelpRequest, error) {
	h, err := scanHelpRequest(sq.Select(helpColumns...).From("help_requests").Where(sq.Eq{"id": id}).RunWith(db).QueryRow())
	if errors.Is(err, sql.ErrNoRows) {
		return model.HelpRequest{}, ErrNotFound
	}
	if err != nil {
		return model.HelpRequest{}, fmt.Errorf("failed to get help request: %w", err)
	}
	return h, nil
}

func InsertHelpRequest(db *sql.DB, h model.NewHelpRequest) (model.HelpRequest, error) {
	status := h.Status
	if status == "" {
		status = model.HelpOpen
	}
	res, err := sq.Insert("help_requests").
		Columns("user_id", "title", "category", "description", "location", "contact_phone", "is_urgent", "status").
		Values(h.UserID, h.Title, nullable(h.Category), nullable(h.Description), nullable(h.Location),
			nullable(h.ContactPhone), boolInt(h.IsUrgent), string(status)).
		RunWith(db).Exec()
	if err != nil {
		return model.HelpRequest{}, fmt.Errorf("failed to insert help request: %w", err)
	}
	id, err := lastID(res, "help request")
	if err != nil {
		return model.HelpRequest{}, err
	}
	return GetHelpRequest(db, id)
}

package db

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

var issueColumns = []string{
	"id", "user_id", "title", "COALESCE(issue_type, '')", "COALESCE(description, '')",
	"COALESCE(location, '')", "is_urgent", "status", "created_at",
}

func scanIssue(row sq.RowScanner) (model.Issue, error) {
	var i model.Issue
	var urgent int
	var status, createdAt string
	if err := row.Scan(&i.ID, &i.UserID, &i.Title, &i.IssueType, &i.Description, &i.Location,
		&urgent, &status, &createdAt); err != nil {
		return model.Issue{}, err
	}
	i.IsUrgent = urgent == 1
	i.Status = model.IssueStatus(status)
	i.CreatedAt = parseTime(createdAt)
	return i, nil
}

// ListIssues returns raised issues, newest first.
func ListIssues(db *sql.DB, f Filter) ([]model.Issue, error) {
	q := f.apply(sq.Select(issueColumns...).From("issues"), "user_id", "status").
		OrderBy("created_at DESC", "id DESC")

	rows, err := q.RunWith(db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	results := []model.Issue{}
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		results = append(results, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue rows: %w", err)
	}
	return results, nil
}

func GetIssue(db *sql.DB, id int64) (model.Issue, error) {
	i, err := scanIssue(sq.Select(issueColumns...).From("issues").Where(sq.Eq{"id": id}).RunWith(db).QueryRow())
	if errors.Is(err, sql.ErrNoRows) {
		return model.Issue{}, ErrNotFound
	}
	if err != nil {
		return model.Issue{}, fmt.Errorf("failed to get issue: %w", err)
	}
	return i, nil
}

func InsertIssue(db *sql.DB, i model.NewIssue) (model.Issue, error) {
	status := i.Status
	if status == "" {
		status = model.IssuePending
	}
	res, err := sq.Insert("issues").
		Columns("user_id", "title", "issue_type", "description", "location", "is_urgent", "status").
		Values(i.UserID, i.Title, nullable(i.IssueType), nullable(i.Description), nullable(i.Location),
			boolInt(i.IsUrgent), string(status)).
		RunWith(db).Exec()
	if err != nil {
		return model.Issue{}, fmt.Errorf("failed to insert issue: %w", err)
	}
	id, err := lastID(res, "issue")
	if err != nil {
		return model.Issue{}, err
	}
	return GetIssue(db, id)
}

package db

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

// InsertFeedback stores a rating and its comments.
func InsertFeedback(db *sql.DB, f model.NewFeedback) (model.Feedback, error) {
	if f.Rating < 1 || f.Rating > 5 {
		return model.Feedback{}, fmt.Errorf("rating %d out of range", f.Rating)
	}
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := sq.Insert("feedback").
		Columns("user_id", "rating", "comments", "feedback_type", "created_at").
		Values(f.UserID, f.Rating, nullable(f.Comments), nullable(f.FeedbackType), createdAt.UTC().Format(time.RFC3339)).
		RunWith(db).Exec()
	if err != nil {
		return model.Feedback{}, fmt.Errorf("failed to insert feedback: %w", err)
	}
	id, err := lastID(res, "feedback")
	if err != nil {
		return model.Feedback{}, err
	}
	return model.Feedback{
		ID:           id,
		UserID:       f.UserID,
		Rating:       f.Rating,
		Comments:     f.Comments,
		FeedbackType: f.FeedbackType,
		CreatedAt:    createdAt.UTC().Truncate(time.Second),
	}, nil
}

// CountFeedback returns how many feedback entries a user has left.
func CountFeedback(db *sql.DB, userID int64) (int, error) {
	var n int
	err := sq.Select("COUNT(*)").From("feedback").Where(sq.Eq{"user_id": userID}).RunWith(db).QueryRow().Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return n, nil
}

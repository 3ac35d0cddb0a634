package db

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

// Social points awarded by the development backend.
const (
	PointsPickup   = 10
	PointsDonation = 20
	PointsEvent    = 15
)

// badgeThresholds are checked highest first.
var badgeThresholds = []struct {
	points int
	name   string
}{
	{500, "Planet Guardian"},
	{250, "Eco Champion"},
	{100, "Green Starter"},
}

// Badges returns the badges earned at the given point total.
func Badges(points int) []string {
	var out []string
	for _, b := range badgeThresholds {
		if points >= b.points {
			out = append(out, b.name)
		}
	}
	return out
}

// EnsureUser creates the user if it does not exist yet. Existing rows keep
// their points.
func EnsureUser(db *sql.DB, p model.Profile) error {
	_, err := sq.Insert("users").
		Columns("id", "full_name", "email", "phone", "social_points").
		Values(p.UserID, p.FullName, nullable(p.Email), nullable(p.Phone), p.SocialPoints).
		Suffix("ON CONFLICT(id) DO NOTHING").
		RunWith(db).Exec()
	if err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

// GetUser returns the profile stored for id.
func GetUser(db *sql.DB, id int64) (model.Profile, error) {
	var p model.Profile
	err := sq.Select("id", "full_name", "COALESCE(email, '')", "COALESCE(phone, '')", "social_points").
		From("users").Where(sq.Eq{"id": id}).RunWith(db).QueryRow().
		Scan(&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.SocialPoints)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user: %w", err)
	}
	return p, nil
}

// AwardPoints adds points to a user's total. Unknown users get a row with a
// placeholder name.
func AwardPoints(db *sql.DB, userID int64, points int) error {
	if err := EnsureUser(db, model.Profile{UserID: userID, FullName: fmt.Sprintf("User %d", userID)}); err != nil {
		return err
	}
	_, err := sq.Update("users").
		Set("social_points", sq.Expr("social_points + ?", points)).
		Where(sq.Eq{"id": userID}).
		RunWith(db).Exec()
	if err != nil {
		return fmt.Errorf("failed to award points: %w", err)
	}
	return nil
}

// Leaderboard ranks users by social points. Ties share a rank.
func Leaderboard(db *sql.DB, limit int) ([]model.LeaderboardEntry, error) {
	q := sq.Select("id", "full_name", "social_points").From("users").
		OrderBy("social_points DESC", "id ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := q.RunWith(db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer rows.Close()

	results := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.FullName, &e.SocialPoints); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		e.Rank = len(results) + 1
		if n := len(results); n > 0 && results[n-1].SocialPoints == e.SocialPoints {
			e.Rank = results[n-1].Rank
		}
		e.Badges = Badges(e.SocialPoints)
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}
	return results, nil
}

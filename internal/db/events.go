package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"greenpath/internal/model"
)

var eventColumns = []string{
	"id", "title", "COALESCE(description, '')", "date", "COALESCE(address, '')",
	"COALESCE(city, '')", "status", "COALESCE(organizer_id, 0)", "max_participants",
}

func scanEvent(row sq.RowScanner) (model.Event, error) {
	var e model.Event
	var date, status string
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Location.Address,
		&e.Location.City, &status, &e.OrganizerID, &e.MaxParticipants); err != nil {
		return model.Event{}, err
	}
	e.Date = parseTime(date)
	e.Status = model.EventStatus(status)
	return e, nil
}

// ListEvents returns events in date order with their participant ids.
func ListEvents(db *sql.DB, f Filter) ([]model.Event, error) {
	q := f.apply(sq.Select(eventColumns...).From("events"), "", "status").OrderBy("date ASC", "id ASC")

	rows, err := q.RunWith(db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	results := []model.Event{}
	index := map[int64]int{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		index[e.ID] = len(results)
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	rows.Close()

	prows, err := sq.Select("event_id", "user_id").From("event_participants").
		OrderBy("joined_at ASC").RunWith(db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var eventID, userID int64
		if err := prows.Scan(&eventID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		if i, ok := index[eventID]; ok {
			results[i].Participants = append(results[i].Participants, userID)
		}
	}
	return results, prows.Err()
}

// GetEvent retrieves a single event with its participants.
func GetEvent(db *sql.DB, id int64) (model.Event, error) {
	row := sq.Select(eventColumns...).From("events").Where(sq.Eq{"id": id}).RunWith(db).QueryRow()
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrNotFound
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	rows, err := sq.Select("user_id").From("event_participants").Where(sq.Eq{"event_id": id}).
		OrderBy("joined_at ASC").RunWith(db).Query()
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return model.Event{}, fmt.Errorf("failed to scan participant row: %w", err)
		}
		e.Participants = append(e.Participants, userID)
	}
	return e, rows.Err()
}

// InsertEvent creates a community event.
func InsertEvent(db *sql.DB, e model.Event) (int64, error) {
	if err := e.Status.Validate(); err != nil {
		return 0, err
	}
	res, err := sq.Insert("events").
		Columns("title", "description", "date", "address", "city", "status", "organizer_id", "max_participants").
		Values(e.Title, nullable(e.Description), e.Date.UTC().Format(time.RFC3339), nullable(e.Location.Address),
			nullable(e.Location.City), string(e.Status), e.OrganizerID, e.MaxParticipants).
		RunWith(db).Exec()
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return lastID(res, "event")
}

// JoinEvent registers userID for an upcoming event with free places.
func JoinEvent(db *sql.DB, eventID, userID int64) (model.Participation, error) {
	e, err := GetEvent(db, eventID)
	if err != nil {
		return model.Participation{}, err
	}
	switch {
	case e.Status != model.EventUpcoming:
		return model.Participation{}, ErrEventClosed
	case e.Joined(userID):
		return model.Participation{}, ErrAlreadyJoined
	case e.Full():
		return model.Participation{}, ErrEventFull
	}

	if _, err := sq.Insert("event_participants").Columns("event_id", "user_id").
		Values(eventID, userID).RunWith(db).Exec(); err != nil {
		return model.Participation{}, fmt.Errorf("failed to join event: %w", err)
	}

	var joinedAt string
	err = sq.Select("joined_at").From("event_participants").
		Where(sq.Eq{"event_id": eventID, "user_id": userID}).RunWith(db).QueryRow().Scan(&joinedAt)
	if err != nil {
		return model.Participation{}, fmt.Errorf("failed to read participation: %w", err)
	}
	return model.Participation{EventID: eventID, UserID: userID, JoinedAt: parseTime(joinedAt)}, nil
}

// Package db stores the records served by the development backend.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    full_name     TEXT NOT NULL,
    email         TEXT,
    phone         TEXT,
    social_points INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS waste_reports (
    id                  INTEGER PRIMARY KEY,
    user_id             INTEGER NOT NULL,
    title               TEXT NOT NULL,
    waste_type          TEXT,
    description         TEXT,
    location            TEXT,
    status              TEXT NOT NULL CHECK(status IN ('pending','scheduled','in_progress','completed','rejected','cancelled')),
    scheduled_date      TEXT,
    scheduled_time_slot TEXT,
    instructions        TEXT,
    completed_date      TEXT,
    created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS donations (
    id                  INTEGER PRIMARY KEY,
    user_id             INTEGER NOT NULL,
    item_name           TEXT NOT NULL,
    description         TEXT,
    category            TEXT,
    condition           TEXT,
    quantity            INTEGER NOT NULL DEFAULT 1,
    status              TEXT NOT NULL CHECK(status IN ('available','requested','matched','completed')),
    location            TEXT NOT NULL DEFAULT '{}',
    scheduled_date      TEXT,
    scheduled_time_slot TEXT,
    is_packed           INTEGER NOT NULL DEFAULT 0,
    is_urgent           INTEGER NOT NULL DEFAULT 0,
    additional_notes    TEXT,
    images              TEXT NOT NULL DEFAULT '[]',
    created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS events (
    id               INTEGER PRIMARY KEY,
    title            TEXT NOT NULL,
    description      TEXT,
    date             TEXT NOT NULL,
    address          TEXT,
    city             TEXT,
    status           TEXT NOT NULL CHECK(status IN ('upcoming','ongoing','completed','cancelled')),
    organizer_id     INTEGER,
    max_participants INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS event_participants (
    event_id  INTEGER NOT NULL REFERENCES events(id),
    user_id   INTEGER NOT NULL,
    joined_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    PRIMARY KEY (event_id, user_id)
);

CREATE TABLE IF NOT EXISTS issues (
    id          INTEGER PRIMARY KEY,
    user_id     INTEGER NOT NULL,
    title       TEXT NOT NULL,
    issue_type  TEXT,
    description TEXT,
    location    TEXT,
    is_urgent   INTEGER NOT NULL DEFAULT 0,
    status      TEXT NOT NULL CHECK(status IN ('pending','in_progress','resolved','closed')),
    created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS help_requests (
    id            INTEGER PRIMARY KEY,
    user_id       INTEGER NOT NULL,
    title         TEXT NOT NULL,
    category      TEXT,
    description   TEXT,
    location      TEXT,
    contact_phone TEXT,
    is_urgent     INTEGER NOT NULL DEFAULT 0,
    status        TEXT NOT NULL CHECK(status IN ('open','in_progress','fulfilled','closed')),
    created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS feedback (
    id            INTEGER PRIMARY KEY,
    user_id       INTEGER NOT NULL,
    rating        INTEGER NOT NULL CHECK(rating BETWEEN 1 AND 5),
    comments      TEXT,
    feedback_type TEXT,
    created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_waste_reports_user_id ON waste_reports(user_id);
CREATE INDEX IF NOT EXISTS idx_donations_user_id ON donations(user_id);
CREATE INDEX IF NOT EXISTS idx_issues_user_id ON issues(user_id);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
CREATE INDEX IF NOT EXISTS idx_users_points ON users(social_points DESC);
`

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyJoined = errors.New("already joined")
	ErrEventFull     = errors.New("event is full")
	ErrEventClosed   = errors.New("event is not open for registration")
)

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Filter narrows list queries. Zero values match everything.
type Filter struct {
	UserID int64
	Status string
}

func (f Filter) apply(b sq.SelectBuilder, userCol, statusCol string) sq.SelectBuilder {
	if f.UserID > 0 && userCol != "" {
		b = b.Where(sq.Eq{userCol: f.UserID})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{statusCol: f.Status})
	}
	return b
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func lastID(res sql.Result, what string) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id for %s: %w", what, err)
	}
	return id, nil
}

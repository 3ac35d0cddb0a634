package model

import (
	"fmt"
	"time"
)

// Location is the structured address attached to donations.
type Location struct {
	BasicAddress string `json:"basicAddress"`
	City         string `json:"city"`
	PinCode      string `json:"pinCode"`
}

// EventLocation is where a community event takes place.
type EventLocation struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

// WasteReport is a scheduled or historical waste pickup.
type WasteReport struct {
	ID                int64        `json:"id"`
	UserID            int64        `json:"userId"`
	Title             string       `json:"title"`
	WasteType         string       `json:"wasteType,omitempty"`
	Description       string       `json:"description,omitempty"`
	Location          string       `json:"location"`
	Status            ReportStatus `json:"status"`
	ScheduledDate     string       `json:"scheduledDate,omitempty"`
	ScheduledTimeSlot string       `json:"scheduledTimeSlot,omitempty"`
	CompletedDate     string       `json:"completedDate,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// Donation is an item offered to the community.
type Donation struct {
	ID                int64          `json:"id"`
	UserID            int64          `json:"userId"`
	ItemName          string         `json:"itemName"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	Condition         string         `json:"condition,omitempty"`
	Quantity          int            `json:"quantity"`
	Status            DonationStatus `json:"status"`
	Location          Location       `json:"location"`
	ScheduledDate     string         `json:"scheduledDate,omitempty"`
	ScheduledTimeSlot string         `json:"scheduledTimeSlot,omitempty"`
	IsPacked          bool           `json:"isPacked"`
	IsUrgent          bool           `json:"isUrgent"`
	AdditionalNotes   string         `json:"additionalNotes,omitempty"`
	Images            []string       `json:"images"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// Event is a community clean-up or awareness event.
type Event struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Date            time.Time     `json:"date"`
	Location        EventLocation `json:"location"`
	Status          EventStatus   `json:"status"`
	OrganizerID     int64         `json:"organizerId"`
	MaxParticipants int           `json:"maxParticipants"`
	Participants    []int64       `json:"participants,omitempty"`
}

// Joined reports whether userID is already registered for the event.
func (e Event) Joined(userID int64) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Full reports whether the event has no seats left. Zero means unlimited.
func (e Event) Full() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

// Issue is a problem raised by a customer.
type Issue struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Title       string      `json:"title"`
	IssueType   string      `json:"issueType"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	IsUrgent    bool        `json:"isUrgent"`
	Status      IssueStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// HelpRequest asks the community for assistance.
type HelpRequest struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	ContactPhone string     `json:"contactPhone,omitempty"`
	IsUrgent     bool       `json:"isUrgent"`
	Status       HelpStatus `json:"status"`
	Date         time.Time  `json:"date"`
}

// Feedback is a rating plus comments about the service.
type Feedback struct {
	ID           int64     `json:"id,omitempty"`
	UserID       int64     `json:"userId"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	FeedbackType string    `json:"feedbackType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LeaderboardEntry ranks users by social points.
type LeaderboardEntry struct {
	Rank         int      `json:"rank"`
	UserID       int64    `json:"userId"`
	FullName     string   `json:"fullName"`
	SocialPoints int      `json:"socialPoints"`
	Badges       []string `json:"badges,omitempty"`
}

// Profile is the signed-in customer as configured locally.
type Profile struct {
	UserID       int64
	FullName     string
	Email        string
	Phone        string
	SocialPoints int
}

// Validator is implemented by every record decoded from the backend.
type Validator interface {
	Validate() error
}

func errInvalid(kind string, id int64) error {
	return fmt.Errorf("%s: invalid id %d", kind, id)
}

func (r WasteReport) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("waste report: invalid id %d", r.ID)
	}
	return r.Status.Validate()
}

func (d Donation) Validate() error {
	if d.ID <= 0 {
		return fmt.Errorf("donation: invalid id %d", d.ID)
	}
	if d.Quantity < 0 {
		return fmt.Errorf("donation %d: negative quantity", d.ID)
	}
	return d.Status.Validate()
}

func (e Event) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("event: invalid id %d", e.ID)
	}
	if e.MaxParticipants < 0 {
		return fmt.Errorf("event %d: negative capacity", e.ID)
	}
	return e.Status.Validate()
}

func (i Issue) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("issue: invalid id %d", i.ID)
	}
	return i.Status.Validate()
}

func (h HelpRequest) Validate() error {
	if h.ID <= 0 {
		return fmt.Errorf("help request: invalid id %d", h.ID)
	}
	return h.Status.Validate()
}

func (f Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("feedback: rating %d out of range", f.Rating)
	}
	return nil
}

func (l LeaderboardEntry) Validate() error {
	if l.UserID <= 0 {
		return fmt.Errorf("leaderboard: invalid user id %d", l.UserID)
	}
	return nil
}

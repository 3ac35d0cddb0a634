package model

import "time"

// Request bodies sent to the backend's create endpoints.

type NewDonation struct {
	ItemName          string         `json:"itemName"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	UserID            int64          `json:"userId"`
	Images            []string       `json:"images"`
	Status            DonationStatus `json:"status"`
	Condition         string         `json:"condition"`
	Quantity          int            `json:"quantity"`
	Location          Location       `json:"location"`
	ScheduledDate     string         `json:"scheduledDate"`
	ScheduledTimeSlot string         `json:"scheduledTimeSlot"`
	IsPacked          bool           `json:"isPacked"`
	IsUrgent          bool           `json:"isUrgent"`
	AdditionalNotes   string         `json:"additionalNotes,omitempty"`
}

type NewFeedback struct {
	UserID       int64     `json:"userId"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	FeedbackType string    `json:"feedbackType"`
	CreatedAt    time.Time `json:"createdAt"`
}

type JoinEvent struct {
	UserID  int64 `json:"userId"`
	EventID int64 `json:"eventId"`
}

// Participation confirms an event registration.
type Participation struct {
	EventID  int64     `json:"eventId"`
	UserID   int64     `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (p Participation) Validate() error {
	if p.EventID <= 0 || p.UserID <= 0 {
		return errInvalid("participation", p.EventID)
	}
	return nil
}

type NewWasteReport struct {
	UserID            int64        `json:"userId"`
	Title             string       `json:"title"`
	WasteType         string       `json:"wasteType"`
	Description       string       `json:"description"`
	Location          string       `json:"location"`
	ScheduledDate     string       `json:"scheduledDate"`
	ScheduledTimeSlot string       `json:"scheduledTimeSlot"`
	Instructions      string       `json:"instructions,omitempty"`
	Status            ReportStatus `json:"status"`
}

type NewIssue struct {
	UserID      int64       `json:"userId"`
	Title       string      `json:"title"`
	IssueType   string      `json:"issueType"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	IsUrgent    bool        `json:"isUrgent"`
	Status      IssueStatus `json:"status"`
}

type NewHelpRequest struct {
	UserID       int64      `json:"userId"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	ContactPhone string     `json:"contactPhone"`
	IsUrgent     bool       `json:"isUrgent"`
	Status       HelpStatus `json:"status"`
}

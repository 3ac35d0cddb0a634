package model

import (
	"encoding/json"
	"fmt"
)

// ReportStatus is the lifecycle state of a waste pickup.
type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportScheduled  ReportStatus = "scheduled"
	ReportInProgress ReportStatus = "in_progress"
	ReportCompleted  ReportStatus = "completed"
	ReportRejected   ReportStatus = "rejected"
	ReportCancelled  ReportStatus = "cancelled"
)

// DonationStatus is the lifecycle state of a donation.
type DonationStatus string

const (
	DonationAvailable DonationStatus = "available"
	DonationRequested DonationStatus = "requested"
	DonationMatched   DonationStatus = "matched"
	DonationCompleted DonationStatus = "completed"
)

// EventStatus is the lifecycle state of a community event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// IssueStatus is the lifecycle state of a raised issue.
type IssueStatus string

const (
	IssuePending    IssueStatus = "pending"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
)

// HelpStatus is the lifecycle state of a help request.
type HelpStatus string

const (
	HelpOpen       HelpStatus = "open"
	HelpInProgress HelpStatus = "in_progress"
	HelpFulfilled  HelpStatus = "fulfilled"
	HelpClosed     HelpStatus = "closed"
)

var (
	ReportStatuses   = []ReportStatus{ReportPending, ReportScheduled, ReportInProgress, ReportCompleted, ReportRejected, ReportCancelled}
	DonationStatuses = []DonationStatus{DonationAvailable, DonationRequested, DonationMatched, DonationCompleted}
	EventStatuses    = []EventStatus{EventUpcoming, EventOngoing, EventCompleted, EventCancelled}
	IssueStatuses    = []IssueStatus{IssuePending, IssueInProgress, IssueResolved, IssueClosed}
	HelpStatuses     = []HelpStatus{HelpOpen, HelpInProgress, HelpFulfilled, HelpClosed}
)

type statusKind interface {
	~string
}

func checkStatus[S statusKind](kind string, s S, known []S) error {
	for _, k := range known {
		if s == k {
			return nil
		}
	}
	return fmt.Errorf("unknown %s status %q", kind, string(s))
}

func decodeStatus[S statusKind](kind string, data []byte, known []S) (S, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("%s status: %w", kind, err)
	}
	s := S(raw)
	return s, checkStatus(kind, s, known)
}

func (s ReportStatus) Validate() error { return checkStatus("waste report", s, ReportStatuses) }
func (s DonationStatus) Validate() error {
	return checkStatus("donation", s, DonationStatuses)
}
func (s EventStatus) Validate() error { return checkStatus("event", s, EventStatuses) }
func (s IssueStatus) Validate() error { return checkStatus("issue", s, IssueStatuses) }
func (s HelpStatus) Validate() error  { return checkStatus("help request", s, HelpStatuses) }

func (s *ReportStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = decodeStatus("waste report", data, ReportStatuses)
	return err
}

func (s *DonationStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = decodeStatus("donation", data, DonationStatuses)
	return err
}

func (s *EventStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = decodeStatus("event", data, EventStatuses)
	return err
}

func (s *IssueStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = decodeStatus("issue", data, IssueStatuses)
	return err
}

func (s *HelpStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = decodeStatus("help request", data, HelpStatuses)
	return err
}

// Label returns the human form of a status value.
func Label[S statusKind](s S) string {
	switch string(s) {
	case "in_progress":
		return "In Progress"
	case "":
		return "Unknown"
	}
	r := []rune(string(s))
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}

// Upcoming reports whether a pickup still lies ahead.
func (s ReportStatus) Upcoming() bool {
	return s == ReportPending || s == ReportScheduled || s == ReportInProgress
}

// Cancelled reports whether a pickup will not happen.
func (s ReportStatus) Cancelled() bool {
	return s == ReportCancelled || s == ReportRejected
}

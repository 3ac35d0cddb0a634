package actions

import (
	"context"
	"errors"

	"greenpath/internal/api"
	"greenpath/internal/model"
	"greenpath/internal/query"
)

var (
	ErrAlreadyJoined = errors.New("you have already joined this event")
	ErrEventFull     = errors.New("this event has no places left")
	ErrEventClosed   = errors.New("this event is no longer open for registration")
)

// CanJoin checks locally whether userID may register for e.
func CanJoin(e model.Event, userID int64) error {
	switch {
	case e.Status != model.EventUpcoming:
		return ErrEventClosed
	case e.Joined(userID):
		return ErrAlreadyJoined
	case e.Full():
		return ErrEventFull
	}
	return nil
}

var (
	EventJoined = Notice{
		Title: "Success!",
		Body:  "You've successfully joined the event.",
	}
	JoinFailedTitle = "Failed to join event"
)

// NewJoinEventMutation registers the profile user for an event id.
func NewJoinEventMutation(d Deps) *query.Mutation[int64, model.Participation] {
	return query.NewMutation("join event", d.Cache,
		func(ctx context.Context, eventID int64) (model.Participation, error) {
			return d.Backend.JoinEvent(ctx, model.JoinEvent{UserID: d.Profile.UserID, EventID: eventID})
		},
		prefixes(api.KeyEvents, api.KeyLeaderboard)...,
	)
}

package api

import (
	"context"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// Events lists all events.
func (c *Client) Events(ctx context.Context, refresh bool) ([]Event, error) {
	var events []Event
	err := c.cached(ctx, "events", "all", refresh, &events, func() error {
		var err error
		events, err = getList[Event](ctx, c, "/api/events", authNone)
		return err
	})
	return events, err
}

// UpcomingEvents lists events that have not started yet.
func (c *Client) UpcomingEvents(ctx context.Context, refresh bool) ([]Event, error) {
	var events []Event
	err := c.cached(ctx, "events", "upcoming", refresh, &events, func() error {
		var err error
		events, err = getList[Event](ctx, c, "/api/events/upcoming", authNone)
		return err
	})
	return events, err
}

// Event fetches one event by id.
func (c *Client) Event(ctx context.Context, id string) (*Event, error) {
	if err := bferrors.ValidateID("event", id); err != nil {
		return nil, err
	}
	var ev Event
	if err := c.getJSON(ctx, "/api/events/"+pathID(id), authNone, &ev); err != nil {
		return nil, err
	}
	if ev.ID == "" {
		return nil, bferrors.New(bferrors.ErrCodeNotFound, "event %s not found", id)
	}
	return &ev, nil
}

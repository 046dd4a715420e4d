package cli

import (
	"context"
	"fmt"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
	"github.com/matzehuels/bookfair/pkg/broker"
	"github.com/matzehuels/bookfair/pkg/reservation"
	"github.com/matzehuels/bookfair/pkg/venue"
)

// loadHalls fetches the stalls of eventID and places them on the hall grid.
// Failures are reported and yield no halls.
func (c *CLI) loadHalls(ctx context.Context, e *env, eventID string) []venue.Hall {
	spinner := newSpinnerWithContext(ctx, "Loading floor plan...")
	spinner.Start()
	records, err := e.client.Stalls(ctx, eventID)
	spinner.Stop()
	if err != nil {
		printError("Could not load stalls: %s", bferrors.UserMessage(err))
		return nil
	}

	halls, dropped := reservation.FromRecords(records)
	if dropped > 0 {
		c.Logger.Warn("stalls left off the floor plan", "event", eventID, "dropped", dropped)
	}
	c.Logger.Debug("floor plan loaded", "event", eventID, "stalls", len(records), "halls", len(halls))
	return halls
}

// newState builds the reservation state of eventID for the current user and
// restores their reservations from the mirror and the backend. The returned cleanup closes the broker
// connection, if any.
func (c *CLI) newState(ctx context.Context, e *env, eventID string, halls []venue.Hall, n reservation.Notifier) (*reservation.State, func()) {
	opts := reservation.Options{
		EventID:  eventID,
		User:     e.user(),
		Halls:    halls,
		Store:    e.store,
		Keyer:    e.keys,
		Notifier: n,
		Logger:   c.Logger,
	}
	if e.sess != nil {
		opts.Token = e.sess.Token
		opts.Lister = e.client
	}

	cleanup := func() {}
	if url := c.cfg.AMQPURL; url != "" {
		pub := broker.NewPublisher(url, c.Logger)
		opts.Publisher = pub
		cleanup = func() {
			if err := pub.Close(); err != nil {
				c.Logger.Debug("close broker", "error", err)
			}
		}
	}

	st := reservation.New(opts)
	if err := st.Load(ctx); err != nil {
		c.Logger.Warn("could not restore reservations", "error", err)
	}
	return st, cleanup
}

// pickHall returns the hall with id, or the first hall when id is 0.
func pickHall(halls []venue.Hall, id int) (venue.Hall, error) {
	if len(halls) == 0 {
		return venue.Hall{}, fmt.Errorf("no halls")
	}
	if id == 0 {
		return halls[0], nil
	}
	for _, h := range halls {
		if h.ID == id {
			return h, nil
		}
	}
	ids := make([]int, len(halls))
	for i, h := range halls {
		ids[i] = h.ID
	}
	return venue.Hall{}, bferrors.New(bferrors.ErrCodeNotFound, "no hall %d (halls: %v)", id, ids)
}

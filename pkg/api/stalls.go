package api

import (
	"context"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// Stalls lists the stalls of an event with their current availability.
// The token is sent when present so the backend can personalize the view.
func (c *Client) Stalls(ctx context.Context, eventID string) ([]StallRecord, error) {
	if err := bferrors.ValidateID("event", eventID); err != nil {
		return nil, err
	}
	return getList[StallRecord](ctx, c, "/api/stalls/event/"+pathID(eventID), authOptional)
}

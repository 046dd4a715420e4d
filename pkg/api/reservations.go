package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// MyReservations lists the signed-in user's reservations.
func (c *Client) MyReservations(ctx context.Context) ([]Reservation, error) {
	return getList[Reservation](ctx, c, "/api/reservations/my-reservations", authRequired)
}

// CreateReservation books one stall. A response with success=false is an
// error carrying the backend's message.
func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) (*Reservation, error) {
	if len(req.GenreIDs) == 0 {
		return nil, bferrors.New(bferrors.ErrCodeGenreRequired, "Please select at least one genre for all stalls")
	}
	data, err := c.do(ctx, request{method: http.MethodPost, path: "/api/reservations", body: req, auth: authRequired})
	if err != nil {
		return nil, err
	}
	fallback := fmt.Sprintf("Failed to reserve stall %d", req.StallID)
	if err := checkSuccess(data, bferrors.ErrCodeReservation, fallback); err != nil {
		return nil, err
	}
	// An accepted reservation may come back without data.
	if env, ok := parseEnvelope(data); ok && isEmptyPayload(env.Data) {
		return &Reservation{EventID: req.EventID, StallID: req.StallID}, nil
	}
	var res Reservation
	if err := decodePayload(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// QRCode downloads the PNG QR code of a reservation.
func (c *Client) QRCode(ctx context.Context, reservationID int64) ([]byte, error) {
	path := "/api/reservations/" + strconv.FormatInt(reservationID, 10) + "/qr-code"
	return c.do(ctx, request{method: http.MethodGet, path: path, auth: authRequired, accept: "image/png"})
}

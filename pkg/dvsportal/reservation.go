package dvsportal

import (
	"context"
	"net/http"
	"time"
)

// CreateReservation books parking for a license plate. A nil From starts
// the reservation immediately; a nil Until leaves it open-ended until
// EndReservation is called. Validation runs before any network traffic.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest) (*CreateReservationResult, error) {
	if req.Plate == "" {
		return nil, &ValidationError{Field: "license_plate", Reason: "must not be empty"}
	}
	from := time.Now()
	if req.From != nil {
		from = *req.From
	}
	if req.Until != nil && !req.Until.After(from) {
		return nil, &ValidationError{Field: "date_until", Reason: "must be after date_from"}
	}

	typeID, code, err := c.defaults(ctx)
	if err != nil {
		return nil, err
	}

	body := createReservationBody{
		DateFrom:          formatPortalTime(from),
		LicensePlate:      wirePlate{Value: req.Plate, Name: req.Name},
		PermitMediaTypeID: typeID,
		PermitMediaCode:   code,
	}
	if req.Until != nil {
		body.DateUntil = formatPortalTime(*req.Until)
	}

	var result CreateReservationResult
	if err := c.do(ctx, http.MethodPost, "reservation/create", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EndReservation finishes an active reservation. Ending is how open-ended
// reservations stop accruing units.
func (c *Client) EndReservation(ctx context.Context, reservationID string) error {
	if reservationID == "" {
		return &ValidationError{Field: "reservation_id", Reason: "must not be empty"}
	}

	typeID, code, err := c.defaults(ctx)
	if err != nil {
		return err
	}

	body := endReservationBody{
		ReservationID:     reservationID,
		PermitMediaTypeID: typeID,
		PermitMediaCode:   code,
	}
	return c.do(ctx, http.MethodPost, "reservation/end", body, nil)
}

package dvsportal

import (
	"context"
	"net/http"
)

// maskedPlate is the placeholder the portal substitutes in the history for
// plates the account may no longer see.
const maskedPlate = "********"

// Update fetches the account's base data and atomically replaces the
// cached view: balance, unit price, default permit media, active and
// historic reservations, and the known license plates. A failed Update
// leaves the previous view untouched.
func (c *Client) Update(ctx context.Context) error {
	var base baseResponse
	if err := c.do(ctx, http.MethodPost, "login/getbase", struct{}{}, &base); err != nil {
		return err
	}

	// The account must map onto exactly one permit with at least one
	// permit media; anything else has no usable default to reserve under.
	if len(base.Permits) == 0 {
		return &APIError{Kind: APIKindMalformedResponse, Message: "no zonal code found"}
	}
	if len(base.Permits) > 1 {
		return &APIError{Kind: APIKindMalformedResponse, Message: "more than one zonal code found"}
	}
	permit := base.Permits[0]
	if len(permit.PermitMedias) == 0 {
		return &APIError{Kind: APIKindMalformedResponse, Message: "permit carries no permit media"}
	}
	media := permit.PermitMedias[0]

	st := accountState{
		balance:     media.Balance,
		unitPrice:   permit.UnitPrice,
		active:      make(map[string]Reservation, len(media.ActiveReservations)),
		historic:    map[string]HistoricReservation{},
		knownPlates: map[string]string{},
	}

	for _, item := range media.History.Reservations.Items {
		display := item.LicensePlate.DisplayValue
		if display == maskedPlate {
			continue
		}
		st.historic[display] = HistoricReservation{
			ID:         item.ReservationID,
			ValidFrom:  item.ValidFrom.Time,
			ValidUntil: item.ValidUntil.Time,
			Units:      item.Units,
		}
		st.knownPlates[display] = ""
	}

	for _, res := range media.ActiveReservations {
		plate := res.LicensePlate.Value
		st.active[plate] = Reservation{
			ID:         res.ReservationID,
			ValidFrom:  res.ValidFrom.Time,
			ValidUntil: res.ValidUntil.Time,
			Plate:      plate,
			Units:      res.Units,
			Cost:       float64(res.Units) * permit.UnitPrice,
		}
		st.knownPlates[plate] = ""
	}

	// Named plates last so their names win over the unnamed sightings.
	for _, lp := range media.LicensePlates {
		st.knownPlates[lp.Value] = lp.Name
	}

	c.mu.Lock()
	c.defaultTypeID = media.TypeID
	c.defaultCode = media.Code
	c.state = st
	c.mu.Unlock()
	return nil
}

// defaults returns the permit media type and code mutations should target,
// fetching the base data first when they are not known yet.
func (c *Client) defaults(ctx context.Context) (int, string, error) {
	c.mu.RLock()
	typeID, code := c.defaultTypeID, c.defaultCode
	c.mu.RUnlock()
	if typeID != 0 && code != "" {
		return typeID, code, nil
	}

	if err := c.Update(ctx); err != nil {
		return 0, "", err
	}
	c.mu.RLock()
	typeID, code = c.defaultTypeID, c.defaultCode
	c.mu.RUnlock()
	return typeID, code, nil
}

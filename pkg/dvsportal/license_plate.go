package dvsportal

import (
	"context"
	"net/http"
)

// StoreLicensePlate saves a plate under the given name so the portal
// offers it for future reservations. Storing a plate that already exists
// updates its name.
func (c *Client) StoreLicensePlate(ctx context.Context, plate, name string) error {
	if plate == "" {
		return &ValidationError{Field: "license_plate", Reason: "must not be empty"}
	}

	typeID, code, err := c.defaults(ctx)
	if err != nil {
		return err
	}

	body := upsertLicensePlateBody{
		PermitMediaTypeID: typeID,
		PermitMediaCode:   code,
		LicensePlate:      wirePlate{Value: plate, Name: name},
	}
	return c.do(ctx, http.MethodPost, "permitmedialicenseplate/upsert", body, nil)
}

// RemoveLicensePlate deletes a stored plate. The name must match what the
// plate was stored under.
func (c *Client) RemoveLicensePlate(ctx context.Context, plate, name string) error {
	if plate == "" {
		return &ValidationError{Field: "license_plate", Reason: "must not be empty"}
	}

	typeID, code, err := c.defaults(ctx)
	if err != nil {
		return err
	}

	body := removeLicensePlateBody{
		PermitMediaTypeID: typeID,
		PermitMediaCode:   code,
		LicensePlate:      plate,
		Name:              name,
	}
	return c.do(ctx, http.MethodPost, "permitmedialicenseplate/remove", body, nil)
}

package dvsportal

import (
	"bytes"
	"fmt"
	"time"
)

// Reservation is an active parking reservation on the permit media.
type Reservation struct {
	ID        string
	ValidFrom time.Time
	// ValidUntil is zero for open-ended reservations.
	ValidUntil time.Time
	Plate      string
	Units      int
	// Cost is Units times the permit's unit price, zero when the portal did
	// not report a unit price.
	Cost float64
}

// HistoricReservation is a finished reservation from the portal's history.
type HistoricReservation struct {
	ID         string
	ValidFrom  time.Time
	ValidUntil time.Time
	Units      int
}

// CreateReservationRequest describes a reservation to create.
type CreateReservationRequest struct {
	// Plate is the license plate to reserve for. Required.
	Plate string
	// Name is an optional label stored alongside the plate.
	Name string
	// From is the start of the reservation. Nil means now.
	From *time.Time
	// Until is the end of the reservation. Nil means open-ended; the
	// reservation then runs until EndReservation is called.
	Until *time.Time
}

// CreateReservationResult carries the portal's answer to a create call.
type CreateReservationResult struct {
	ReservationID string `json:"ReservationID"`
}

// The portal emits naive local timestamps ("2006-01-02T15:04:05", with or
// without fractional seconds) and occasionally bare dates. portalTime
// accepts all of them plus RFC 3339, and marshals in the seconds-precision
// naive form the portal expects on requests.
type portalTime struct {
	time.Time
}

var portalTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	"2006-01-02",
}

const portalTimeWireLayout = "2006-01-02T15:04:05"

func (t *portalTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	raw := string(bytes.Trim(data, `"`))
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range portalTimeLayouts {
		parsed, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", raw)
}

func (t portalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(portalTimeWireLayout) + `"`), nil
}

func formatPortalTime(t time.Time) string {
	return t.Format(portalTimeWireLayout)
}

// Wire shapes. Field names follow the portal's JSON exactly; requests use
// lowercase keys where the portal wants them, responses the portal's
// PascalCase.

type permitMediaType struct {
	ID   int    `json:"ID"`
	Name string `json:"Name"`
}

type discoveryResponse struct {
	PermitMediaTypes []permitMediaType `json:"PermitMediaTypes"`
	LoginMethods     []string          `json:"LoginMethods"`
}

type loginRequest struct {
	Identifier        string `json:"identifier"`
	LoginMethod       string `json:"loginMethod"`
	Password          string `json:"password"`
	PermitMediaTypeID int    `json:"permitMediaTypeID"`
}

type loginResponse struct {
	LoginStatus  int    `json:"LoginStatus"`
	Token        string `json:"Token"`
	ErrorMessage string `json:"ErrorMessage"`
}

type wirePlate struct {
	Value string `json:"Value"`
	Name  string `json:"Name"`
}

type wireHistoryPlate struct {
	Value        string `json:"Value"`
	DisplayValue string `json:"DisplayValue"`
}

type wireReservation struct {
	ReservationID string     `json:"ReservationID"`
	ValidFrom     portalTime `json:"ValidFrom"`
	ValidUntil    portalTime `json:"ValidUntil"`
	LicensePlate  wirePlate  `json:"LicensePlate"`
	Units         int        `json:"Units"`
}

type wireHistoryItem struct {
	ReservationID string           `json:"ReservationID"`
	ValidFrom     portalTime       `json:"ValidFrom"`
	ValidUntil    portalTime       `json:"ValidUntil"`
	LicensePlate  wireHistoryPlate `json:"LicensePlate"`
	Units         int              `json:"Units"`
}

type wireHistoryReservations struct {
	Items []wireHistoryItem `json:"Items"`
}

type wireHistory struct {
	Reservations wireHistoryReservations `json:"Reservations"`
}

type wirePermitMedia struct {
	TypeID             int               `json:"TypeID"`
	Code               string            `json:"Code"`
	Balance            float64           `json:"Balance"`
	ActiveReservations []wireReservation `json:"ActiveReservations"`
	LicensePlates      []wirePlate       `json:"LicensePlates"`
	History            wireHistory       `json:"History"`
}

type wirePermit struct {
	PermitMedias []wirePermitMedia `json:"PermitMedias"`
	UnitPrice    float64           `json:"UnitPrice"`
}

type baseResponse struct {
	Permits []wirePermit `json:"Permits"`
}

type createReservationBody struct {
	DateFrom          string    `json:"DateFrom"`
	DateUntil         string    `json:"DateUntil,omitempty"`
	LicensePlate      wirePlate `json:"LicensePlate"`
	PermitMediaTypeID int       `json:"permitMediaTypeID"`
	PermitMediaCode   string    `json:"permitMediaCode"`
}

type endReservationBody struct {
	ReservationID     string `json:"ReservationID"`
	PermitMediaTypeID int    `json:"permitMediaTypeID"`
	PermitMediaCode   string `json:"permitMediaCode"`
}

type upsertLicensePlateBody struct {
	PermitMediaTypeID  int       `json:"permitMediaTypeID"`
	PermitMediaCode    string    `json:"permitMediaCode"`
	LicensePlate       wirePlate `json:"licensePlate"`
	UpdateLicensePlate *struct{} `json:"updateLicensePlate"`
}

type removeLicensePlateBody struct {
	PermitMediaTypeID int    `json:"permitMediaTypeID"`
	PermitMediaCode   string `json:"permitMediaCode"`
	LicensePlate      string `json:"licensePlate"`
	Name              string `json:"name"`
}

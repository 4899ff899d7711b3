package http

import (
	"fmt"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/service"
)

// Wire shapes of the DVSPortal protocol, mirrored from the upstream API:
// responses use PascalCase keys, requests mostly lowercase, timestamps are
// naive local time without a zone designator.

const wireTimeLayout = "2006-01-02T15:04:05"

var wireTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	"2006-01-02",
}

func formatWireTime(t time.Time) string {
	return t.In(time.Local).Format(wireTimeLayout)
}

func parseWireTime(raw string) (time.Time, error) {
	for _, layout := range wireTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", raw)
}

type permitMediaTypeDTO struct {
	ID   int    `json:"ID"`
	Name string `json:"Name"`
}

type discoveryResponse struct {
	PermitMediaTypes []permitMediaTypeDTO `json:"PermitMediaTypes"`
	LoginMethods     []string             `json:"LoginMethods"`
}

type loginRequest struct {
	Identifier        string `json:"identifier"`
	LoginMethod       string `json:"loginMethod"`
	Password          string `json:"password"`
	PermitMediaTypeID int    `json:"permitMediaTypeID"`
}

type loginResponse struct {
	LoginStatus  int    `json:"LoginStatus"`
	Token        string `json:"Token,omitempty"`
	ErrorMessage string `json:"ErrorMessage,omitempty"`
}

type plateDTO struct {
	Value string `json:"Value"`
	Name  string `json:"Name"`
}

type historyPlateDTO struct {
	Value        string `json:"Value"`
	DisplayValue string `json:"DisplayValue"`
}

type reservationDTO struct {
	ReservationID string   `json:"ReservationID"`
	ValidFrom     string   `json:"ValidFrom"`
	ValidUntil    *string  `json:"ValidUntil"`
	LicensePlate  plateDTO `json:"LicensePlate"`
	Units         int      `json:"Units"`
}

type historyItemDTO struct {
	ReservationID string          `json:"ReservationID"`
	ValidFrom     string          `json:"ValidFrom"`
	ValidUntil    *string         `json:"ValidUntil"`
	LicensePlate  historyPlateDTO `json:"LicensePlate"`
	Units         int             `json:"Units"`
}

type historyDTO struct {
	Reservations struct {
		Items []historyItemDTO `json:"Items"`
	} `json:"Reservations"`
}

type permitMediaDTO struct {
	TypeID             int              `json:"TypeID"`
	Code               string           `json:"Code"`
	Balance            float64          `json:"Balance"`
	ActiveReservations []reservationDTO `json:"ActiveReservations"`
	LicensePlates      []plateDTO       `json:"LicensePlates"`
	History            historyDTO       `json:"History"`
}

type permitDTO struct {
	PermitMedias []permitMediaDTO `json:"PermitMedias"`
	UnitPrice    float64          `json:"UnitPrice"`
}

type baseResponse struct {
	Permits []permitDTO `json:"Permits"`
}

type createReservationRequest struct {
	DateFrom          string   `json:"DateFrom"`
	DateUntil         string   `json:"DateUntil"`
	LicensePlate      plateDTO `json:"LicensePlate"`
	PermitMediaTypeID int      `json:"permitMediaTypeID"`
	PermitMediaCode   string   `json:"permitMediaCode"`
}

type createReservationResponse struct {
	ReservationID string `json:"ReservationID"`
}

type endReservationRequest struct {
	ReservationID     string `json:"ReservationID"`
	PermitMediaTypeID int    `json:"permitMediaTypeID"`
	PermitMediaCode   string `json:"permitMediaCode"`
}

type upsertLicensePlateRequest struct {
	PermitMediaTypeID int      `json:"permitMediaTypeID"`
	PermitMediaCode   string   `json:"permitMediaCode"`
	LicensePlate      plateDTO `json:"licensePlate"`
}

type removeLicensePlateRequest struct {
	PermitMediaTypeID int    `json:"permitMediaTypeID"`
	PermitMediaCode   string `json:"permitMediaCode"`
	LicensePlate      string `json:"licensePlate"`
	Name              string `json:"name"`
}

// HealthChecks reports per-dependency readiness state.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Signer   string `json:"signer,omitempty"`
}

// HealthResponse is the body of the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

func baseDocument(base service.BaseData) baseResponse {
	media := permitMediaDTO{
		TypeID:             base.Media.TypeID,
		Code:               base.Media.Code,
		Balance:            base.Media.Balance,
		ActiveReservations: make([]reservationDTO, 0, len(base.Active)),
		LicensePlates:      make([]plateDTO, 0, len(base.Plates)),
	}

	for _, r := range base.Active {
		dto := reservationDTO{
			ReservationID: r.ID,
			ValidFrom:     formatWireTime(r.ValidFrom),
			LicensePlate:  plateDTO{Value: r.PlateValue, Name: r.PlateName},
			Units:         r.Units,
		}
		if r.ValidUntil != nil {
			until := formatWireTime(*r.ValidUntil)
			dto.ValidUntil = &until
		}
		media.ActiveReservations = append(media.ActiveReservations, dto)
	}

	for _, p := range base.Plates {
		media.LicensePlates = append(media.LicensePlates, plateDTO{Value: p.Value, Name: p.Name})
	}

	media.History.Reservations.Items = make([]historyItemDTO, 0, len(base.History))
	for _, h := range base.History {
		item := historyItemDTO{
			ReservationID: h.Reservation.ID,
			ValidFrom:     formatWireTime(h.Reservation.ValidFrom),
			LicensePlate: historyPlateDTO{
				Value:        h.DisplayValue,
				DisplayValue: h.DisplayValue,
			},
			Units: h.Reservation.Units,
		}
		if h.Reservation.ValidUntil != nil {
			until := formatWireTime(*h.Reservation.ValidUntil)
			item.ValidUntil = &until
		}
		media.History.Reservations.Items = append(media.History.Reservations.Items, item)
	}

	return baseResponse{Permits: []permitDTO{{
		PermitMedias: []permitMediaDTO{media},
		UnitPrice:    base.Permit.UnitPrice,
	}}}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/pkg/httpx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

type CreateReservationHandler struct {
	ReservationService *service.ReservationService
}

// ServeHTTP godoc
//
//	@Summary		Create Reservation Endpoint
//	@Description	Books a parking reservation for a license plate against the media's unit balance
//	@Description	Omitting DateUntil creates an open-ended reservation that runs until explicitly ended
//	@Tags			Reservations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createReservationRequest	true	"DateFrom, DateUntil, LicensePlate, permitMediaTypeID, permitMediaCode"
//	@Success		200		{object}	createReservationResponse	"ReservationID"
//	@Failure		422		{object}	map[string]string			"ErrorMessage"
//	@Security		SessionToken
//	@Router			/DVSWebAPI/api/reservation/create [post].
func (h *CreateReservationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LicensePlate.Value == "" {
		httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "license plate is required")
		return
	}

	from, err := parseWireTime(req.DateFrom)
	if err != nil {
		httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "invalid DateFrom")
		return
	}

	var until *time.Time
	if req.DateUntil != "" {
		t, err := parseWireTime(req.DateUntil)
		if err != nil {
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "invalid DateUntil")
			return
		}
		until = &t
	}

	res, err := h.ReservationService.Create(ctx,
		httpx.AccountIDFromContext(ctx),
		req.PermitMediaTypeID,
		req.PermitMediaCode,
		req.LicensePlate.Value,
		req.LicensePlate.Name,
		from,
		until,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownMedia):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "Unknown permit media")
		case errors.Is(err, service.ErrInvalidPeriod):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "Reservation must end after it starts")
		case errors.Is(err, service.ErrDuplicateReservation):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "License plate already has an active reservation")
		case errors.Is(err, service.ErrInsufficientBalance):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "Insufficient balance")
		default:
			log.Error("failed to create reservation", "err", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "failed to create reservation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, createReservationResponse{ReservationID: res.ID})
}

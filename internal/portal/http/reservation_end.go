package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/pkg/httpx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

type EndReservationHandler struct {
	ReservationService *service.ReservationService
}

// ServeHTTP godoc
//
//	@Summary		End Reservation Endpoint
//	@Description	Ends a reservation now and settles the unit balance
//	@Description	Ending early refunds unused whole units; ending an open-ended reservation charges the accumulated ones
//	@Tags			Reservations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		endReservationRequest	true	"ReservationID, permitMediaTypeID, permitMediaCode"
//	@Success		200		{object}	map[string]string		"empty object"
//	@Failure		422		{object}	map[string]string		"ErrorMessage"
//	@Security		SessionToken
//	@Router			/DVSWebAPI/api/reservation/end [post].
func (h *EndReservationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req endReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ReservationID == "" {
		httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "reservation id is required")
		return
	}

	_, err := h.ReservationService.End(ctx,
		httpx.AccountIDFromContext(ctx),
		req.PermitMediaTypeID,
		req.PermitMediaCode,
		req.ReservationID,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownMedia):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "Unknown permit media")
		case errors.Is(err, service.ErrReservationNotFound):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "Reservation not found")
		default:
			log.Error("failed to end reservation", "err", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "failed to end reservation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/pkg/httpx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

type RemoveLicensePlateHandler struct {
	LicensePlateService *service.LicensePlateService
}

// ServeHTTP godoc
//
//	@Summary		Remove License Plate Endpoint
//	@Description	Removes a stored license plate from the permit media
//	@Description	The plate travels as a bare string here, unlike the upsert payload
//	@Tags			LicensePlates
//	@Accept			json
//	@Produce		json
//	@Param			request	body		removeLicensePlateRequest	true	"permitMediaTypeID, permitMediaCode, licensePlate, name"
//	@Success		200		{object}	map[string]string			"empty object"
//	@Failure		422		{object}	map[string]string			"ErrorMessage"
//	@Security		SessionToken
//	@Router			/DVSWebAPI/api/permitmedialicenseplate/remove [post].
func (h *RemoveLicensePlateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req removeLicensePlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LicensePlate == "" {
		httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "license plate is required")
		return
	}

	err := h.LicensePlateService.Remove(ctx,
		httpx.AccountIDFromContext(ctx),
		req.PermitMediaTypeID,
		req.PermitMediaCode,
		req.LicensePlate,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownMedia):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "Unknown permit media")
		case errors.Is(err, service.ErrPlateNotFound):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "License plate not found")
		default:
			log.Error("failed to remove license plate", "err", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "failed to remove license plate")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}

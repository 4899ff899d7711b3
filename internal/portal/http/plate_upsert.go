package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/pkg/httpx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

type UpsertLicensePlateHandler struct {
	LicensePlateService *service.LicensePlateService
}

// ServeHTTP godoc
//
//	@Summary		Store License Plate Endpoint
//	@Description	Stores a license plate on the permit media, or renames it when already stored
//	@Tags			LicensePlates
//	@Accept			json
//	@Produce		json
//	@Param			request	body		upsertLicensePlateRequest	true	"permitMediaTypeID, permitMediaCode, licensePlate, updateLicensePlate"
//	@Success		200		{object}	map[string]string			"empty object"
//	@Failure		422		{object}	map[string]string			"ErrorMessage"
//	@Security		SessionToken
//	@Router			/DVSWebAPI/api/permitmedialicenseplate/upsert [post].
func (h *UpsertLicensePlateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req upsertLicensePlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LicensePlate.Value == "" {
		httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "license plate is required")
		return
	}

	err := h.LicensePlateService.Upsert(ctx,
		httpx.AccountIDFromContext(ctx),
		req.PermitMediaTypeID,
		req.PermitMediaCode,
		req.LicensePlate.Value,
		req.LicensePlate.Name,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownMedia):
			httpx.WriteErrorMessage(w, http.StatusUnprocessableEntity, "Unknown permit media")
		default:
			log.Error("failed to upsert license plate", "err", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "failed to store license plate")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}

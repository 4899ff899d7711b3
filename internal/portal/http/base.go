package http

import (
	"net/http"

	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/pkg/httpx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

type BaseDataHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Base Data Endpoint
//	@Description	Returns the account's permit, media, stored plates, active reservations and history in one document
//	@Description	History plates that are neither stored nor actively parked are masked
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	baseResponse	"Permits"
//	@Failure		401	{object}	map[string]string	"ErrorMessage"
//	@Security		SessionToken
//	@Router			/DVSWebAPI/api/login/getbase [post].
func (h *BaseDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)

	base, err := h.AccountService.BaseData(ctx, accountID)
	if err != nil {
		log.Error("failed to assemble base data", "err", err)
		httpx.WriteErrorMessage(w, http.StatusInternalServerError, "failed to load account data")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, baseDocument(base))
}

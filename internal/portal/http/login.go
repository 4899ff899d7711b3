package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/pkg/httpx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

const (
	loginMethodPassword = "Pas"

	loginStatusOK       = 1
	loginStatusRejected = 2
)

type LoginHandler struct {
	SessionService *service.SessionService
}

// HandleDiscovery godoc
//
//	@Summary		Login Discovery Endpoint
//	@Description	Lists the permit media types and login methods the portal accepts
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	discoveryResponse	"PermitMediaTypes, LoginMethods"
//	@Router			/DVSWebAPI/api/login [get].
func (h *LoginHandler) HandleDiscovery(w http.ResponseWriter, r *http.Request) {
	types := h.SessionService.MediaTypes()

	resp := discoveryResponse{
		PermitMediaTypes: make([]permitMediaTypeDTO, 0, len(types)),
		LoginMethods:     []string{loginMethodPassword},
	}
	for _, t := range types {
		resp.PermitMediaTypes = append(resp.PermitMediaTypes, permitMediaTypeDTO{ID: t.ID, Name: t.Name})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogin godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchanges portal credentials for a session token
//	@Description	Rejected credentials answer 200 with LoginStatus 2, matching the upstream portal
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"identifier, loginMethod, password, permitMediaTypeID"
//	@Success		200		{object}	loginResponse	"LoginStatus, Token or ErrorMessage"
//	@Router			/DVSWebAPI/api/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.LoginMethod != loginMethodPassword {
		// The upstream portal reports unusable logins on a 200.
		httpx.WriteJSON(w, http.StatusOK, loginResponse{
			LoginStatus:  loginStatusRejected,
			ErrorMessage: "Unsupported login method",
		})
		return
	}

	token, err := h.SessionService.Login(ctx, req.Identifier, req.Password, req.PermitMediaTypeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusOK, loginResponse{
				LoginStatus:  loginStatusRejected,
				ErrorMessage: "Invalid username or password",
			})
		case errors.Is(err, service.ErrUnknownMediaType):
			httpx.WriteJSON(w, http.StatusOK, loginResponse{
				LoginStatus:  loginStatusRejected,
				ErrorMessage: "Unknown permit media type",
			})
		default:
			log.Error("login failed", "err", err)
			httpx.WriteErrorMessage(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		LoginStatus: loginStatusOK,
		Token:       token,
	})
}

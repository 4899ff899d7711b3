package httpx

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/stadspark/dvsportal/pkg/cryptox"
	"github.com/stadspark/dvsportal/pkg/jwtx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

// SessionMiddleware authenticates portal requests. Clients send the session
// token base64-wrapped in a "Token" scheme header, matching the upstream
// DVSPortal convention:
//
//	Authorization: Token <base64(session token)>
//
// Verification failures are a plain 401 so clients re-authenticate; the
// token itself only ever hits the logs as a fingerprint.
func SessionMiddleware(v *jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			scheme, encoded, found := strings.Cut(authz, " ")
			if !found || !strings.EqualFold(scheme, "Token") {
				WriteErrorMessage(w, http.StatusUnauthorized, "missing session token")
				return
			}

			raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
			if err != nil {
				WriteErrorMessage(w, http.StatusUnauthorized, "malformed session token")
				return
			}

			claims, err := v.Verify(string(raw))
			if err != nil {
				log.Warn("session verify failed",
					"err", err,
					"token_fp", cryptox.FingerprintToken(string(raw)),
				)
				WriteErrorMessage(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithSession(ctx, *claims)))
		})
	}
}

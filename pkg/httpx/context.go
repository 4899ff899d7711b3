package httpx

import (
	"context"

	"github.com/stadspark/dvsportal/pkg/jwtx"
)

type ctxKey string

const (
	ctxKeyAccountID ctxKey = "account_id"
	ctxKeySession   ctxKey = "session"
)

// AccountIDFromContext returns the authenticated account ID, or "" when the
// request did not pass the session middleware.
func AccountIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyAccountID).(string); ok {
		return v
	}
	return ""
}

// SessionFromContext returns the full session claims when present.
func SessionFromContext(ctx context.Context) (jwtx.SessionClaims, bool) {
	v, ok := ctx.Value(ctxKeySession).(jwtx.SessionClaims)
	return v, ok
}

func contextWithSession(ctx context.Context, c jwtx.SessionClaims) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAccountID, c.Subject)
	return context.WithValue(ctx, ctxKeySession, c)
}

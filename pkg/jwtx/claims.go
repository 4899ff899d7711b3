// Package jwtx signs and verifies the portal's session tokens. Tokens are
// EdDSA-signed JWTs; clients treat them as opaque strings, so the shape here
// is an implementation detail of the server, not of the wire protocol.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the session lifetime when the server config does not
// override it. Kept short-ish so an abandoned token goes stale on its own.
const DefaultSessionTTL = 30 * time.Minute

// SessionClaims are the claims inside a portal session token. The subject is
// the account ID; the permit-media fields pin the session to the media it was
// logged in against so handlers don't have to re-resolve it per request.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Identifier is the login identifier, carried for log context only.
	Identifier string `json:"idf,omitempty"`

	// MediaTypeID and MediaCode identify the permit media of this session.
	MediaTypeID int    `json:"mtid,omitempty"`
	MediaCode   string `json:"mcode,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims. The jti is
// caller-supplied so the entropy source stays in one place.
func NewSessionClaims(
	accountID, identifier string,
	mediaTypeID int,
	mediaCode string,
	jti, issuer string,
	ttl time.Duration,
	now time.Time,
) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
		Identifier:  identifier,
		MediaTypeID: mediaTypeID,
		MediaCode:   mediaCode,
	}
}

// ValidateIssuer checks the issuer when one is expected.
func (c *SessionClaims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf), with a little leeway for clock skew.
func (c *SessionClaims) ValidateExpiry(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

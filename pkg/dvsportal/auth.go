package dvsportal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	// loginMethodPassword is the portal's name for password login.
	loginMethodPassword = "Pas"

	// loginStatusRejected is the LoginStatus the portal sets on a 200 when
	// the credentials were wrong.
	loginStatusRejected = 2
)

// ensureToken returns the cached session token, authenticating first when
// none is cached.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if tok := c.Token(); tok != "" {
		return tok, nil
	}
	return c.authenticate(ctx)
}

// authenticate performs the full login flow and caches the resulting
// token. It makes no retry decisions of its own; failures come back as
// *AuthError, or as the context's error when ctx was canceled.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	typeID, err := c.loginTypeID(ctx)
	if err != nil {
		return "", err
	}

	body := loginRequest{
		Identifier:        c.identifier,
		LoginMethod:       loginMethodPassword,
		Password:          c.password,
		PermitMediaTypeID: typeID,
	}
	resp, err := c.send(ctx, http.MethodPost, "login", body, "")
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", &AuthError{Kind: AuthKindUnreachable, Message: "login request failed", Err: err}
	}

	switch {
	case resp.status >= 500:
		return "", &AuthError{
			Kind:    AuthKindUnreachable,
			Message: fmt.Sprintf("portal server error (status %d)", resp.status),
		}
	case resp.status >= 400:
		return "", &AuthError{
			Kind:    AuthKindInvalidCredentials,
			Message: fmt.Sprintf("portal rejected the login (status %d)", resp.status),
		}
	}

	var login loginResponse
	if !resp.isJSON() || json.Unmarshal(resp.body, &login) != nil {
		return "", &AuthError{Kind: AuthKindInvalidCredentials, Message: "malformed login response"}
	}
	if login.LoginStatus == loginStatusRejected || login.ErrorMessage != "" {
		msg := login.ErrorMessage
		if msg == "" {
			msg = "portal rejected the credentials"
		}
		return "", &AuthError{Kind: AuthKindInvalidCredentials, Message: msg}
	}
	if login.Token == "" {
		return "", &AuthError{Kind: AuthKindInvalidCredentials, Message: "login response carried no token"}
	}

	c.storeToken(login.Token)
	return login.Token, nil
}

// loginTypeID returns the permit media type to log in under, discovering
// it from the portal on first use.
func (c *Client) loginTypeID(ctx context.Context) (int, error) {
	c.mu.RLock()
	id := c.defaultTypeID
	c.mu.RUnlock()
	if id != 0 {
		return id, nil
	}

	resp, err := c.send(ctx, http.MethodGet, "login", nil, "")
	if err != nil {
		if ctx.Err() != nil {
			return 0, err
		}
		return 0, &AuthError{Kind: AuthKindUnreachable, Message: "login discovery failed", Err: err}
	}
	switch {
	case resp.status >= 500:
		return 0, &AuthError{
			Kind:    AuthKindUnreachable,
			Message: fmt.Sprintf("portal server error (status %d)", resp.status),
		}
	case resp.status >= 400:
		return 0, &AuthError{
			Kind:    AuthKindInvalidCredentials,
			Message: fmt.Sprintf("login discovery rejected (status %d)", resp.status),
		}
	}

	var disc discoveryResponse
	if !resp.isJSON() || json.Unmarshal(resp.body, &disc) != nil {
		return 0, &AuthError{Kind: AuthKindInvalidCredentials, Message: "malformed login discovery response"}
	}
	if len(disc.PermitMediaTypes) == 0 {
		return 0, &AuthError{Kind: AuthKindInvalidCredentials, Message: "login discovery returned no permit media types"}
	}

	id = disc.PermitMediaTypes[0].ID
	c.mu.Lock()
	if c.defaultTypeID == 0 {
		c.defaultTypeID = id
	} else {
		id = c.defaultTypeID
	}
	c.mu.Unlock()
	return id, nil
}

func (c *Client) storeToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

// clearToken drops the cached token, but only while it still is the one
// the portal rejected. A token refreshed by a concurrent call stays put.
func (c *Client) clearToken(rejected string) {
	c.mu.Lock()
	if c.token == rejected {
		c.token = ""
	}
	c.mu.Unlock()
}

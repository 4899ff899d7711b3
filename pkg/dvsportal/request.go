package dvsportal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// portalResponse is a fully read HTTP response.
type portalResponse struct {
	status      int
	contentType string
	body        []byte
}

// send performs a single HTTP exchange against the portal. It attaches the
// standard headers and, when token is non-empty, the Authorization header.
// It never retries and never interprets the response beyond reading it.
func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*portalResponse, error) {
	endpoint := c.baseURL.JoinPath(path).String()

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", authorizationValue(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &portalResponse{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        raw,
	}, nil
}

// authorizationValue renders the portal's token scheme: the literal word
// "Token" followed by the base64 of the session token.
func authorizationValue(token string) string {
	return "Token " + base64.StdEncoding.EncodeToString([]byte(token))
}

func (r *portalResponse) isJSON() bool {
	mt, _, err := mime.ParseMediaType(r.contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// errorMessage digs the portal's ErrorMessage field out of a response body,
// returning "" when there is none.
func (r *portalResponse) errorMessage() string {
	var probe struct {
		ErrorMessage string `json:"ErrorMessage"`
	}
	if err := json.Unmarshal(r.body, &probe); err != nil {
		return ""
	}
	return probe.ErrorMessage
}

// do runs one API operation end to end: ensure a session token exists,
// send the request, and when the portal rejects the cached token replace
// it and retry exactly once. A second rejection is final. Cancellation is
// passed through untouched so it is never misread as a portal failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.ensureToken(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return &APIError{Kind: APIKindAuthFailed, Message: "could not authenticate", Err: err}
		}

		resp, err := c.send(ctx, method, path, body, token)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return &APIError{Kind: APIKindServerOrTransport, Message: "request failed", Err: err}
		}

		switch {
		case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
			// The portal no longer honors this token. Drop it; the next
			// attempt authenticates from scratch.
			c.clearToken(token)
			if attempt == 0 {
				continue
			}
			return &APIError{
				Kind:       APIKindAuthFailed,
				StatusCode: resp.status,
				Body:       string(resp.body),
				Message:    "token rejected again after re-authentication",
			}
		case resp.status >= 500:
			return &APIError{
				Kind:       APIKindServerOrTransport,
				StatusCode: resp.status,
				Body:       string(resp.body),
				Message:    "portal server error",
			}
		case resp.status >= 400:
			return &APIError{
				Kind:       APIKindRequestRejected,
				StatusCode: resp.status,
				Body:       string(resp.body),
				Message:    rejectionMessage(resp),
			}
		}

		if !resp.isJSON() {
			return &APIError{
				Kind:       APIKindMalformedResponse,
				StatusCode: resp.status,
				Body:       string(resp.body),
				Message:    fmt.Sprintf("unexpected content type %q", resp.contentType),
			}
		}
		if msg := resp.errorMessage(); msg != "" {
			// Some portal rejections ride on a 200.
			return &APIError{
				Kind:       APIKindRequestRejected,
				StatusCode: resp.status,
				Body:       string(resp.body),
				Message:    msg,
			}
		}
		if out != nil {
			if err := json.Unmarshal(resp.body, out); err != nil {
				return &APIError{
					Kind:       APIKindMalformedResponse,
					StatusCode: resp.status,
					Body:       string(resp.body),
					Message:    "undecodable response body",
					Err:        err,
				}
			}
		}
		return nil
	}
	return nil
}

func rejectionMessage(resp *portalResponse) string {
	if msg := resp.errorMessage(); msg != "" {
		return msg
	}
	return http.StatusText(resp.status)
}

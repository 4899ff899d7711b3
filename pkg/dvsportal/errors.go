package dvsportal

import (
	"errors"
	"fmt"
)

// AuthErrorKind classifies why an authentication attempt failed.
type AuthErrorKind string

const (
	// AuthKindInvalidCredentials: the portal rejected the identifier/password
	// pair, or the login response carried no usable token.
	AuthKindInvalidCredentials AuthErrorKind = "invalid_credentials"

	// AuthKindUnreachable: the portal could not be reached at all (DNS,
	// connection refused, timeout) or answered with a server error.
	AuthKindUnreachable AuthErrorKind = "unreachable"
)

// AuthError is returned by the authentication flow. API operations never
// return it directly; they wrap it in an APIError of kind auth_failed.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("dvsportal: authentication failed (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("dvsportal: authentication failed (%s)", e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIErrorKind classifies how an API operation failed.
type APIErrorKind string

const (
	// APIKindAuthFailed: authentication failed, either before the request or
	// after the single re-authentication retry. Wraps the AuthError when the
	// failure came from the login flow.
	APIKindAuthFailed APIErrorKind = "auth_failed"

	// APIKindRequestRejected: the portal understood the request and said no
	// (a 4xx, or an ErrorMessage inside a 200). Not retried.
	APIKindRequestRejected APIErrorKind = "request_rejected"

	// APIKindServerOrTransport: a 5xx or a transport-level failure. Not
	// retried here; callers may retry at their own pace.
	APIKindServerOrTransport APIErrorKind = "server_or_transport"

	// APIKindMalformedResponse: the portal answered 2xx but the body was not
	// the expected shape (wrong content type, undecodable JSON, or an
	// impossible permit layout).
	APIKindMalformedResponse APIErrorKind = "malformed_response"
)

// APIError is the error type for every API operation on the client.
type APIError struct {
	Kind       APIErrorKind
	StatusCode int    // zero when no HTTP status applies
	Body       string // raw response body, when one was read
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("dvsportal: %s (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("dvsportal: %s: %s", e.Kind, msg)
}

func (e *APIError) Unwrap() error { return e.Err }

// ValidationError reports a malformed argument, detected before any network
// traffic.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dvsportal: invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidCredentials reports whether err is an authentication failure
// caused by rejected credentials, directly or inside an APIError.
func IsInvalidCredentials(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == AuthKindInvalidCredentials
}

// IsUnreachable reports whether err is an authentication failure caused by
// an unreachable portal.
func IsUnreachable(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == AuthKindUnreachable
}

func isAPIKind(err error, kind APIErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsAuthFailed reports whether err is an API failure of kind auth_failed.
func IsAuthFailed(err error) bool { return isAPIKind(err, APIKindAuthFailed) }

// IsRequestRejected reports whether err is an API failure of kind
// request_rejected.
func IsRequestRejected(err error) bool { return isAPIKind(err, APIKindRequestRejected) }

// IsServerOrTransport reports whether err is an API failure of kind
// server_or_transport.
func IsServerOrTransport(err error) bool { return isAPIKind(err, APIKindServerOrTransport) }

// IsMalformedResponse reports whether err is an API failure of kind
// malformed_response.
func IsMalformedResponse(err error) bool { return isAPIKind(err, APIKindMalformedResponse) }

// IsValidationError reports whether err is a local argument validation
// failure.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

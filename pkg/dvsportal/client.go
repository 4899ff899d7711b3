package dvsportal

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Version is reported to the portal in the User-Agent header.
const Version = "1.1.0"

const (
	defaultScheme   = "https"
	defaultPort     = "443"
	defaultBasePath = "/DVSWebAPI/api/"
	defaultTimeout  = 10 * time.Second
)

// accountState is the client's cached view of the portal account, replaced
// as a whole by each successful Update.
type accountState struct {
	balance     float64
	unitPrice   float64
	active      map[string]Reservation
	historic    map[string]HistoricReservation
	knownPlates map[string]string
}

// Client talks to a DVSPortal deployment on behalf of one account. All
// methods are safe for concurrent use. Authentication is driven lazily:
// the first API call logs in, and a token rejected mid-flight is replaced
// by exactly one re-authentication attempt.
type Client struct {
	baseURL    *url.URL
	rawBaseURL string
	identifier string
	password   string
	userAgent  string

	httpClient *http.Client
	ownsClient bool

	mu            sync.RWMutex
	token         string
	defaultTypeID int
	defaultCode   string
	state         accountState
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient makes the client send requests through hc instead of an
// internally constructed http.Client. Close then leaves hc untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.ownsClient = false
	}
}

// WithRequestTimeout overrides the default per-request timeout. Ignored
// when WithHTTPClient supplies its own client.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.ownsClient {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBaseURL replaces the https://{host}:443/DVSWebAPI/api/ base derived
// from the host, mainly for tests and reverse-proxied deployments.
func WithBaseURL(raw string) Option {
	return func(c *Client) { c.rawBaseURL = raw }
}

// New builds a client for the portal at host, authenticating with the given
// identifier and password. No network traffic happens until the first API
// call.
func New(host, identifier, password string, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, &ValidationError{Field: "host", Reason: "must not be empty"}
	}
	if identifier == "" {
		return nil, &ValidationError{Field: "identifier", Reason: "must not be empty"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	c := &Client{
		identifier: identifier,
		password:   password,
		userAgent:  "GoDVSPortal/" + Version,
		httpClient: &http.Client{Timeout: defaultTimeout},
		ownsClient: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	raw := c.rawBaseURL
	if raw == "" {
		raw = fmt.Sprintf("%s://%s:%s%s", defaultScheme, host, defaultPort, defaultBasePath)
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, &ValidationError{Field: "base_url", Reason: err.Error()}
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	c.baseURL = base
	return c, nil
}

// Close releases idle connections held by the internally constructed HTTP
// client. It is a no-op when WithHTTPClient supplied the transport.
func (c *Client) Close() {
	if c.ownsClient {
		c.httpClient.CloseIdleConnections()
	}
}

// Token returns the currently cached session token, or the empty string
// when the client has not authenticated yet.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Balance returns the remaining parking balance from the last Update, in
// the permit's native unit. Zero before the first successful Update.
func (c *Client) Balance() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.balance
}

// UnitPrice returns the balance cost of one reservation unit.
func (c *Client) UnitPrice() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.unitPrice
}

// DefaultTypeID returns the permit media type the client reserves under,
// zero until discovered.
func (c *Client) DefaultTypeID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultTypeID
}

// DefaultCode returns the permit media code the client reserves under,
// empty until discovered.
func (c *Client) DefaultCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultCode
}

// ActiveReservations returns the active reservations from the last Update,
// keyed by license plate. The map is a copy.
func (c *Client) ActiveReservations() map[string]Reservation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Reservation, len(c.state.active))
	for k, v := range c.state.active {
		out[k] = v
	}
	return out
}

// HistoricReservations returns finished reservations from the last Update,
// keyed by license plate. Entries the portal masked are absent. The map is
// a copy.
func (c *Client) HistoricReservations() map[string]HistoricReservation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]HistoricReservation, len(c.state.historic))
	for k, v := range c.state.historic {
		out[k] = v
	}
	return out
}

// KnownLicensePlates returns every plate the account has seen, mapped to
// its stored name (empty when unnamed). The map is a copy.
func (c *Client) KnownLicensePlates() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.state.knownPlates))
	for k, v := range c.state.knownPlates {
		out[k] = v
	}
	return out
}

package dvsportal

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePortal is an in-process stand-in for a DVSPortal deployment, just
// stateful enough to exercise the client: discovery, password login, base
// data, reservations and license plate management. Handlers answer shape
// mistakes with a 422 and an ErrorMessage so a broken request surfaces in
// the failing test instead of passing silently.
type fakePortal struct {
	t *testing.T

	mu        sync.Mutex
	password  string
	typeID    int
	code      string
	unitPrice float64
	balance   float64
	plates    map[string]string
	active    map[string]fakeReservation
	history   []fakeHistoryItem

	tokens    map[string]bool
	rejectAll bool
	lastAgent string

	createHook  func(w http.ResponseWriter) bool
	getBaseHook func(w http.ResponseWriter) bool
	baseArrived chan struct{}

	counts fakeCounts

	srv *httptest.Server
}

type fakeCounts struct {
	discovery, login, getBase, create, end, upsert, remove int
}

type fakeReservation struct {
	id    string
	plate string
	name  string
	from  time.Time
	until time.Time
	units int
}

type fakeHistoryItem struct {
	id      string
	display string
	from    time.Time
	until   time.Time
	units   int
}

const fakeTimeLayout = "2006-01-02T15:04:05"

func newFakePortal(t *testing.T) *fakePortal {
	p := &fakePortal{
		t:         t,
		password:  "s3cret",
		typeID:    21,
		code:      "100001",
		unitPrice: 0.1,
		balance:   116.79,
		plates:    map[string]string{},
		active:    map[string]fakeReservation{},
		tokens:    map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/DVSWebAPI/api/login", p.handleLogin)
	mux.HandleFunc("/DVSWebAPI/api/login/getbase", p.handleGetBase)
	mux.HandleFunc("/DVSWebAPI/api/reservation/create", p.handleCreate)
	mux.HandleFunc("/DVSWebAPI/api/reservation/end", p.handleEnd)
	mux.HandleFunc("/DVSWebAPI/api/permitmedialicenseplate/upsert", p.handleUpsert)
	mux.HandleFunc("/DVSWebAPI/api/permitmedialicenseplate/remove", p.handleRemove)

	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)
	return p
}

func (p *fakePortal) client(t *testing.T, opts ...Option) *Client {
	t.Helper()
	return p.clientWithPassword(t, "s3cret", opts...)
}

func (p *fakePortal) clientWithPassword(t *testing.T, password string, opts ...Option) *Client {
	t.Helper()
	all := append([]Option{WithBaseURL(p.srv.URL + "/DVSWebAPI/api/")}, opts...)
	c, err := New("portal.test", "12345", password, all...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func (p *fakePortal) snapshot() fakeCounts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts
}

func (p *fakePortal) totalRequests() int {
	c := p.snapshot()
	return c.discovery + c.login + c.getBase + c.create + c.end + c.upsert + c.remove
}

func (p *fakePortal) tokenValid(tok string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tokens[tok]
}

func (p *fakePortal) invalidateTokens() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for tok := range p.tokens {
		delete(p.tokens, tok)
	}
}

func (p *fakePortal) setRejectAll(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejectAll = v
}

func (p *fakePortal) setCreateHook(h func(w http.ResponseWriter) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createHook = h
}

func (p *fakePortal) setGetBaseHook(h func(w http.ResponseWriter) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getBaseHook = h
}

func (p *fakePortal) setBaseArrived(ch chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.baseArrived = ch
}

func (p *fakePortal) lastUserAgent() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastAgent
}

func (p *fakePortal) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (p *fakePortal) reject(w http.ResponseWriter, msg string) {
	p.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"ErrorMessage": msg})
}

func (p *fakePortal) unauthorized(w http.ResponseWriter) {
	p.writeJSON(w, http.StatusUnauthorized, map[string]any{"ErrorMessage": "token not valid"})
}

// authorized checks the Authorization header against the issued tokens.
// Callers hold p.mu.
func (p *fakePortal) authorized(r *http.Request) bool {
	if p.rejectAll {
		return false
	}
	scheme, b64, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || scheme != "Token" {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return false
	}
	return p.tokens[string(raw)]
}

func (p *fakePortal) mediaMatchesLocked(req map[string]any) bool {
	id, _ := req["permitMediaTypeID"].(float64)
	code, _ := req["permitMediaCode"].(string)
	return int(id) == p.typeID && code == p.code
}

func (p *fakePortal) handleLogin(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastAgent = r.Header.Get("User-Agent")

	if r.Method == http.MethodGet {
		p.counts.discovery++
		p.writeJSON(w, http.StatusOK, map[string]any{
			"PermitMediaTypes": []map[string]any{{"ID": p.typeID, "Name": "Bezoekersvergunning"}},
			"LoginMethods":     []string{"Pas"},
		})
		return
	}

	p.counts.login++
	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.reject(w, "bad login body")
		return
	}
	if req["loginMethod"] != "Pas" || req["identifier"] != "12345" {
		p.reject(w, "unexpected login fields")
		return
	}
	if id, _ := req["permitMediaTypeID"].(float64); int(id) != p.typeID {
		p.reject(w, "wrong permit media type")
		return
	}
	if req["password"] != p.password {
		p.writeJSON(w, http.StatusOK, map[string]any{
			"LoginStatus":  2,
			"ErrorMessage": "Invalid username or password",
		})
		return
	}

	token := fmt.Sprintf("session-%d", p.counts.login)
	p.tokens[token] = true
	p.writeJSON(w, http.StatusOK, map[string]any{"LoginStatus": 1, "Token": token})
}

func (p *fakePortal) handleGetBase(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	arrived := p.baseArrived
	p.mu.Unlock()
	if arrived != nil {
		arrived <- struct{}{}
		<-r.Context().Done()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts.getBase++
	if !p.authorized(r) {
		p.unauthorized(w)
		return
	}
	if p.getBaseHook != nil && p.getBaseHook(w) {
		return
	}
	p.writeJSON(w, http.StatusOK, p.baseDocumentLocked())
}

func (p *fakePortal) baseDocumentLocked() map[string]any {
	items := make([]map[string]any, 0, len(p.history))
	for _, h := range p.history {
		items = append(items, map[string]any{
			"ReservationID": h.id,
			"ValidFrom":     h.from.Format(fakeTimeLayout),
			"ValidUntil":    h.until.Format(fakeTimeLayout),
			"Units":         h.units,
			"LicensePlate":  map[string]any{"Value": h.display, "DisplayValue": h.display},
		})
	}

	actives := make([]map[string]any, 0, len(p.active))
	for _, a := range p.active {
		res := map[string]any{
			"ReservationID": a.id,
			"ValidFrom":     a.from.Format(fakeTimeLayout),
			"ValidUntil":    nil,
			"Units":         a.units,
			"LicensePlate":  map[string]any{"Value": a.plate},
		}
		if !a.until.IsZero() {
			res["ValidUntil"] = a.until.Format(fakeTimeLayout)
		}
		actives = append(actives, res)
	}

	named := make([]map[string]any, 0, len(p.plates))
	for value, name := range p.plates {
		named = append(named, map[string]any{"Value": value, "Name": name})
	}

	return map[string]any{
		"Permits": []map[string]any{{
			"UnitPrice": p.unitPrice,
			"PermitMedias": []map[string]any{{
				"TypeID":             p.typeID,
				"Code":               p.code,
				"Balance":            p.balance,
				"ActiveReservations": actives,
				"LicensePlates":      named,
				"History": map[string]any{
					"Reservations": map[string]any{"Items": items},
				},
			}},
		}],
	}
}

func (p *fakePortal) handleCreate(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts.create++
	if !p.authorized(r) {
		p.unauthorized(w)
		return
	}
	if p.createHook != nil && p.createHook(w) {
		return
	}

	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.reject(w, "bad create body")
		return
	}
	if !p.mediaMatchesLocked(req) {
		p.reject(w, "unknown permit media")
		return
	}
	plateObj, _ := req["LicensePlate"].(map[string]any)
	plate, _ := plateObj["Value"].(string)
	name, _ := plateObj["Name"].(string)
	if plate == "" {
		p.reject(w, "license plate required")
		return
	}
	rawFrom, _ := req["DateFrom"].(string)
	from, err := time.ParseInLocation(fakeTimeLayout, rawFrom, time.Local)
	if err != nil {
		p.reject(w, "bad DateFrom")
		return
	}

	res := fakeReservation{
		id:    fmt.Sprintf("res-%d", p.counts.create),
		plate: plate,
		name:  name,
		from:  from,
		units: 1,
	}
	if rawUntil, ok := req["DateUntil"].(string); ok {
		until, err := time.ParseInLocation(fakeTimeLayout, rawUntil, time.Local)
		if err != nil {
			p.reject(w, "bad DateUntil")
			return
		}
		res.until = until
		res.units = int(until.Sub(from).Hours())
		if res.units < 1 {
			res.units = 1
		}
	}
	p.active[res.id] = res
	p.writeJSON(w, http.StatusOK, map[string]any{"ReservationID": res.id})
}

func (p *fakePortal) handleEnd(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts.end++
	if !p.authorized(r) {
		p.unauthorized(w)
		return
	}

	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.reject(w, "bad end body")
		return
	}
	if !p.mediaMatchesLocked(req) {
		p.reject(w, "unknown permit media")
		return
	}
	id, _ := req["ReservationID"].(string)
	res, ok := p.active[id]
	if !ok {
		p.reject(w, "reservation not found")
		return
	}
	delete(p.active, id)
	p.history = append(p.history, fakeHistoryItem{
		id:      res.id,
		display: res.plate,
		from:    res.from,
		until:   time.Now(),
		units:   res.units,
	})
	p.writeJSON(w, http.StatusOK, map[string]any{})
}

func (p *fakePortal) handleUpsert(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts.upsert++
	if !p.authorized(r) {
		p.unauthorized(w)
		return
	}

	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.reject(w, "bad upsert body")
		return
	}
	if !p.mediaMatchesLocked(req) {
		p.reject(w, "unknown permit media")
		return
	}
	// The real portal wants the key present even though it is always null.
	if _, present := req["updateLicensePlate"]; !present {
		p.reject(w, "missing updateLicensePlate")
		return
	}
	plateObj, _ := req["licensePlate"].(map[string]any)
	value, _ := plateObj["Value"].(string)
	name, _ := plateObj["Name"].(string)
	if value == "" {
		p.reject(w, "license plate required")
		return
	}
	p.plates[value] = name
	p.writeJSON(w, http.StatusOK, map[string]any{})
}

func (p *fakePortal) handleRemove(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts.remove++
	if !p.authorized(r) {
		p.unauthorized(w)
		return
	}

	var req map[string]any
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.reject(w, "bad remove body")
		return
	}
	if !p.mediaMatchesLocked(req) {
		p.reject(w, "unknown permit media")
		return
	}
	// Unlike upsert, remove carries the plate as a bare string.
	value, ok := req["licensePlate"].(string)
	if !ok || value == "" {
		p.reject(w, "licensePlate must be a string")
		return
	}
	if _, exists := p.plates[value]; !exists {
		p.reject(w, "license plate not found")
		return
	}
	delete(p.plates, value)
	p.writeJSON(w, http.StatusOK, map[string]any{})
}

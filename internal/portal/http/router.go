package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/pkg/httpx"
	"github.com/stadspark/dvsportal/pkg/jwtx"
	"github.com/stadspark/dvsportal/pkg/slogx"

	_ "github.com/stadspark/dvsportal/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// basePath is where the upstream DVSPortal mounts its API; clients hardcode
// it, so the simulator serves the same prefix.
const basePath = "/DVSWebAPI/api"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	SessionService      *service.SessionService
	AccountService      *service.AccountService
	ReservationService  *service.ReservationService
	LicensePlateService *service.LicensePlateService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Health probes poll constantly and would drown the request log.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger, "/livez", "/readyz"),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerAccount()
	r.registerReservations()
	r.registerLicensePlates()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			DVSPortal Simulator API
//	@version		1.1.0
//	@description	A stand-in for the municipal DVSPortal visitor parking API: session login, base data,
//	@description	reservations and license plate management over the same wire protocol the real portal speaks.
//	@description
//	@description				Domain rejections answer 422 with an ErrorMessage body; rejected logins answer 200
//	@description				with LoginStatus 2, exactly like the upstream portal.
//
//	@contact.name				Stadspark Maintainers
//	@contact.url				https://github.com/stadspark/dvsportal
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionToken
//	@in							header
//	@name						Authorization
//	@description				Portal session token. Format: "Token {base64(token)}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps an authenticated portal endpoint: session check first, then
// a per-account rate limit.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.SessionMiddleware(r.verifier),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)
}

func (r *Router) registerSession() {
	h := &LoginHandler{SessionService: r.SessionService}

	// GET /login - discovery document, effectively public
	r.Mux.Handle("GET "+basePath+"/login",
		httpx.Chain(http.HandlerFunc(h.HandleDiscovery),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// POST /login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST "+basePath+"/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAccount() {
	h := &BaseDataHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST "+basePath+"/login/getbase", r.secured(h))
}

func (r *Router) registerReservations() {
	createHandler := &CreateReservationHandler{ReservationService: r.ReservationService}
	endHandler := &EndReservationHandler{ReservationService: r.ReservationService}

	r.Mux.Handle("POST "+basePath+"/reservation/create", r.secured(createHandler))
	r.Mux.Handle("POST "+basePath+"/reservation/end", r.secured(endHandler))
}

func (r *Router) registerLicensePlates() {
	upsertHandler := &UpsertLicensePlateHandler{LicensePlateService: r.LicensePlateService}
	removeHandler := &RemoveLicensePlateHandler{LicensePlateService: r.LicensePlateService}

	r.Mux.Handle("POST "+basePath+"/permitmedialicenseplate/upsert", r.secured(upsertHandler))
	r.Mux.Handle("POST "+basePath+"/permitmedialicenseplate/remove", r.secured(removeHandler))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/stadspark/dvsportal/internal/portal/http"
	"github.com/stadspark/dvsportal/internal/portal/service"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/internal/portal/store/drivers/sqlite"
	"github.com/stadspark/dvsportal/pkg/cryptox"
	"github.com/stadspark/dvsportal/pkg/jwtx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v1.1.0"

	// verifierLeeway absorbs clock skew between replicas when verifying
	// session tokens.
	verifierLeeway = 30 * time.Second
)

// Application encapsulates the portal simulator with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	keys     *jwtx.KeySet
	signer   *jwtx.Signer
	verifier *jwtx.Verifier

	// Services
	sessionService      *service.SessionService
	accountService      *service.AccountService
	reservationService  *service.ReservationService
	licensePlateService *service.LicensePlateService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "dvsportal-sim",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessionKeys(); err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}

	if err := app.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed portal account: %w", err)
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("portal simulator starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portal simulator...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portal simulator stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessionKeys generates the boot-time Ed25519 signing key. Sessions are
// short-lived, so keys don't survive restarts; a restart just means clients
// log in again.
func (app *Application) initSessionKeys() error {
	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return err
	}

	signer, err := jwtx.NewSigner("boot", pemKey)
	if err != nil {
		return err
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	app.signer = signer
	app.keys = keys
	app.verifier = jwtx.NewVerifier(keys, app.cfg.Issuer, verifierLeeway)

	app.logger.Info("session signing key generated", "kid", signer.KID())
	return nil
}

// seed guarantees the configured portal account exists
func (app *Application) seed() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	seeder := &service.SeedService{Store: app.db}
	return seeder.EnsureAccount(ctx, service.SeedAccount{
		Identifier: app.cfg.SeedIdentifier,
		Password:   app.cfg.SeedPassword,
		ZonalCode:  app.cfg.SeedZonalCode,
		MediaCode:  app.cfg.SeedMediaCode,
		Balance:    app.cfg.SeedBalance,
		UnitPrice:  app.cfg.SeedUnitPrice,
	})
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Signer: app.signer,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}

	app.accountService = &service.AccountService{Store: app.db}
	app.reservationService = &service.ReservationService{Store: app.db}
	app.licensePlateService = &service.LicensePlateService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.SessionService = app.sessionService
	router.AccountService = app.accountService
	router.ReservationService = app.reservationService
	router.LicensePlateService = app.licensePlateService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement it. Sub-repositories keep the surface tidy and stop
// callers from accidentally nesting transactions.
type Store interface {
	Accounts() Accounts
	Permits() Permits
	LicensePlates() LicensePlates
	Reservations() Reservations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn errors
	// and committing otherwise. Prefer this over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByIdentifier is used during login.
	GetAccountByIdentifier(ctx context.Context, identifier string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// IsEmpty returns true when no accounts exist, used by seeding.
	IsEmpty(ctx context.Context) (bool, error)
}

type Permits interface {
	CreatePermit(ctx context.Context, p domain.Permit) error
	CreatePermitMedia(ctx context.Context, m domain.PermitMedia) error

	// GetPermitByAccount returns the account's single permit.
	GetPermitByAccount(ctx context.Context, accountID string) (domain.Permit, error)

	// GetMediaByPermit returns the permit's single media.
	GetMediaByPermit(ctx context.Context, permitID string) (domain.PermitMedia, error)

	GetMediaByCode(ctx context.Context, code string) (domain.PermitMedia, error)

	// AdjustMediaBalance adds delta (negative to charge) to the balance.
	AdjustMediaBalance(ctx context.Context, mediaID string, delta float64) error
}

type LicensePlates interface {
	// UpsertLicensePlate inserts the plate or renames an existing one.
	UpsertLicensePlate(ctx context.Context, p domain.LicensePlate) error

	GetLicensePlate(ctx context.Context, mediaID, value string) (domain.LicensePlate, error)

	ListLicensePlatesByMedia(ctx context.Context, mediaID string) ([]domain.LicensePlate, error)

	DeleteLicensePlate(ctx context.Context, mediaID, value string) error
}

type Reservations interface {
	CreateReservation(ctx context.Context, r domain.Reservation) error

	GetReservationByID(ctx context.Context, id string) (domain.Reservation, error)

	// GetActiveByPlate returns the not-ended, not-expired reservation for a
	// plate on a media, if any.
	GetActiveByPlate(ctx context.Context, mediaID, plateValue string, now time.Time) (domain.Reservation, error)

	// ListActiveByMedia returns reservations still running at now, newest
	// first.
	ListActiveByMedia(ctx context.Context, mediaID string, now time.Time) ([]domain.Reservation, error)

	// ListFinishedByMedia returns ended or expired reservations, newest
	// first, capped at limit.
	ListFinishedByMedia(ctx context.Context, mediaID string, now time.Time, limit int) ([]domain.Reservation, error)

	// EndReservation marks the reservation ended with its final interval
	// and unit count.
	EndReservation(ctx context.Context, id string, until time.Time, units int) error

	// FinalizeLapsedReservations marks bounded reservations whose end has
	// passed as ended, returning how many rows changed. Housekeeping calls
	// this so the active set stays small.
	FinalizeLapsedReservations(ctx context.Context, now time.Time) (int, error)
}

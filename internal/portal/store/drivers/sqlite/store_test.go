package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "portal.db")
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// seedAccount creates an account with its permit and media, returning the
// media for the reservation and plate tests.
func seedAccount(t *testing.T, s *Store, identifier string) (domain.Account, domain.PermitMedia) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	acc := domain.Account{
		ID:           idx.New().String(),
		Identifier:   identifier,
		PasswordHash: "argon2id-dummy",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Accounts().CreateAccount(ctx, acc))

	permit := domain.Permit{
		ID:        idx.New().String(),
		AccountID: acc.ID,
		ZonalCode: "Centrum-1",
		UnitPrice: 0.1,
	}
	require.NoError(t, s.Permits().CreatePermit(ctx, permit))

	media := domain.PermitMedia{
		ID:       idx.New().String(),
		PermitID: permit.ID,
		TypeID:   domain.VisitorMediaTypeID,
		Code:     "media-" + identifier,
		Balance:  100,
	}
	require.NoError(t, s.Permits().CreatePermitMedia(ctx, media))

	return acc, media
}

func TestAccountsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	acc, _ := seedAccount(t, s, "12345")

	empty, err = s.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)

	byID, err := s.Accounts().GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, "12345", byID.Identifier)

	byIdent, err := s.Accounts().GetAccountByIdentifier(ctx, "12345")
	require.NoError(t, err)
	require.Equal(t, acc.ID, byIdent.ID)

	_, err = s.Accounts().GetAccountByIdentifier(ctx, "99999")
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := acc
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Accounts().CreateAccount(ctx, dup), store.ErrAlreadyExists)
}

func TestPermitsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acc, media := seedAccount(t, s, "12345")

	permit, err := s.Permits().GetPermitByAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, "Centrum-1", permit.ZonalCode)
	require.InDelta(t, 0.1, permit.UnitPrice, 1e-9)

	byPermit, err := s.Permits().GetMediaByPermit(ctx, permit.ID)
	require.NoError(t, err)
	require.Equal(t, media.ID, byPermit.ID)

	byCode, err := s.Permits().GetMediaByCode(ctx, media.Code)
	require.NoError(t, err)
	require.Equal(t, media.ID, byCode.ID)
	require.InDelta(t, 100, byCode.Balance, 1e-9)

	require.NoError(t, s.Permits().AdjustMediaBalance(ctx, media.ID, -2.5))
	byCode, err = s.Permits().GetMediaByCode(ctx, media.Code)
	require.NoError(t, err)
	require.InDelta(t, 97.5, byCode.Balance, 1e-9)

	require.ErrorIs(t, s.Permits().AdjustMediaBalance(ctx, "missing", 1), store.ErrNotFound)
}

func TestLicensePlatesRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	_, media := seedAccount(t, s, "12345")

	plate := domain.LicensePlate{
		ID:        idx.New().String(),
		MediaID:   media.ID,
		Value:     "111AB2",
		Name:      "Oma",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.LicensePlates().UpsertLicensePlate(ctx, plate))

	got, err := s.LicensePlates().GetLicensePlate(ctx, media.ID, "111AB2")
	require.NoError(t, err)
	require.Equal(t, "Oma", got.Name)

	// Upserting the same value renames instead of duplicating.
	renamed := plate
	renamed.ID = idx.New().String()
	renamed.Name = "Opa"
	require.NoError(t, s.LicensePlates().UpsertLicensePlate(ctx, renamed))

	list, err := s.LicensePlates().ListLicensePlatesByMedia(ctx, media.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Opa", list[0].Name)

	require.NoError(t, s.LicensePlates().DeleteLicensePlate(ctx, media.ID, "111AB2"))
	require.ErrorIs(t, s.LicensePlates().DeleteLicensePlate(ctx, media.ID, "111AB2"), store.ErrNotFound)

	_, err = s.LicensePlates().GetLicensePlate(ctx, media.ID, "111AB2")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestReservationsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	_, media := seedAccount(t, s, "12345")

	until := now.Add(2 * time.Hour)
	bounded := domain.Reservation{
		ID:         idx.New().String(),
		MediaID:    media.ID,
		PlateValue: "111AB2",
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: &until,
		Units:      3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.Reservations().CreateReservation(ctx, bounded))

	open := domain.Reservation{
		ID:         idx.New().String(),
		MediaID:    media.ID,
		PlateValue: "333CD4",
		ValidFrom:  now,
		Units:      1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.Reservations().CreateReservation(ctx, open))

	expiredUntil := now.Add(-time.Hour)
	expired := domain.Reservation{
		ID:         idx.New().String(),
		MediaID:    media.ID,
		PlateValue: "555EF6",
		ValidFrom:  now.Add(-3 * time.Hour),
		ValidUntil: &expiredUntil,
		Units:      2,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.Reservations().CreateReservation(ctx, expired))

	active, err := s.Reservations().ListActiveByMedia(ctx, media.ID, now)
	require.NoError(t, err)
	require.Len(t, active, 2)

	finished, err := s.Reservations().ListFinishedByMedia(ctx, media.ID, now, 10)
	require.NoError(t, err)
	require.Len(t, finished, 1)
	require.Equal(t, "555EF6", finished[0].PlateValue)

	byPlate, err := s.Reservations().GetActiveByPlate(ctx, media.ID, "333CD4", now)
	require.NoError(t, err)
	require.Equal(t, open.ID, byPlate.ID)
	require.Nil(t, byPlate.ValidUntil)

	_, err = s.Reservations().GetActiveByPlate(ctx, media.ID, "555EF6", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Ending moves the open reservation to the finished set.
	require.NoError(t, s.Reservations().EndReservation(ctx, open.ID, now.Add(30*time.Minute), 1))
	require.ErrorIs(t, s.Reservations().EndReservation(ctx, open.ID, now, 1), store.ErrNotFound)

	got, err := s.Reservations().GetReservationByID(ctx, open.ID)
	require.NoError(t, err)
	require.True(t, got.Ended)
	require.NotNil(t, got.ValidUntil)

	active, err = s.Reservations().ListActiveByMedia(ctx, media.ID, now)
	require.NoError(t, err)
	require.Len(t, active, 1)

	// Housekeeping marks the lapsed bounded reservation; the running one and
	// the already-ended one are left alone.
	n, err := s.Reservations().FinalizeLapsedReservations(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err = s.Reservations().GetReservationByID(ctx, expired.ID)
	require.NoError(t, err)
	require.True(t, got.Ended)

	n, err = s.Reservations().FinalizeLapsedReservations(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		acc := domain.Account{
			ID:           idx.New().String(),
			Identifier:   "rollback-me",
			PasswordHash: "x",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Accounts().CreateAccount(ctx, acc); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Accounts().GetAccountByIdentifier(ctx, "rollback-me")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           idx.New().String(),
			Identifier:   "keep-me",
			PasswordHash: "x",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	require.NoError(t, err)

	_, err = s.Accounts().GetAccountByIdentifier(ctx, "keep-me")
	require.NoError(t, err)
}

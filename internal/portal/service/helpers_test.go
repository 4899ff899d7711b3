package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/internal/portal/store/drivers/sqlite"
	"github.com/stadspark/dvsportal/pkg/cryptox"
	"github.com/stadspark/dvsportal/pkg/idx"
	"github.com/stretchr/testify/require"
)

const testPassword = "s3cret-password"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// seedTestAccount creates an account with a permit and media the way the
// boot-time seeder would, with a balance of 100 units at 0.1 each.
func seedTestAccount(t *testing.T, s store.Store, identifier string) (domain.Account, domain.PermitMedia) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	acc := domain.Account{
		ID:           idx.New().String(),
		Identifier:   identifier,
		PasswordHash: hash,
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

func mediaBalance(t *testing.T, s store.Store, code string) float64 {
	t.Helper()
	media, err := s.Permits().GetMediaByCode(context.Background(), code)
	require.NoError(t, err)
	return media.Balance
}

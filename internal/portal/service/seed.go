package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/pkg/cryptox"
	"github.com/stadspark/dvsportal/pkg/idx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

// SeedAccount describes the account the server guarantees exists at boot.
// A fresh database is useless without one because the portal has no
// self-service signup.
type SeedAccount struct {
	Identifier string
	Password   string // generated and logged once when empty
	ZonalCode  string
	MediaCode  string
	Balance    float64
	UnitPrice  float64
}

type SeedService struct {
	Store store.Store
}

// EnsureAccount creates the seed account with its permit and media unless the
// identifier already exists. Safe to run on every boot.
func (s *SeedService) EnsureAccount(ctx context.Context, seed SeedAccount) error {
	l := slogx.FromContext(ctx)

	_, err := s.Store.Accounts().GetAccountByIdentifier(ctx, seed.Identifier)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	password := seed.Password
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	accountID := idx.New().String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           accountID,
			Identifier:   seed.Identifier,
			PasswordHash: passHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}

		permitID := idx.New().String()
		if err := tx.Permits().CreatePermit(ctx, domain.Permit{
			ID:        permitID,
			AccountID: accountID,
			ZonalCode: seed.ZonalCode,
			UnitPrice: seed.UnitPrice,
		}); err != nil {
			return err
		}

		return tx.Permits().CreatePermitMedia(ctx, domain.PermitMedia{
			ID:       idx.New().String(),
			PermitID: permitID,
			TypeID:   domain.VisitorMediaTypeID,
			Code:     seed.MediaCode,
			Balance:  seed.Balance,
		})
	})
	if err != nil {
		return err
	}

	if generated {
		// The only place the password ever appears. Operators who want a
		// stable one set PORTAL_SEED_PASSWORD instead.
		l.Warn("generated seed account password",
			slog.String("identifier", seed.Identifier),
			slog.String("password", password),
		)
	}
	l.Info("seeded portal account",
		slog.String("account_id", accountID),
		slog.String("identifier", seed.Identifier),
		slog.String("media_code", seed.MediaCode),
	)
	return nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/pkg/cryptox"
	"github.com/stadspark/dvsportal/pkg/jwtx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownMediaType   = errors.New("unknown permit media type")
)

// SessionService exchanges portal credentials for a session token. The token
// pins the account and its permit media so later requests don't have to
// re-resolve them.
type SessionService struct {
	Store  store.Store
	Signer *jwtx.Signer
	Issuer string
	TTL    time.Duration
}

// MediaTypes lists the permit media types an anonymous caller may log in
// against. The portal only issues visitor permits, so the list has one entry.
func (s *SessionService) MediaTypes() []domain.PermitMediaType {
	return []domain.PermitMediaType{
		{ID: domain.VisitorMediaTypeID, Name: domain.VisitorMediaTypeName},
	}
}

// Login verifies the credentials and issues a session token bound to the
// account's permit media. Wrong identifier and wrong password are
// indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, identifier, password string, mediaTypeID int) (string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	if mediaTypeID != domain.VisitorMediaTypeID {
		return "", ErrUnknownMediaType
	}

	account, err := s.Store.Accounts().GetAccountByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login for unknown identifier", slog.String("identifier", identifier))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		l.Info("login with wrong password", slog.String("identifier", identifier))
		return "", ErrInvalidCredentials
	}

	permit, err := s.Store.Permits().GetPermitByAccount(ctx, account.ID)
	if err != nil {
		return "", err
	}
	media, err := s.Store.Permits().GetMediaByPermit(ctx, permit.ID)
	if err != nil {
		return "", err
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		account.ID,
		account.Identifier,
		media.TypeID,
		media.Code,
		cryptox.MustGenerateToken(cryptox.TokenSize128),
		s.Issuer,
		ttl,
		now,
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		l.Error("failed to sign session token", slog.Any("error", err))
		return "", err
	}

	l.Info("session issued",
		slog.String("account_id", account.ID),
		slog.String("media_code", media.Code),
	)
	return token, nil
}

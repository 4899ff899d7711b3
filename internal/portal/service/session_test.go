package service

import (
	"context"
	"testing"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/pkg/cryptox"
	"github.com/stadspark/dvsportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) (*jwtx.Signer, *jwtx.Verifier) {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSigner("test-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	return signer, jwtx.NewVerifier(keys, "portal-test", time.Minute)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	acc, media := seedTestAccount(t, s, "12345")
	signer, verifier := newTestSigner(t)

	svc := &SessionService{Store: s, Signer: signer, Issuer: "portal-test", TTL: time.Hour}

	token, err := svc.Login(ctx, "12345", testPassword, domain.VisitorMediaTypeID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, acc.ID, claims.Subject)
	require.Equal(t, "12345", claims.Identifier)
	require.Equal(t, media.TypeID, claims.MediaTypeID)
	require.Equal(t, media.Code, claims.MediaCode)
	require.NotEmpty(t, claims.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	seedTestAccount(t, s, "12345")
	signer, _ := newTestSigner(t)

	svc := &SessionService{Store: s, Signer: signer, Issuer: "portal-test", TTL: time.Hour}

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "12345", "not-the-password", domain.VisitorMediaTypeID)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := svc.Login(ctx, "99999", testPassword, domain.VisitorMediaTypeID)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown media type", func(t *testing.T) {
		_, err := svc.Login(ctx, "12345", testPassword, 7)
		require.ErrorIs(t, err, ErrUnknownMediaType)
	})
}

func TestLoginDefaultsTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newTestStore(t)
	seedTestAccount(t, s, "12345")
	signer, verifier := newTestSigner(t)

	// TTL left zero falls back to the package default.
	svc := &SessionService{Store: s, Signer: signer, Issuer: "portal-test"}

	token, err := svc.Login(ctx, "12345", testPassword, domain.VisitorMediaTypeID)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.WithinDuration(t,
		time.Now().Add(jwtx.DefaultSessionTTL),
		claims.ExpiresAt.Time,
		time.Minute,
	)
}

func TestMediaTypes(t *testing.T) {
	t.Parallel()

	svc := &SessionService{}
	types := svc.MediaTypes()
	require.Len(t, types, 1)
	require.Equal(t, domain.VisitorMediaTypeID, types[0].ID)
	require.Equal(t, domain.VisitorMediaTypeName, types[0].Name)
}

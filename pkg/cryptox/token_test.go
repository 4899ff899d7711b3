package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tok, err := GenerateToken(TokenSize128)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	require.Len(t, raw, TokenSize128)

	other, err := GenerateToken(TokenSize128)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	_, err := GenerateToken(0)
	require.Error(t, err)

	_, err = GenerateToken(-1)
	require.Error(t, err)
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("some-session-token")

	// Deterministic, and never the raw input.
	require.Equal(t, fp, FingerprintToken("some-session-token"))
	require.NotEqual(t, fp, FingerprintToken("other-session-token"))
	require.NotContains(t, fp, "some-session-token")
	require.Len(t, fp, 43) // raw base64url of a sha256 sum
}

package portal_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type healthDocument struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Checks  *struct {
		Database string `json:"database"`
		Signer   string `json:"signer"`
	} `json:"checks"`
}

func fetchHealth(t *testing.T, url string) (int, healthDocument) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc healthDocument
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	return resp.StatusCode, doc
}

// TestLivezEndpoint verifies the liveness probe of a running container.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	status, doc := fetchHealth(t, baseURL+"/livez")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", doc.Status)
	require.NotEmpty(t, doc.Uptime)
	require.NotEmpty(t, doc.Version)
}

// TestReadyzEndpoint verifies the readiness probe reports its dependency
// checks.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	status, doc := fetchHealth(t, baseURL+"/readyz")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", doc.Status)
	require.NotNil(t, doc.Checks)
	require.Equal(t, "ok", doc.Checks.Database)
	require.Equal(t, "ok", doc.Checks.Signer)
}

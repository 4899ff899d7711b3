package dvsportal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLicensePlateRoundTrip(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	// The first mutating call on a fresh client discovers the permit media
	// by fetching the base data once.
	require.NoError(t, c.StoreLicensePlate(context.Background(), "888ZZ8", "Loaner"))
	require.Equal(t, 1, p.snapshot().getBase)

	require.NoError(t, c.Update(context.Background()))
	require.Equal(t, "Loaner", c.KnownLicensePlates()["888ZZ8"])

	require.NoError(t, c.RemoveLicensePlate(context.Background(), "888ZZ8", "Loaner"))
	require.NoError(t, c.Update(context.Background()))
	require.NotContains(t, c.KnownLicensePlates(), "888ZZ8")
}

func TestStoreLicensePlateUpdatesName(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	require.NoError(t, c.StoreLicensePlate(context.Background(), "444GH5", "Aannemer"))
	require.NoError(t, c.StoreLicensePlate(context.Background(), "444GH5", "Schilder"))

	require.NoError(t, c.Update(context.Background()))
	require.Equal(t, "Schilder", c.KnownLicensePlates()["444GH5"])
}

func TestLicensePlateValidation(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	require.True(t, IsValidationError(c.StoreLicensePlate(context.Background(), "", "Naam")))
	require.True(t, IsValidationError(c.RemoveLicensePlate(context.Background(), "", "Naam")))
	require.Equal(t, 0, p.totalRequests())
}

func TestRemoveUnknownLicensePlateIsRejected(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	err := c.RemoveLicensePlate(context.Background(), "000NO0", "")
	require.True(t, IsRequestRejected(err))
	require.ErrorContains(t, err, "not found")
}

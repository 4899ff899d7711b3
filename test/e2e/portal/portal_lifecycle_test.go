package portal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stadspark/dvsportal/pkg/dvsportal"
)

// TestReservationLifecycle drives a full bounded reservation through the
// containerized simulator: discover, reserve, observe, end, settle.
func TestReservationLifecycle(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := newSDKClient(t, baseURL, seedPassword)

	require.NoError(t, client.Update(ctx))
	require.InDelta(t, 100, client.Balance(), 1e-9)
	require.InDelta(t, 0.1, client.UnitPrice(), 1e-9)
	require.Equal(t, seedMediaCode, client.DefaultCode())
	require.Empty(t, client.ActiveReservations())

	// Store the plate first so the finished reservation stays visible in
	// the history instead of being masked.
	require.NoError(t, client.StoreLicensePlate(ctx, "111AB2", "Oma"))

	until := time.Now().Add(2 * time.Hour)
	created, err := client.CreateReservation(ctx, dvsportal.CreateReservationRequest{
		Plate: "111AB2",
		Until: &until,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ReservationID)

	require.NoError(t, client.Update(ctx))
	require.InDelta(t, 98, client.Balance(), 1e-9)

	active := client.ActiveReservations()
	require.Len(t, active, 1)
	res := active["111AB2"]
	require.Equal(t, created.ReservationID, res.ID)
	require.Equal(t, 2, res.Units)
	require.InDelta(t, 0.2, res.Cost, 1e-9)

	require.NoError(t, client.EndReservation(ctx, created.ReservationID))
	require.NoError(t, client.Update(ctx))
	require.Empty(t, client.ActiveReservations())

	// Ending within the first hour refunds one of the two booked units.
	require.InDelta(t, 99, client.Balance(), 1e-9)

	history := client.HistoricReservations()
	require.Len(t, history, 1)
	require.Equal(t, 1, history["111AB2"].Units)

	t.Logf("Lifecycle complete, final balance %.1f", client.Balance())
}

// TestOpenEndedReservation verifies a reservation without an end time runs
// until ended and only charges the time actually parked.
func TestOpenEndedReservation(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := newSDKClient(t, baseURL, seedPassword)

	created, err := client.CreateReservation(ctx, dvsportal.CreateReservationRequest{
		Plate: "555EF6",
	})
	require.NoError(t, err)

	// One unit is booked up front.
	require.NoError(t, client.Update(ctx))
	require.InDelta(t, 99, client.Balance(), 1e-9)

	active := client.ActiveReservations()
	require.Len(t, active, 1)
	require.True(t, active["555EF6"].ValidUntil.IsZero(), "open-ended reservation should have no end time")

	// Ending within the first hour settles at exactly the unit already paid.
	require.NoError(t, client.EndReservation(ctx, created.ReservationID))
	require.NoError(t, client.Update(ctx))
	require.Empty(t, client.ActiveReservations())
	require.InDelta(t, 99, client.Balance(), 1e-9)
}

// TestInsufficientBalanceRejected verifies the simulator refuses a
// reservation the balance cannot cover.
func TestInsufficientBalanceRejected(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := newSDKClient(t, baseURL, seedPassword)

	until := time.Now().Add(200 * time.Hour)
	_, err := client.CreateReservation(ctx, dvsportal.CreateReservationRequest{
		Plate: "999ZZ1",
		Until: &until,
	})
	require.True(t, dvsportal.IsRequestRejected(err))
	require.ErrorContains(t, err, "Insufficient balance")

	// Nothing was charged.
	require.NoError(t, client.Update(ctx))
	require.InDelta(t, 100, client.Balance(), 1e-9)
}

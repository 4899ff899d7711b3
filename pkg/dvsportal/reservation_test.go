package dvsportal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReservationLifecycle(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	from := time.Now().Add(time.Hour).Truncate(time.Second)
	until := from.Add(2 * time.Hour)
	res, err := c.CreateReservation(context.Background(), CreateReservationRequest{
		Plate: "111AB2",
		From:  &from,
		Until: &until,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ReservationID)

	require.NoError(t, c.Update(context.Background()))
	active := c.ActiveReservations()
	require.Contains(t, active, "111AB2")
	got := active["111AB2"]
	require.Equal(t, res.ReservationID, got.ID)
	require.Equal(t, 2, got.Units)
	require.InDelta(t, 0.2, got.Cost, 1e-9)
	require.WithinDuration(t, from, got.ValidFrom, time.Second)
	require.WithinDuration(t, until, got.ValidUntil, time.Second)

	require.NoError(t, c.EndReservation(context.Background(), res.ReservationID))
	require.NoError(t, c.Update(context.Background()))
	require.NotContains(t, c.ActiveReservations(), "111AB2")
	require.Contains(t, c.HistoricReservations(), "111AB2")
}

func TestOpenEndedReservation(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	res, err := c.CreateReservation(context.Background(), CreateReservationRequest{Plate: "222XY9"})
	require.NoError(t, err)

	require.NoError(t, c.Update(context.Background()))
	got := c.ActiveReservations()["222XY9"]
	require.Equal(t, res.ReservationID, got.ID)
	require.True(t, got.ValidUntil.IsZero(), "open-ended reservations have no end time")

	require.NoError(t, c.EndReservation(context.Background(), res.ReservationID))
	require.NoError(t, c.Update(context.Background()))
	require.NotContains(t, c.ActiveReservations(), "222XY9")
}

func TestCreateReservationValidation(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	t.Run("empty plate", func(t *testing.T) {
		_, err := c.CreateReservation(context.Background(), CreateReservationRequest{})
		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, "license_plate")
	})

	t.Run("until not after from", func(t *testing.T) {
		from := time.Now().Add(2 * time.Hour)
		until := from.Add(-time.Hour)
		_, err := c.CreateReservation(context.Background(), CreateReservationRequest{
			Plate: "111AB2",
			From:  &from,
			Until: &until,
		})
		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, "date_until")
	})

	t.Run("until equal to from", func(t *testing.T) {
		from := time.Now().Add(2 * time.Hour)
		until := from
		_, err := c.CreateReservation(context.Background(), CreateReservationRequest{
			Plate: "111AB2",
			From:  &from,
			Until: &until,
		})
		require.True(t, IsValidationError(err))
	})

	require.Equal(t, 0, p.totalRequests(), "validation failures must never reach the network")
}

func TestEndReservationValidation(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	err := c.EndReservation(context.Background(), "")
	require.True(t, IsValidationError(err))
	require.Equal(t, 0, p.totalRequests())
}

func TestEndUnknownReservationIsRejected(t *testing.T) {
	p := newFakePortal(t)
	c := p.client(t)

	err := c.EndReservation(context.Background(), "res-does-not-exist")
	require.True(t, IsRequestRejected(err))
	require.ErrorContains(t, err, "reservation not found")
}

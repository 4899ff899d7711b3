package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/pkg/idx"
	"github.com/stadspark/dvsportal/pkg/slogx"
)

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrDuplicateReservation = errors.New("license plate already has an active reservation")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidPeriod        = errors.New("reservation must end after it starts")
)

// ReservationService books and ends parking sessions against a permit
// media's unit balance. A unit is a started hour; bounded reservations are
// charged in full up front, open-ended ones pay one unit up front and the
// rest when they end.
type ReservationService struct {
	Store store.Store
}

// Create books a reservation for the plate. The plate does not have to be
// stored on the media; drive-by plates are fine.
func (s *ReservationService) Create(
	ctx context.Context,
	accountID string,
	mediaTypeID int,
	mediaCode string,
	plate, name string,
	from time.Time,
	until *time.Time,
) (domain.Reservation, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	if until != nil && !until.After(from) {
		return domain.Reservation{}, ErrInvalidPeriod
	}

	_, media, err := mediaFor(ctx, s.Store, accountID, mediaTypeID, mediaCode)
	if err != nil {
		return domain.Reservation{}, err
	}

	units := 1
	if until != nil {
		units = domain.UnitsBetween(from, *until)
	}

	res := domain.Reservation{
		ID:         idx.New().String(),
		MediaID:    media.ID,
		PlateValue: plate,
		PlateName:  name,
		ValidFrom:  from,
		ValidUntil: until,
		Units:      units,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Reservations().GetActiveByPlate(ctx, media.ID, plate, now)
		if err == nil {
			return ErrDuplicateReservation
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// Re-read the balance inside the transaction so two concurrent
		// creates cannot both spend the same units.
		current, err := tx.Permits().GetMediaByCode(ctx, media.Code)
		if err != nil {
			return err
		}
		if current.Balance < float64(units) {
			return ErrInsufficientBalance
		}

		if err := tx.Permits().AdjustMediaBalance(ctx, media.ID, -float64(units)); err != nil {
			return err
		}
		return tx.Reservations().CreateReservation(ctx, res)
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	l.Info("reservation created",
		slog.String("reservation_id", res.ID),
		slog.String("media_code", media.Code),
		slog.Int("units", units),
	)
	return res, nil
}

// End finishes a reservation now and settles the balance. Ending a bounded
// reservation early refunds the unused whole units; ending an open-ended one
// charges the units that accumulated beyond the one paid at creation.
func (s *ReservationService) End(
	ctx context.Context,
	accountID string,
	mediaTypeID int,
	mediaCode string,
	reservationID string,
) (domain.Reservation, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	_, media, err := mediaFor(ctx, s.Store, accountID, mediaTypeID, mediaCode)
	if err != nil {
		return domain.Reservation{}, err
	}

	var ended domain.Reservation
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		res, err := tx.Reservations().GetReservationByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if res.MediaID != media.ID || res.Ended {
			return ErrReservationNotFound
		}

		// Ending after a bounded reservation lapsed must not extend it.
		endAt := now
		if res.ValidUntil != nil && res.ValidUntil.Before(endAt) {
			endAt = *res.ValidUntil
		}

		finalUnits := domain.UnitsBetween(res.ValidFrom, endAt)
		if res.ValidUntil != nil && finalUnits > res.Units {
			finalUnits = res.Units
		}

		delta := float64(res.Units - finalUnits)
		if res.ValidUntil == nil {
			// Open-ended reservations paid one unit up front.
			delta = float64(1 - finalUnits)
		}
		if delta != 0 {
			if err := tx.Permits().AdjustMediaBalance(ctx, media.ID, delta); err != nil {
				return err
			}
		}

		if err := tx.Reservations().EndReservation(ctx, res.ID, endAt, finalUnits); err != nil {
			return err
		}

		ended = res
		ended.ValidUntil = &endAt
		ended.Units = finalUnits
		ended.Ended = true
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	l.Info("reservation ended",
		slog.String("reservation_id", ended.ID),
		slog.Int("units", ended.Units),
	)
	return ended, nil
}

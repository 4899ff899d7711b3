package service

import (
	"context"
	"errors"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
	"github.com/stadspark/dvsportal/pkg/idx"
)

var ErrPlateNotFound = errors.New("license plate not found")

// LicensePlateService manages the plates stored on a permit media. Stored
// plates are a convenience for the holder; reservations work for any plate.
type LicensePlateService struct {
	Store store.Store
}

// Upsert stores the plate on the media, or renames it if it is already there.
func (s *LicensePlateService) Upsert(
	ctx context.Context,
	accountID string,
	mediaTypeID int,
	mediaCode string,
	plate, name string,
) error {
	_, media, err := mediaFor(ctx, s.Store, accountID, mediaTypeID, mediaCode)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.Store.LicensePlates().UpsertLicensePlate(ctx, domain.LicensePlate{
		ID:        idx.New().String(),
		MediaID:   media.ID,
		Value:     plate,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Remove deletes the plate from the media.
func (s *LicensePlateService) Remove(
	ctx context.Context,
	accountID string,
	mediaTypeID int,
	mediaCode string,
	plate string,
) error {
	_, media, err := mediaFor(ctx, s.Store, accountID, mediaTypeID, mediaCode)
	if err != nil {
		return err
	}

	err = s.Store.LicensePlates().DeleteLicensePlate(ctx, media.ID, plate)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPlateNotFound
	}
	return err
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
)

var ErrUnknownMedia = errors.New("unknown permit media")

// historyLimit caps how many finished reservations the base document carries.
const historyLimit = 50

// HistoryEntry is a finished reservation plus the plate value the account is
// allowed to see for it.
type HistoryEntry struct {
	Reservation  domain.Reservation
	DisplayValue string
}

// BaseData is everything a client learns about an account in one call:
// the permit, its media, the stored plates, and the reservation state.
type BaseData struct {
	Permit  domain.Permit
	Media   domain.PermitMedia
	Plates  []domain.LicensePlate
	Active  []domain.Reservation
	History []HistoryEntry
}

type AccountService struct {
	Store store.Store
}

// BaseData assembles the account's full view. History plates are masked
// unless the plate is still stored on the media or currently parked; the
// portal does not let old registrations leak plates the holder has since
// removed.
func (s *AccountService) BaseData(ctx context.Context, accountID string) (BaseData, error) {
	now := time.Now()

	permit, err := s.Store.Permits().GetPermitByAccount(ctx, accountID)
	if err != nil {
		return BaseData{}, err
	}
	media, err := s.Store.Permits().GetMediaByPermit(ctx, permit.ID)
	if err != nil {
		return BaseData{}, err
	}
	plates, err := s.Store.LicensePlates().ListLicensePlatesByMedia(ctx, media.ID)
	if err != nil {
		return BaseData{}, err
	}
	active, err := s.Store.Reservations().ListActiveByMedia(ctx, media.ID, now)
	if err != nil {
		return BaseData{}, err
	}
	finished, err := s.Store.Reservations().ListFinishedByMedia(ctx, media.ID, now, historyLimit)
	if err != nil {
		return BaseData{}, err
	}

	visible := make(map[string]bool, len(plates)+len(active))
	for _, p := range plates {
		visible[p.Value] = true
	}
	for _, r := range active {
		visible[r.PlateValue] = true
	}

	history := make([]HistoryEntry, 0, len(finished))
	for _, r := range finished {
		display := domain.MaskedPlate
		if visible[r.PlateValue] {
			display = r.PlateValue
		}
		history = append(history, HistoryEntry{Reservation: r, DisplayValue: display})
	}

	return BaseData{
		Permit:  permit,
		Media:   media,
		Plates:  plates,
		Active:  active,
		History: history,
	}, nil
}

// mediaFor resolves the account's permit media and checks the caller-supplied
// type and code against it. Every authenticated operation goes through this
// so a session can never act on someone else's media.
func mediaFor(ctx context.Context, st store.Store, accountID string, typeID int, code string) (domain.Permit, domain.PermitMedia, error) {
	permit, err := st.Permits().GetPermitByAccount(ctx, accountID)
	if err != nil {
		return domain.Permit{}, domain.PermitMedia{}, err
	}
	media, err := st.Permits().GetMediaByPermit(ctx, permit.ID)
	if err != nil {
		return domain.Permit{}, domain.PermitMedia{}, err
	}
	if media.TypeID != typeID || media.Code != code {
		return domain.Permit{}, domain.PermitMedia{}, ErrUnknownMedia
	}
	return permit, media, nil
}

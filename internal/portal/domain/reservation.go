package domain

import (
	"math"
	"time"
)

// MaskedPlate replaces the plate of history entries whose plate the account
// no longer has any live relation to.
const MaskedPlate = "********"

type Reservation struct {
	ID         string
	MediaID    string
	PlateValue string
	PlateName  string
	ValidFrom  time.Time
	ValidUntil *time.Time // nil while open-ended
	Units      int
	Ended      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the reservation is consuming parking time at now.
func (r Reservation) Active(now time.Time) bool {
	if r.Ended {
		return false
	}
	if r.ValidUntil == nil {
		return true
	}
	return r.ValidUntil.After(now)
}

// UnitsBetween converts a parking interval to billable units. A unit is a
// started hour; even a minute of parking costs one unit.
func UnitsBetween(from, until time.Time) int {
	if !until.After(from) {
		return 1
	}
	units := int(math.Ceil(until.Sub(from).Hours()))
	if units < 1 {
		return 1
	}
	return units
}

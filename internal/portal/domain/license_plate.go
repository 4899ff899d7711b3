package domain

import "time"

type LicensePlate struct {
	ID        string
	MediaID   string
	Value     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import "time"

type Account struct {
	ID           string
	Identifier   string // the number the resident logs in with
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

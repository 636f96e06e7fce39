package models

import (
	"time"
)

// Account holds a player's credit balance
type Account struct {
	// ID is the identity supplied by the authenticated caller
	ID string `json:"id"`

	// Balance is the number of credits available to wager. Never negative.
	Balance int64 `json:"balance"`

	// CreatedAt is when the account was opened
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the balance last changed
	UpdatedAt time.Time `json:"updated_at"`
}

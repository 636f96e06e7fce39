package ledger

import (
	"time"

	"github.com/KirkDiggler/fairdice/internal/models"
)

// GetAccountInput contains parameters for retrieving an account
type GetAccountInput struct {
	AccountID string
}

// CreateAccountInput contains parameters for opening an account
type CreateAccountInput struct {
	AccountID string

	// Balance is the starting balance
	Balance int64

	Now time.Time
}

// CreateAccountOutput contains the result of opening an account
type CreateAccountOutput struct {
	Account *models.Account

	// Created is false when the account already existed
	Created bool
}

// AdjustBalanceInput contains parameters for changing a balance
type AdjustBalanceInput struct {
	AccountID string

	// Delta is added to the balance. The adjustment fails if the result is negative.
	Delta int64

	// Stake is the amount the current balance must cover before the delta
	// applies, checked in the same transaction. A winning wager has a
	// positive delta but still has to be affordable.
	Stake int64

	// Entry is the roll that caused the adjustment. Optional. Its ID makes the
	// adjustment idempotent: an entry can only be journaled once.
	Entry *models.RollRecord

	Now time.Time
}

// AdjustBalanceOutput contains the result of changing a balance
type AdjustBalanceOutput struct {
	Account *models.Account

	// Entry is the journaled roll with BalanceAfter filled in, nil if no entry was given
	Entry *models.RollRecord
}

// GetRollInput contains parameters for retrieving a journal entry
type GetRollInput struct {
	RollID string
}

// ListRollsInput contains parameters for listing an account's journal
type ListRollsInput struct {
	AccountID string

	// Limit caps the number of entries. Zero uses the repository default.
	Limit int
}

// ListRollsOutput contains the result of listing an account's journal
type ListRollsOutput struct {
	Records []*models.RollRecord
}

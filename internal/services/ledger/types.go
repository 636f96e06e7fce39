package ledger

import (
	"github.com/KirkDiggler/fairdice/internal/common/clock"
	"github.com/KirkDiggler/fairdice/internal/models"
	ledgerRepo "github.com/KirkDiggler/fairdice/internal/repositories/ledger"
	"go.uber.org/zap"
)

// Config holds configuration for the ledger service
type Config struct {
	// DefaultBalance is the starting balance of a newly opened account
	DefaultBalance int64

	// Repository dependencies
	Repository ledgerRepo.Repository

	// Service dependencies
	Clock  clock.Clock
	Logger *zap.Logger
}

// OpenAccountInput contains parameters for opening an account
type OpenAccountInput struct {
	AccountID string
}

// OpenAccountOutput contains the opened (or existing) account
type OpenAccountOutput struct {
	Account *models.Account

	// Created is false when the account already existed
	Created bool
}

// GetBalanceInput contains parameters for reading a balance
type GetBalanceInput struct {
	AccountID string
}

// GetBalanceOutput contains an account's balance
type GetBalanceOutput struct {
	AccountID string
	Balance   int64
}

// SettleInput contains parameters for settling a wager
type SettleInput struct {
	AccountID string

	// Wager is the amount staked; it must be positive and covered by the balance
	Wager int64

	// PayoutMultiplier is what a win returns per credit wagered, stake included
	PayoutMultiplier int64

	Won bool

	// Entry is journaled atomically with the balance change when set
	Entry *models.RollRecord
}

// SettleOutput contains the result of settling a wager
type SettleOutput struct {
	NewBalance int64

	// Payout is the amount credited back: zero on a loss
	Payout int64

	// Delta is the net change applied to the balance
	Delta int64

	// Entry is the journaled roll with BalanceAfter set, nil if none was given
	Entry *models.RollRecord
}

// GetRollInput contains parameters for retrieving a roll
type GetRollInput struct {
	RollID string
}

// ListRollsInput contains parameters for listing an account's rolls
type ListRollsInput struct {
	AccountID string
	Limit     int
}

// ListRollsOutput contains an account's rolls
type ListRollsOutput struct {
	Records []*models.RollRecord
}

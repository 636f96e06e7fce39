package ledger

import (
	"context"

	"github.com/KirkDiggler/fairdice/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/fairdice/internal/services/ledger Service

// Service defines the interface for balance and journal operations
type Service interface {
	// OpenAccount creates an account with the default balance if it does not exist
	OpenAccount(ctx context.Context, input *OpenAccountInput) (*OpenAccountOutput, error)

	// GetBalance returns an account's current balance
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)

	// Settle applies the balance transition for a wager and its payout
	Settle(ctx context.Context, input *SettleInput) (*SettleOutput, error)

	// GetRoll retrieves a journaled roll
	GetRoll(ctx context.Context, input *GetRollInput) (*models.RollRecord, error)

	// ListRolls retrieves an account's recent rolls, newest first
	ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error)
}

package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/fairdice/internal/repositories/ledger Repository

import (
	"context"

	"github.com/KirkDiggler/fairdice/internal/models"
)

// Repository defines the interface for account balances and the roll journal
type Repository interface {
	// GetAccount retrieves an account by ID
	GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error)

	// CreateAccount opens an account with a starting balance, or returns the existing one
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error)

	// AdjustBalance atomically applies a delta to an account balance and,
	// when an entry is given, appends it to the roll journal in the same transaction
	AdjustBalance(ctx context.Context, input *AdjustBalanceInput) (*AdjustBalanceOutput, error)

	// GetRoll retrieves a journal entry by ID
	GetRoll(ctx context.Context, input *GetRollInput) (*models.RollRecord, error)

	// ListRolls retrieves an account's most recent journal entries, newest first
	ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error)
}

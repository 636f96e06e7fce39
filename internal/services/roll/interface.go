package roll

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/fairdice/internal/services/roll Service

// Service defines the public operations of the dice game
type Service interface {
	// IssueCommitment publishes the hash of a fresh server seed for the account
	IssueCommitment(ctx context.Context, input *IssueCommitmentInput) (*IssueCommitmentOutput, error)

	// GetCommitment returns the hash of the account's outstanding commitment
	GetCommitment(ctx context.Context, input *GetCommitmentInput) (*GetCommitmentOutput, error)

	// PlaceRoll settles a wager against the account's pending commitment and reveals its seed
	PlaceRoll(ctx context.Context, input *PlaceRollInput) (*PlaceRollOutput, error)

	// GetBalance returns the account's balance
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)

	// VerifyRoll recomputes a persisted roll from its seeds
	VerifyRoll(ctx context.Context, input *VerifyRollInput) (*VerifyRollOutput, error)

	// ListRolls returns the account's recent rolls, newest first
	ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error)
}

package commitment

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/fairdice/internal/services/commitment Service

// Service defines the interface for issuing and consuming server seed commitments
type Service interface {
	// Issue generates a server seed for an account and returns only its hash
	Issue(ctx context.Context, input *IssueInput) (*IssueOutput, error)

	// GetPending returns the hash of the account's outstanding commitment
	GetPending(ctx context.Context, input *GetPendingInput) (*GetPendingOutput, error)

	// Consume takes the account's pending commitment for a roll. Succeeds at most once per Issue.
	Consume(ctx context.Context, input *ConsumeInput) (*ConsumeOutput, error)

	// Restore returns a consumed commitment whose seed was never revealed
	Restore(ctx context.Context, input *RestoreInput) error
}

package commitment

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/fairdice/internal/repositories/commitment Repository

import (
	"context"

	"github.com/KirkDiggler/fairdice/internal/models"
)

// Repository defines the interface for commitment persistence. There is at
// most one stored commitment per account and every stored commitment is pending.
type Repository interface {
	// SaveCommitment stores a commitment unless one is already pending for the account
	SaveCommitment(ctx context.Context, input *SaveCommitmentInput) error

	// GetCommitment retrieves the pending commitment for an account without consuming it
	GetCommitment(ctx context.Context, input *GetCommitmentInput) (*models.Commitment, error)

	// ConsumeCommitment atomically removes and returns the pending commitment for an account
	ConsumeCommitment(ctx context.Context, input *ConsumeCommitmentInput) (*models.Commitment, error)
}

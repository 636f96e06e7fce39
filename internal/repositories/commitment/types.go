package commitment

import (
	"time"

	"github.com/KirkDiggler/fairdice/internal/models"
)

// SaveCommitmentInput contains parameters for storing a commitment
type SaveCommitmentInput struct {
	Commitment *models.Commitment

	// TTL expires the commitment after the given duration. Zero keeps it until consumed.
	TTL time.Duration
}

// GetCommitmentInput contains parameters for reading a pending commitment
type GetCommitmentInput struct {
	AccountID string
}

// ConsumeCommitmentInput contains parameters for consuming a pending commitment
type ConsumeCommitmentInput struct {
	AccountID string
}

package commitment

import (
	"time"

	"github.com/KirkDiggler/fairdice/internal/common/clock"
	"github.com/KirkDiggler/fairdice/internal/dice"
	"github.com/KirkDiggler/fairdice/internal/models"
	commitmentRepo "github.com/KirkDiggler/fairdice/internal/repositories/commitment"
	"go.uber.org/zap"
)

// Config holds configuration for the commitment service
type Config struct {
	// TTL expires unused commitments. Zero keeps them until consumed.
	TTL time.Duration

	// Repository dependencies
	Repository commitmentRepo.Repository

	// Service dependencies
	SeedGenerator dice.SeedGenerator
	Clock         clock.Clock
	Logger        *zap.Logger
}

// IssueInput contains parameters for issuing a commitment
type IssueInput struct {
	AccountID string
}

// IssueOutput contains the public half of a new commitment
type IssueOutput struct {
	// ServerSeedHash is the hash the roll will be verified against
	ServerSeedHash string

	IssuedAt time.Time

	// ExpiresAt is zero when the commitment does not expire
	ExpiresAt time.Time
}

// GetPendingInput contains parameters for looking up an outstanding commitment
type GetPendingInput struct {
	AccountID string
}

// GetPendingOutput contains the public half of the outstanding commitment
type GetPendingOutput struct {
	ServerSeedHash string
	IssuedAt       time.Time
	ExpiresAt      time.Time
}

// ConsumeInput contains parameters for consuming a commitment
type ConsumeInput struct {
	AccountID string
}

// ConsumeOutput contains the consumed commitment, seed included
type ConsumeOutput struct {
	Commitment *models.Commitment
}

// RestoreInput contains parameters for restoring a commitment
type RestoreInput struct {
	Commitment *models.Commitment
}

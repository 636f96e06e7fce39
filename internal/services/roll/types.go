package roll

import (
	"time"

	"github.com/KirkDiggler/fairdice/internal/common/clock"
	"github.com/KirkDiggler/fairdice/internal/common/uuid"
	"github.com/KirkDiggler/fairdice/internal/metrics"
	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/KirkDiggler/fairdice/internal/services/commitment"
	"github.com/KirkDiggler/fairdice/internal/services/ledger"
	"go.uber.org/zap"
)

const (
	DefaultPayoutMultiplier = 2
	DefaultWinThreshold     = 4
)

// Config holds configuration for the roll service
type Config struct {
	// PayoutMultiplier is what a win pays per credit wagered, stake included
	PayoutMultiplier int64

	// WinThreshold is the lowest outcome that wins
	WinThreshold int

	// AutoCreateAccounts opens unknown accounts with the default balance
	AutoCreateAccounts bool

	// Service dependencies
	CommitmentService commitment.Service
	LedgerService     ledger.Service
	Clock             clock.Clock
	UUIDGenerator     uuid.UUID
	Logger            *zap.Logger
	Metrics           *metrics.Metrics
}

// IssueCommitmentInput contains parameters for issuing a commitment
type IssueCommitmentInput struct {
	AccountID string
}

// IssueCommitmentOutput contains the published hash
type IssueCommitmentOutput struct {
	ServerSeedHash string
	ExpiresAt      time.Time
}

// GetCommitmentInput contains parameters for looking up the outstanding commitment
type GetCommitmentInput struct {
	AccountID string
}

// GetCommitmentOutput contains the outstanding commitment's hash
type GetCommitmentOutput struct {
	ServerSeedHash string
	IssuedAt       time.Time
	ExpiresAt      time.Time
}

// PlaceRollInput contains parameters for placing a roll
type PlaceRollInput struct {
	AccountID  string
	Wager      int64
	ClientSeed string
}

// PlaceRollOutput contains the settled roll
type PlaceRollOutput struct {
	// Record is the journaled roll, server seed revealed
	Record     *models.RollRecord
	NewBalance int64
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

// VerifyRollInput contains parameters for verifying a roll
type VerifyRollInput struct {
	RollID string
}

// VerifyRollOutput contains the verification result
type VerifyRollOutput struct {
	Record *models.RollRecord

	// RecomputedOutcome is derived from the record's seeds
	RecomputedOutcome int

	// Match reports whether RecomputedOutcome equals the recorded outcome
	Match bool

	// HashMatch reports whether the revealed seed hashes to the published commitment
	HashMatch bool
}

// ListRollsInput contains parameters for listing rolls
type ListRollsInput struct {
	AccountID string
	Limit     int
}

// ListRollsOutput contains an account's rolls
type ListRollsOutput struct {
	Records []*models.RollRecord
}

package commitment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/fairdice/internal/common/clock"
	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/dice"
	"github.com/KirkDiggler/fairdice/internal/models"
	commitmentRepo "github.com/KirkDiggler/fairdice/internal/repositories/commitment"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	ttl        time.Duration
	repository commitmentRepo.Repository
	seeds      dice.SeedGenerator
	clock      clock.Clock
	logger     *zap.Logger
}

// New creates a new commitment service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	if cfg.SeedGenerator == nil {
		return nil, ErrNilSeedGenerator
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		ttl:        cfg.TTL,
		repository: cfg.Repository,
		seeds:      cfg.SeedGenerator,
		clock:      cfg.Clock,
		logger:     logger.Named("commitment"),
	}, nil
}

// Issue generates a server seed for an account and returns only its hash.
// An account holds at most one pending commitment; issuing another while one
// is outstanding is rejected rather than replacing it.
func (s *service) Issue(ctx context.Context, input *IssueInput) (*IssueOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	seed, err := s.seeds.NewSeed()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c := &models.Commitment{
		AccountID:      input.AccountID,
		ServerSeed:     seed,
		ServerSeedHash: dice.HashSeed(seed),
		State:          models.CommitmentStatePending,
		IssuedAt:       now,
	}
	if s.ttl > 0 {
		c.ExpiresAt = now.Add(s.ttl)
	}

	err = s.repository.SaveCommitment(ctx, &commitmentRepo.SaveCommitmentInput{
		Commitment: c,
		TTL:        s.ttl,
	})
	if err != nil {
		if errors.Is(err, commitmentRepo.ErrCommitmentExists) {
			return nil, fault.ErrCommitmentAlreadyOutstanding.With("account_id", input.AccountID)
		}
		return nil, err
	}

	s.logger.Debug("issued commitment",
		zap.String("account_id", input.AccountID),
		zap.String("server_seed_hash", c.ServerSeedHash),
	)

	return &IssueOutput{
		ServerSeedHash: c.ServerSeedHash,
		IssuedAt:       c.IssuedAt,
		ExpiresAt:      c.ExpiresAt,
	}, nil
}

// GetPending returns the public half of the account's outstanding commitment
func (s *service) GetPending(ctx context.Context, input *GetPendingInput) (*GetPendingOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	c, err := s.repository.GetCommitment(ctx, &commitmentRepo.GetCommitmentInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		if errors.Is(err, commitmentRepo.ErrCommitmentNotFound) {
			return nil, fault.ErrNoCommitmentAvailable.With("account_id", input.AccountID)
		}
		return nil, err
	}

	return &GetPendingOutput{
		ServerSeedHash: c.ServerSeedHash,
		IssuedAt:       c.IssuedAt,
		ExpiresAt:      c.ExpiresAt,
	}, nil
}

// Consume takes the account's pending commitment. The removal is atomic in
// the store, so of several concurrent consumers only one receives the seed.
func (s *service) Consume(ctx context.Context, input *ConsumeInput) (*ConsumeOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	c, err := s.repository.ConsumeCommitment(ctx, &commitmentRepo.ConsumeCommitmentInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		if errors.Is(err, commitmentRepo.ErrCommitmentNotFound) {
			return nil, fault.ErrNoCommitmentAvailable.With("account_id", input.AccountID)
		}
		return nil, err
	}

	// The stored seed must still hash to what was published
	if dice.HashSeed(c.ServerSeed) != c.ServerSeedHash {
		s.logger.Error("stored server seed does not match its published hash",
			zap.String("account_id", input.AccountID),
			zap.String("server_seed_hash", c.ServerSeedHash),
		)
		return nil, fault.ErrCommitmentMismatch.With("account_id", input.AccountID)
	}

	c.State = models.CommitmentStateConsumed

	return &ConsumeOutput{
		Commitment: c,
	}, nil
}

// Restore puts back a commitment that was consumed by a roll that failed
// before its seed was revealed. Expired commitments are dropped.
func (s *service) Restore(ctx context.Context, input *RestoreInput) error {
	if input == nil || input.Commitment == nil {
		return ErrNilCommitment
	}

	c := *input.Commitment
	c.State = models.CommitmentStatePending

	var ttl time.Duration
	if !c.ExpiresAt.IsZero() {
		ttl = c.ExpiresAt.Sub(s.clock.Now())
		if ttl <= 0 {
			s.logger.Info("dropping expired commitment instead of restoring it",
				zap.String("account_id", c.AccountID),
				zap.String("server_seed_hash", c.ServerSeedHash),
			)
			return nil
		}
	}

	err := s.repository.SaveCommitment(ctx, &commitmentRepo.SaveCommitmentInput{
		Commitment: &c,
		TTL:        ttl,
	})
	if err != nil {
		if errors.Is(err, commitmentRepo.ErrCommitmentExists) {
			return fault.ErrCommitmentAlreadyOutstanding.With("account_id", c.AccountID)
		}
		return fmt.Errorf("failed to restore commitment: %w", err)
	}

	return nil
}

package roll

import (
	"context"
	"errors"

	"github.com/KirkDiggler/fairdice/internal/common/clock"
	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/common/uuid"
	"github.com/KirkDiggler/fairdice/internal/dice"
	"github.com/KirkDiggler/fairdice/internal/metrics"
	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/KirkDiggler/fairdice/internal/services/commitment"
	"github.com/KirkDiggler/fairdice/internal/services/ledger"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	payoutMultiplier   int64
	winThreshold       int
	autoCreateAccounts bool

	commitments commitment.Service
	ledger      ledger.Service
	clock       clock.Clock
	uuid        uuid.UUID
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// New creates a new roll service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.CommitmentService == nil {
		return nil, ErrNilCommitmentService
	}

	if cfg.LedgerService == nil {
		return nil, ErrNilLedgerService
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	multiplier := cfg.PayoutMultiplier
	if multiplier == 0 {
		multiplier = DefaultPayoutMultiplier
	}
	if multiplier < 1 {
		return nil, ErrInvalidMultiplier
	}

	threshold := cfg.WinThreshold
	if threshold == 0 {
		threshold = DefaultWinThreshold
	}
	if threshold < 1 || threshold > dice.Sides {
		return nil, ErrInvalidWinThreshold
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		payoutMultiplier:   multiplier,
		winThreshold:       threshold,
		autoCreateAccounts: cfg.AutoCreateAccounts,
		commitments:        cfg.CommitmentService,
		ledger:             cfg.LedgerService,
		clock:              cfg.Clock,
		uuid:               cfg.UUIDGenerator,
		logger:             logger.Named("roll"),
		metrics:            cfg.Metrics,
	}, nil
}

// IssueCommitment publishes the hash of a fresh server seed for the account
func (s *service) IssueCommitment(ctx context.Context, input *IssueCommitmentInput) (*IssueCommitmentOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	out, err := s.commitments.Issue(ctx, &commitment.IssueInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CommitmentIssued()

	return &IssueCommitmentOutput{
		ServerSeedHash: out.ServerSeedHash,
		ExpiresAt:      out.ExpiresAt,
	}, nil
}

// GetCommitment returns the hash of the account's outstanding commitment
func (s *service) GetCommitment(ctx context.Context, input *GetCommitmentInput) (*GetCommitmentOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	out, err := s.commitments.GetPending(ctx, &commitment.GetPendingInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, err
	}

	return &GetCommitmentOutput{
		ServerSeedHash: out.ServerSeedHash,
		IssuedAt:       out.IssuedAt,
		ExpiresAt:      out.ExpiresAt,
	}, nil
}

// PlaceRoll settles a wager against the account's pending commitment.
//
// Validation and the balance pre-check happen before the commitment is
// touched, so a rejected request leaves the commitment pending. Once the
// commitment is consumed the roll runs to completion regardless of the
// caller's cancellation. The balance and record are committed together; the
// commitment is put back only when the roll is known not to be journaled.
func (s *service) PlaceRoll(ctx context.Context, input *PlaceRollInput) (*PlaceRollOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	if input.Wager <= 0 {
		return nil, fault.ErrInvalidWager.With("wager", input.Wager)
	}

	if input.ClientSeed == "" {
		return nil, fault.ErrMissingClientEntropy
	}

	balance, err := s.balance(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if balance < input.Wager {
		return nil, fault.ErrInsufficientBalance.
			With("account_id", input.AccountID).
			With("wager", input.Wager).
			With("balance", balance)
	}

	consumed, err := s.commitments.Consume(ctx, &commitment.ConsumeInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		if errors.Is(err, fault.ErrCommitmentMismatch) {
			s.metrics.IntegrityFault()
		}
		return nil, err
	}

	// The commitment is gone from the store; finish without the caller's cancellation
	ctx = context.WithoutCancel(ctx)
	c := consumed.Commitment

	outcome := dice.Resolve(c.ServerSeed, input.ClientSeed)
	won := outcome >= s.winThreshold

	result := models.RollResultLose
	var payout int64
	if won {
		result = models.RollResultWin
		payout = input.Wager * s.payoutMultiplier
	}

	record := &models.RollRecord{
		ID:             s.uuid.NewUUID(),
		AccountID:      input.AccountID,
		Wager:          input.Wager,
		ClientSeed:     input.ClientSeed,
		ServerSeed:     c.ServerSeed,
		ServerSeedHash: c.ServerSeedHash,
		Outcome:        outcome,
		Result:         result,
		Payout:         payout,
		Timestamp:      s.clock.Now(),
	}

	settled, err := s.ledger.Settle(ctx, &ledger.SettleInput{
		AccountID:        input.AccountID,
		Wager:            input.Wager,
		PayoutMultiplier: s.payoutMultiplier,
		Won:              won,
		Entry:            record,
	})
	if err != nil {
		journaled, settleErr := s.resolveSettlement(ctx, c, record, err)
		if settleErr != nil {
			return nil, settleErr
		}
		settled = &ledger.SettleOutput{
			NewBalance: journaled.BalanceAfter,
			Entry:      journaled,
		}
	}

	if settled.Entry != nil {
		record = settled.Entry
	} else {
		record.BalanceAfter = settled.NewBalance
	}

	s.metrics.RollSettled(record)

	s.logger.Debug("roll settled",
		zap.String("roll_id", record.ID),
		zap.String("account_id", record.AccountID),
		zap.Int64("wager", record.Wager),
		zap.Int("outcome", record.Outcome),
		zap.String("result", string(record.Result)),
		zap.Int64("balance", settled.NewBalance),
	)

	return &PlaceRollOutput{
		Record:     record,
		NewBalance: settled.NewBalance,
	}, nil
}

// resolveSettlement decides what happens to a consumed commitment after Settle failed.
// Only a failure known to have written nothing gives the commitment back. An
// ambiguous failure (a lost EXEC reply) is resolved by looking the roll up:
// a journaled roll is returned as settled, otherwise the commitment is
// restored only when the roll is confirmed absent. A seed that may have been
// recorded is never made pending again.
func (s *service) resolveSettlement(ctx context.Context, c *models.Commitment, record *models.RollRecord, cause error) (*models.RollRecord, error) {
	if settlementRejected(cause) {
		s.restore(ctx, c, cause)
		return nil, cause
	}

	journaled, err := s.ledger.GetRoll(ctx, &ledger.GetRollInput{RollID: record.ID})
	switch {
	case err == nil:
		s.logger.Error("settlement reported an error but the roll was journaled",
			zap.String("roll_id", record.ID),
			zap.String("account_id", c.AccountID),
			zap.String("server_seed_hash", c.ServerSeedHash),
			zap.NamedError("settle_error", cause),
		)
		return journaled, nil
	case errors.Is(err, fault.ErrRecordNotFound):
		s.restore(ctx, c, cause)
		return nil, cause
	default:
		s.logger.Error("settlement outcome unknown, dropping commitment",
			zap.String("roll_id", record.ID),
			zap.String("account_id", c.AccountID),
			zap.String("server_seed_hash", c.ServerSeedHash),
			zap.NamedError("settle_error", cause),
			zap.Error(err),
		)
		return nil, cause
	}
}

// settlementRejected reports whether Settle failed before anything was written
func settlementRejected(err error) bool {
	return errors.Is(err, fault.ErrInsufficientBalance) ||
		errors.Is(err, fault.ErrAccountNotFound) ||
		errors.Is(err, fault.ErrLedgerContention) ||
		fault.KindOf(err) == fault.KindInvalidInput
}

// restore puts back a consumed commitment after its roll failed to settle
func (s *service) restore(ctx context.Context, c *models.Commitment, cause error) {
	s.logger.Warn("settlement failed, restoring commitment",
		zap.String("account_id", c.AccountID),
		zap.String("server_seed_hash", c.ServerSeedHash),
		zap.Error(cause),
	)

	if err := s.commitments.Restore(ctx, &commitment.RestoreInput{Commitment: c}); err != nil {
		s.logger.Error("failed to restore commitment",
			zap.String("account_id", c.AccountID),
			zap.String("server_seed_hash", c.ServerSeedHash),
			zap.Error(err),
		)
		return
	}

	s.metrics.CommitmentRestored()
}

// balance reads the account's balance, opening the account when allowed
func (s *service) balance(ctx context.Context, accountID string) (int64, error) {
	if s.autoCreateAccounts {
		out, err := s.ledger.OpenAccount(ctx, &ledger.OpenAccountInput{
			AccountID: accountID,
		})
		if err != nil {
			return 0, err
		}
		return out.Account.Balance, nil
	}

	out, err := s.ledger.GetBalance(ctx, &ledger.GetBalanceInput{
		AccountID: accountID,
	})
	if err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// GetBalance returns the account's balance
func (s *service) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	balance, err := s.balance(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	return &GetBalanceOutput{
		AccountID: input.AccountID,
		Balance:   balance,
	}, nil
}

// ListRolls returns the account's recent rolls, newest first
func (s *service) ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	limit := input.Limit
	if limit < 0 {
		limit = 0
	}

	out, err := s.ledger.ListRolls(ctx, &ledger.ListRollsInput{
		AccountID: input.AccountID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListRollsOutput{
		Records: out.Records,
	}, nil
}

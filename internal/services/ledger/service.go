package ledger

import (
	"context"
	"errors"
	"math"

	"github.com/KirkDiggler/fairdice/internal/common/clock"
	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/models"
	ledgerRepo "github.com/KirkDiggler/fairdice/internal/repositories/ledger"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	defaultBalance int64
	repository     ledgerRepo.Repository
	clock          clock.Clock
	logger         *zap.Logger
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.DefaultBalance < 0 {
		return nil, ErrNegativeBalance
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		defaultBalance: cfg.DefaultBalance,
		repository:     cfg.Repository,
		clock:          cfg.Clock,
		logger:         logger.Named("ledger"),
	}, nil
}

// OpenAccount creates an account with the default balance if it does not exist
func (s *service) OpenAccount(ctx context.Context, input *OpenAccountInput) (*OpenAccountOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	out, err := s.repository.CreateAccount(ctx, &ledgerRepo.CreateAccountInput{
		AccountID: input.AccountID,
		Balance:   s.defaultBalance,
		Now:       s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	if out.Created {
		s.logger.Info("opened account",
			zap.String("account_id", input.AccountID),
			zap.Int64("balance", out.Account.Balance),
		)
	}

	return &OpenAccountOutput{
		Account: out.Account,
		Created: out.Created,
	}, nil
}

// GetBalance returns an account's current balance
func (s *service) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	account, err := s.repository.GetAccount(ctx, &ledgerRepo.GetAccountInput{
		AccountID: input.AccountID,
	})
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrAccountNotFound) {
			return nil, fault.ErrAccountNotFound.With("account_id", input.AccountID)
		}
		return nil, err
	}

	return &GetBalanceOutput{
		AccountID: account.ID,
		Balance:   account.Balance,
	}, nil
}

// Settle applies delta = won ? wager*(multiplier-1) : -wager in a single
// atomic read-modify-write. The balance must cover the wager when the
// transaction reads it; otherwise nothing changes.
func (s *service) Settle(ctx context.Context, input *SettleInput) (*SettleOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	if input.Wager <= 0 {
		return nil, fault.ErrInvalidWager.With("wager", input.Wager)
	}

	if input.PayoutMultiplier < 1 {
		return nil, ErrInvalidMultiplier
	}

	if input.Wager > math.MaxInt64/input.PayoutMultiplier {
		return nil, fault.ErrInvalidWager.With("wager", input.Wager)
	}

	var payout, delta int64
	if input.Won {
		payout = input.Wager * input.PayoutMultiplier
		delta = payout - input.Wager
	} else {
		delta = -input.Wager
	}

	out, err := s.repository.AdjustBalance(ctx, &ledgerRepo.AdjustBalanceInput{
		AccountID: input.AccountID,
		Delta:     delta,
		Stake:     input.Wager,
		Entry:     input.Entry,
		Now:       s.clock.Now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, ledgerRepo.ErrAccountNotFound):
			return nil, fault.ErrAccountNotFound.With("account_id", input.AccountID)
		case errors.Is(err, ledgerRepo.ErrInsufficientBalance):
			return nil, fault.ErrInsufficientBalance.
				With("account_id", input.AccountID).
				With("wager", input.Wager)
		case errors.Is(err, ledgerRepo.ErrBalanceOverflow):
			return nil, fault.ErrInvalidWager.
				With("account_id", input.AccountID).
				With("wager", input.Wager).
				With("reason", "payout would overflow the balance")
		case errors.Is(err, ledgerRepo.ErrTooMuchContention):
			return nil, fault.Wrap(err, fault.CodeLedgerContention, "balance update kept conflicting with concurrent writes").
				With("account_id", input.AccountID)
		}
		return nil, err
	}

	s.logger.Debug("settled wager",
		zap.String("account_id", input.AccountID),
		zap.Int64("wager", input.Wager),
		zap.Bool("won", input.Won),
		zap.Int64("delta", delta),
		zap.Int64("balance", out.Account.Balance),
	)

	return &SettleOutput{
		NewBalance: out.Account.Balance,
		Payout:     payout,
		Delta:      delta,
		Entry:      out.Entry,
	}, nil
}

// GetRoll retrieves a journaled roll
func (s *service) GetRoll(ctx context.Context, input *GetRollInput) (*models.RollRecord, error) {
	if input == nil || input.RollID == "" {
		return nil, fault.ErrRecordNotFound
	}

	record, err := s.repository.GetRoll(ctx, &ledgerRepo.GetRollInput{
		RollID: input.RollID,
	})
	if err != nil {
		if errors.Is(err, ledgerRepo.ErrRollNotFound) {
			return nil, fault.ErrRecordNotFound.With("roll_id", input.RollID)
		}
		return nil, err
	}

	return record, nil
}

// ListRolls retrieves an account's recent rolls, newest first
func (s *service) ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, fault.ErrMissingAccountID
	}

	out, err := s.repository.ListRolls(ctx, &ledgerRepo.ListRollsInput{
		AccountID: input.AccountID,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListRollsOutput{
		Records: out.Records,
	}, nil
}

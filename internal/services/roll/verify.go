package roll

import (
	"context"

	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/dice"
	"github.com/KirkDiggler/fairdice/internal/services/ledger"
	"go.uber.org/zap"
)

// VerifyRoll recomputes a persisted roll from its seeds and checks the
// revealed seed against the hash published before the roll. A failed check
// returns the result together with an integrity fault.
func (s *service) VerifyRoll(ctx context.Context, input *VerifyRollInput) (*VerifyRollOutput, error) {
	if input == nil || input.RollID == "" {
		return nil, fault.ErrRecordNotFound
	}

	record, err := s.ledger.GetRoll(ctx, &ledger.GetRollInput{
		RollID: input.RollID,
	})
	if err != nil {
		return nil, err
	}

	recomputed := dice.Resolve(record.ServerSeed, record.ClientSeed)
	out := &VerifyRollOutput{
		Record:            record,
		RecomputedOutcome: recomputed,
		Match:             recomputed == record.Outcome,
		HashMatch:         dice.HashSeed(record.ServerSeed) == record.ServerSeedHash,
	}

	if out.Match && out.HashMatch {
		return out, nil
	}

	s.metrics.IntegrityFault()
	s.logger.Error("roll failed verification",
		zap.String("roll_id", record.ID),
		zap.String("account_id", record.AccountID),
		zap.Int("recorded_outcome", record.Outcome),
		zap.Int("recomputed_outcome", recomputed),
		zap.Bool("hash_match", out.HashMatch),
	)

	if !out.Match {
		return out, fault.ErrOutcomeMismatch.
			With("roll_id", record.ID).
			With("recorded", record.Outcome).
			With("recomputed", recomputed)
	}

	return out, fault.ErrCommitmentMismatch.With("roll_id", record.ID)
}

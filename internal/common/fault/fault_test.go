package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeKinds(t *testing.T) {
	cases := map[Code]Kind{
		CodeInvalidWager:                 KindInvalidInput,
		CodeMissingClientEntropy:         KindInvalidInput,
		CodeMissingAccountID:             KindInvalidInput,
		CodeNoCommitmentAvailable:        KindResourceState,
		CodeCommitmentAlreadyOutstanding: KindResourceState,
		CodeInsufficientBalance:          KindResourceState,
		CodeAccountNotFound:              KindResourceState,
		CodeRecordNotFound:               KindNotFound,
		CodeOutcomeMismatch:              KindIntegrityFault,
		CodeCommitmentMismatch:           KindIntegrityFault,
		CodeLedgerContention:             KindInternal,
	}

	for code, kind := range cases {
		assert.Equal(t, kind, code.Kind(), string(code))
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := ErrInsufficientBalance.With("balance", int64(50)).With("wager", int64(100))

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.NotErrorIs(t, err, ErrInvalidWager)

	wrapped := fmt.Errorf("roll failed: %w", err)
	assert.ErrorIs(t, wrapped, ErrInsufficientBalance)
	assert.Equal(t, CodeInsufficientBalance, CodeOf(wrapped))
	assert.Equal(t, KindResourceState, KindOf(wrapped))
}

func TestWithDoesNotMutateSentinel(t *testing.T) {
	_ = ErrRecordNotFound.With("roll_id", "abc")

	assert.Empty(t, ErrRecordNotFound.Fields)
}

func TestErrorString(t *testing.T) {
	err := ErrInsufficientBalance.With("wager", 100).With("balance", 50)

	assert.Equal(t, "INSUFFICIENT_BALANCE: insufficient balance (balance=50, wager=100)", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeLedgerContention, "gave up")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, Code(""), CodeOf(cause))
}

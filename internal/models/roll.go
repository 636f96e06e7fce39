package models

import (
	"time"
)

// RollResult is the outcome of a wager
type RollResult string

const (
	// RollResultWin indicates the roll met the win threshold
	RollResultWin RollResult = "win"

	// RollResultLose indicates the roll fell short of the win threshold
	RollResultLose RollResult = "lose"
)

// RollRecord is the immutable audit entry for a settled roll. It carries
// everything needed to recompute the roll independently.
type RollRecord struct {
	// ID is the unique identifier for the roll
	ID string `json:"id"`

	// AccountID is the account that placed the wager
	AccountID string `json:"account_id"`

	// Wager is the amount staked
	Wager int64 `json:"wager"`

	// ClientSeed is the entropy supplied by the player
	ClientSeed string `json:"client_seed"`

	// ServerSeed is the revealed secret of the consumed commitment
	ServerSeed string `json:"server_seed"`

	// ServerSeedHash is the hash published before the roll
	ServerSeedHash string `json:"server_seed_hash"`

	// Outcome is the die value, 1 through 6
	Outcome int `json:"outcome"`

	Result RollResult `json:"result"`

	// Payout is the amount credited back: zero on a loss, wager times the
	// multiplier on a win
	Payout int64 `json:"payout"`

	// BalanceAfter is the account balance once the roll settled
	BalanceAfter int64 `json:"balance_after"`

	// Timestamp is when the roll was placed
	Timestamp time.Time `json:"timestamp"`
}

// Won reports whether the roll paid out
func (r *RollRecord) Won() bool {
	return r.Result == RollResultWin
}

package models

import (
	"time"
)

// CommitmentState represents where a commitment is in its lifecycle
type CommitmentState string

const (
	// CommitmentStatePending indicates the hash has been published and the seed is unused
	CommitmentStatePending CommitmentState = "pending"

	// CommitmentStateConsumed indicates the seed was used by a roll and may be revealed
	CommitmentStateConsumed CommitmentState = "consumed"
)

// Commitment is a server seed fixed before the player supplies a client seed
type Commitment struct {
	// AccountID is the account the commitment was issued to
	AccountID string `json:"account_id"`

	// ServerSeed is the secret half of the roll. Only revealed once consumed.
	ServerSeed string `json:"server_seed"`

	// ServerSeedHash is the public hash of ServerSeed
	ServerSeedHash string `json:"server_seed_hash"`

	State CommitmentState `json:"state"`

	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is zero when the commitment never expires
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// IsPending reports whether the commitment can still be used by a roll
func (c *Commitment) IsPending() bool {
	return c != nil && c.State == CommitmentStatePending
}

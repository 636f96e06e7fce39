// Package dice turns a committed server seed and a player's client seed into
// a six-sided die roll that anyone can recompute.
package dice

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

const (
	// Sides is the number of faces on the die
	Sides = 6

	// SeedBytes is the amount of entropy in a server seed
	SeedBytes = 32
)

//go:generate mockgen -package=mocks -destination=mocks/mock_seed_generator.go github.com/KirkDiggler/fairdice/internal/dice SeedGenerator

// SeedGenerator produces server seeds for new commitments
type SeedGenerator interface {
	NewSeed() (string, error)
}

// CryptoSeedGenerator draws server seeds from crypto/rand
type CryptoSeedGenerator struct{}

// NewSeedGenerator creates the default seed generator
func NewSeedGenerator() *CryptoSeedGenerator {
	return &CryptoSeedGenerator{}
}

// NewSeed returns SeedBytes random bytes, hex encoded
func (g *CryptoSeedGenerator) NewSeed() (string, error) {
	b := make([]byte, SeedBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read server seed: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashSeed returns the public commitment for a server seed: the hex SHA-256
// of the seed string.
func HashSeed(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// Resolve computes the roll for a server seed and client seed. The seeds are
// concatenated in that order, hashed with SHA-256, and the first four bytes
// of the digest are read as a big-endian uint32 and reduced into [1, Sides].
func Resolve(serverSeed, clientSeed string) int {
	sum := sha256.Sum256([]byte(serverSeed + clientSeed))
	n := binary.BigEndian.Uint32(sum[:4])
	return int(n%Sides) + 1
}

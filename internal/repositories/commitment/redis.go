package commitment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	commitmentKeyPrefix = "commitment:"
)

var (
	// ErrCommitmentNotFound is returned when no commitment is pending for the account
	ErrCommitmentNotFound = errors.New("commitment not found")

	// ErrCommitmentExists is returned when saving over a pending commitment
	ErrCommitmentExists = errors.New("commitment already pending")
)

// Config holds configuration for the Redis commitment repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed commitment repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func commitmentKey(accountID string) string {
	return fmt.Sprintf("%s%s", commitmentKeyPrefix, accountID)
}

// SaveCommitment stores the commitment with SET NX so a pending commitment is never replaced
func (r *redisRepository) SaveCommitment(ctx context.Context, input *SaveCommitmentInput) error {
	if input == nil || input.Commitment == nil {
		return errors.New("input and commitment cannot be nil")
	}

	c := input.Commitment
	if c.AccountID == "" {
		return errors.New("commitment account ID cannot be empty")
	}

	stored := *c
	stored.State = models.CommitmentStatePending

	if input.TTL < 0 {
		return fmt.Errorf("commitment for %s already expired", c.AccountID)
	}

	commitmentJSON, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal commitment: %w", err)
	}

	ok, err := r.client.SetNX(ctx, commitmentKey(c.AccountID), commitmentJSON, input.TTL).Result()
	if err != nil {
		return fmt.Errorf("failed to save commitment: %w", err)
	}
	if !ok {
		return ErrCommitmentExists
	}

	return nil
}

// GetCommitment retrieves the pending commitment for an account
func (r *redisRepository) GetCommitment(ctx context.Context, input *GetCommitmentInput) (*models.Commitment, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	commitmentJSON, err := r.client.Get(ctx, commitmentKey(input.AccountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCommitmentNotFound
		}
		return nil, fmt.Errorf("failed to get commitment: %w", err)
	}

	return decodeCommitment(commitmentJSON)
}

// ConsumeCommitment removes and returns the pending commitment with GETDEL,
// so concurrent consumers of the same commitment see exactly one success.
func (r *redisRepository) ConsumeCommitment(ctx context.Context, input *ConsumeCommitmentInput) (*models.Commitment, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	commitmentJSON, err := r.client.GetDel(ctx, commitmentKey(input.AccountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCommitmentNotFound
		}
		return nil, fmt.Errorf("failed to consume commitment: %w", err)
	}

	c, err := decodeCommitment(commitmentJSON)
	if err != nil {
		return nil, err
	}
	c.State = models.CommitmentStateConsumed

	return c, nil
}

func decodeCommitment(commitmentJSON string) (*models.Commitment, error) {
	var c models.Commitment
	if err := json.Unmarshal([]byte(commitmentJSON), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal commitment: %w", err)
	}
	return &c, nil
}

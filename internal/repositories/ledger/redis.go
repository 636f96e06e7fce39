package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	accountKeyPrefix      = "account:"
	rollKeyPrefix         = "roll:"
	accountRollsKeyPrefix = "account_rolls:"

	defaultMaxRetries = 10
	defaultListLimit  = 50
)

var (
	// ErrAccountNotFound is returned when an account is not found
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is returned when an adjustment would make the balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRollNotFound is returned when a journal entry is not found
	ErrRollNotFound = errors.New("roll not found")

	// ErrRollExists is returned when an entry with the same ID was already journaled
	ErrRollExists = errors.New("roll already recorded")

	// ErrBalanceOverflow is returned when a credit would exceed the largest representable balance
	ErrBalanceOverflow = errors.New("balance would overflow")

	// ErrTooMuchContention is returned when concurrent writers kept invalidating an adjustment
	ErrTooMuchContention = errors.New("balance adjustment retries exhausted")
)

// Config holds configuration for the Redis ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxRetries bounds optimistic transaction retries on a contended account
	MaxRetries int
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client     *redis.Client
	maxRetries int
}

// NewRedis creates a new Redis-backed ledger repository
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

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &redisRepository{
		client:     cfg.RedisClient,
		maxRetries: maxRetries,
	}, nil
}

func accountKey(accountID string) string {
	return fmt.Sprintf("%s%s", accountKeyPrefix, accountID)
}

func rollKey(rollID string) string {
	return fmt.Sprintf("%s%s", rollKeyPrefix, rollID)
}

func accountRollsKey(accountID string) string {
	return fmt.Sprintf("%s%s", accountRollsKeyPrefix, accountID)
}

// GetAccount retrieves an account by ID from Redis
func (r *redisRepository) GetAccount(ctx context.Context, input *GetAccountInput) (*models.Account, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	accountJSON, err := r.client.Get(ctx, accountKey(input.AccountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return decodeAccount(accountJSON)
}

// CreateAccount opens an account with SET NX so a concurrent open never resets a balance
func (r *redisRepository) CreateAccount(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	if input.Balance < 0 {
		return nil, errors.New("starting balance cannot be negative")
	}

	account := &models.Account{
		ID:        input.AccountID,
		Balance:   input.Balance,
		CreatedAt: input.Now,
		UpdatedAt: input.Now,
	}

	accountJSON, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	created, err := r.client.SetNX(ctx, accountKey(input.AccountID), accountJSON, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if !created {
		existing, err := r.GetAccount(ctx, &GetAccountInput{AccountID: input.AccountID})
		if err != nil {
			return nil, err
		}
		return &CreateAccountOutput{Account: existing}, nil
	}

	return &CreateAccountOutput{
		Account: account,
		Created: true,
	}, nil
}

// AdjustBalance applies a delta inside a WATCH/MULTI transaction. The account
// key (and the entry key, when journaling) is watched, so a concurrent write
// aborts the transaction and the read-modify-write is retried from a fresh read.
func (r *redisRepository) AdjustBalance(ctx context.Context, input *AdjustBalanceInput) (*AdjustBalanceOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	keys := []string{accountKey(input.AccountID)}
	if input.Entry != nil {
		if input.Entry.ID == "" {
			return nil, errors.New("roll ID cannot be empty")
		}
		if input.Entry.AccountID != input.AccountID {
			return nil, fmt.Errorf("roll %s belongs to account %s, not %s", input.Entry.ID, input.Entry.AccountID, input.AccountID)
		}
		keys = append(keys, rollKey(input.Entry.ID))
	}

	var output *AdjustBalanceOutput

	txf := func(tx *redis.Tx) error {
		accountJSON, err := tx.Get(ctx, keys[0]).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to get account: %w", err)
		}

		account, err := decodeAccount(accountJSON)
		if err != nil {
			return err
		}

		if input.Entry != nil {
			exists, err := tx.Exists(ctx, keys[1]).Result()
			if err != nil {
				return fmt.Errorf("failed to check roll: %w", err)
			}
			if exists > 0 {
				return ErrRollExists
			}
		}

		if input.Delta > 0 && account.Balance > math.MaxInt64-input.Delta {
			return ErrBalanceOverflow
		}

		newBalance := account.Balance + input.Delta
		if account.Balance < input.Stake || newBalance < 0 {
			return ErrInsufficientBalance
		}

		account.Balance = newBalance
		account.UpdatedAt = input.Now

		updatedJSON, err := json.Marshal(account)
		if err != nil {
			return fmt.Errorf("failed to marshal account: %w", err)
		}

		var entry *models.RollRecord
		var entryJSON []byte
		if input.Entry != nil {
			e := *input.Entry
			e.BalanceAfter = newBalance
			entry = &e

			entryJSON, err = json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("failed to marshal roll: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keys[0], updatedJSON, 0)

			if entry != nil {
				pipe.Set(ctx, keys[1], entryJSON, 0)
				pipe.ZAdd(ctx, accountRollsKey(input.AccountID), redis.Z{
					Score:  float64(entry.Timestamp.UnixMilli()),
					Member: entry.ID,
				})
			}
			return nil
		})
		if err != nil {
			return err
		}

		output = &AdjustBalanceOutput{
			Account: account,
			Entry:   entry,
		}
		return nil
	}

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, keys...)
		if err == nil {
			return output, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer touched the account; re-read and try again
			continue
		}
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrRollExists) || errors.Is(err, ErrBalanceOverflow) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	return nil, ErrTooMuchContention
}

// GetRoll retrieves a journal entry by ID from Redis
func (r *redisRepository) GetRoll(ctx context.Context, input *GetRollInput) (*models.RollRecord, error) {
	if input == nil || input.RollID == "" {
		return nil, errors.New("input and roll ID cannot be empty")
	}

	rollJSON, err := r.client.Get(ctx, rollKey(input.RollID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRollNotFound
		}
		return nil, fmt.Errorf("failed to get roll: %w", err)
	}

	return decodeRoll(rollJSON)
}

// ListRolls retrieves an account's most recent journal entries from Redis
func (r *redisRepository) ListRolls(ctx context.Context, input *ListRollsInput) (*ListRollsOutput, error) {
	if input == nil || input.AccountID == "" {
		return nil, errors.New("input and account ID cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rollIDs, err := r.client.ZRevRange(ctx, accountRollsKey(input.AccountID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get roll IDs for account: %w", err)
	}

	if len(rollIDs) == 0 {
		return &ListRollsOutput{
			Records: []*models.RollRecord{},
		}, nil
	}

	// Fetch all records in one round trip, keeping the index order
	pipe := r.client.Pipeline()
	rollCommands := make([]*redis.StringCmd, len(rollIDs))
	for i, rollID := range rollIDs {
		rollCommands[i] = pipe.Get(ctx, rollKey(rollID))
	}

	// redis.Nil for individual keys is handled below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get rolls: %w", err)
	}

	records := make([]*models.RollRecord, 0, len(rollIDs))
	for i, cmd := range rollCommands {
		rollJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get roll %s: %w", rollIDs[i], err)
		}

		record, err := decodeRoll(rollJSON)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return &ListRollsOutput{
		Records: records,
	}, nil
}

func decodeAccount(accountJSON string) (*models.Account, error) {
	var account models.Account
	if err := json.Unmarshal([]byte(accountJSON), &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &account, nil
}

func decodeRoll(rollJSON string) (*models.RollRecord, error) {
	var record models.RollRecord
	if err := json.Unmarshal([]byte(rollJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roll: %w", err)
	}
	return &record, nil
}

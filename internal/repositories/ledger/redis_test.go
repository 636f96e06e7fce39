package ledger

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		MaxRetries:  100,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) openAccount(accountID string, balance int64) {
	out, err := s.repo.CreateAccount(s.ctx, &CreateAccountInput{
		AccountID: accountID,
		Balance:   balance,
		Now:       s.testNow,
	})
	s.Require().NoError(err)
	s.Require().True(out.Created)
}

func (s *RedisRepositoryTestSuite) newEntry(id, accountID string, offset time.Duration) *models.RollRecord {
	return &models.RollRecord{
		ID:             id,
		AccountID:      accountID,
		Wager:          100,
		ClientSeed:     "client",
		ServerSeed:     "server",
		ServerSeedHash: "hash",
		Outcome:        5,
		Result:         models.RollResultWin,
		Payout:         200,
		Timestamp:      s.testNow.Add(offset),
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetAccount() {
	s.openAccount("player-1", 1000)

	account, err := s.repo.GetAccount(s.ctx, &GetAccountInput{AccountID: "player-1"})
	s.Require().NoError(err)
	s.Equal("player-1", account.ID)
	s.Equal(int64(1000), account.Balance)
	s.Equal(s.testNow.Unix(), account.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestCreateAccountKeepsExistingBalance() {
	s.openAccount("player-1", 1000)

	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: -250, Now: s.testNow})
	s.Require().NoError(err)

	out, err := s.repo.CreateAccount(s.ctx, &CreateAccountInput{AccountID: "player-1", Balance: 1000, Now: s.testNow})
	s.Require().NoError(err)
	s.False(out.Created)
	s.Equal(int64(750), out.Account.Balance)
}

func (s *RedisRepositoryTestSuite) TestGetNonExistentAccount() {
	_, err := s.repo.GetAccount(s.ctx, &GetAccountInput{AccountID: "nobody"})
	s.Require().Error(err)
	s.Equal(ErrAccountNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalance() {
	s.openAccount("player-1", 1000)

	later := s.testNow.Add(time.Minute)
	out, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: 100, Now: later})
	s.Require().NoError(err)
	s.Equal(int64(1100), out.Account.Balance)
	s.Equal(later.Unix(), out.Account.UpdatedAt.Unix())
	s.Nil(out.Entry)

	out, err = s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: -1100, Now: later})
	s.Require().NoError(err)
	s.Equal(int64(0), out.Account.Balance)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceRejectsOverdraft() {
	s.openAccount("player-1", 50)

	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: -51, Now: s.testNow})
	s.ErrorIs(err, ErrInsufficientBalance)

	account, err := s.repo.GetAccount(s.ctx, &GetAccountInput{AccountID: "player-1"})
	s.Require().NoError(err)
	s.Equal(int64(50), account.Balance)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceMissingAccount() {
	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "nobody", Delta: 10, Now: s.testNow})
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceJournalsEntry() {
	s.openAccount("player-1", 1000)

	out, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{
		AccountID: "player-1",
		Delta:     100,
		Entry:     s.newEntry("roll-1", "player-1", 0),
		Now:       s.testNow,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Entry)
	s.Equal(int64(1100), out.Entry.BalanceAfter)

	record, err := s.repo.GetRoll(s.ctx, &GetRollInput{RollID: "roll-1"})
	s.Require().NoError(err)
	s.Equal("player-1", record.AccountID)
	s.Equal(5, record.Outcome)
	s.Equal(models.RollResultWin, record.Result)
	s.Equal(int64(200), record.Payout)
	s.Equal(int64(1100), record.BalanceAfter)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceAppliesEntryOnce() {
	s.openAccount("player-1", 1000)

	input := &AdjustBalanceInput{
		AccountID: "player-1",
		Delta:     -100,
		Entry:     s.newEntry("roll-1", "player-1", 0),
		Now:       s.testNow,
	}

	_, err := s.repo.AdjustBalance(s.ctx, input)
	s.Require().NoError(err)

	_, err = s.repo.AdjustBalance(s.ctx, input)
	s.ErrorIs(err, ErrRollExists)

	account, err := s.repo.GetAccount(s.ctx, &GetAccountInput{AccountID: "player-1"})
	s.Require().NoError(err)
	s.Equal(int64(900), account.Balance)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceFailureWritesNoEntry() {
	s.openAccount("player-1", 10)

	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{
		AccountID: "player-1",
		Delta:     -100,
		Entry:     s.newEntry("roll-1", "player-1", 0),
		Now:       s.testNow,
	})
	s.ErrorIs(err, ErrInsufficientBalance)

	_, err = s.repo.GetRoll(s.ctx, &GetRollInput{RollID: "roll-1"})
	s.ErrorIs(err, ErrRollNotFound)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceRejectsForeignEntry() {
	s.openAccount("player-1", 1000)

	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{
		AccountID: "player-1",
		Delta:     -100,
		Entry:     s.newEntry("roll-1", "player-2", 0),
		Now:       s.testNow,
	})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestConcurrentAdjustmentsNeverOverdraw() {
	s.openAccount("player-1", 100)

	const workers = 20
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		successes    int
		insufficient int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: -10, Now: s.testNow})

			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				successes++
			case ErrInsufficientBalance:
				insufficient++
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(10, successes)
	s.Equal(10, insufficient)

	account, err := s.repo.GetAccount(s.ctx, &GetAccountInput{AccountID: "player-1"})
	s.Require().NoError(err)
	s.Equal(int64(0), account.Balance)
}

func (s *RedisRepositoryTestSuite) TestConcurrentAdjustmentsLoseNoUpdates() {
	s.openAccount("player-1", 0)

	const workers = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: 7, Now: s.testNow})
			s.NoError(err)
		}()
	}
	wg.Wait()

	account, err := s.repo.GetAccount(s.ctx, &GetAccountInput{AccountID: "player-1"})
	s.Require().NoError(err)
	s.Equal(int64(7*workers), account.Balance)
}

func (s *RedisRepositoryTestSuite) TestListRollsNewestFirst() {
	s.openAccount("player-1", 10000)
	s.openAccount("player-2", 10000)

	for i := 0; i < 5; i++ {
		_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{
			AccountID: "player-1",
			Delta:     -100,
			Entry:     s.newEntry(fmt.Sprintf("roll-%d", i), "player-1", time.Duration(i)*time.Second),
			Now:       s.testNow,
		})
		s.Require().NoError(err)
	}
	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{
		AccountID: "player-2",
		Delta:     -100,
		Entry:     s.newEntry("other-roll", "player-2", 0),
		Now:       s.testNow,
	})
	s.Require().NoError(err)

	out, err := s.repo.ListRolls(s.ctx, &ListRollsInput{AccountID: "player-1", Limit: 3})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 3)
	s.Equal("roll-4", out.Records[0].ID)
	s.Equal("roll-3", out.Records[1].ID)
	s.Equal("roll-2", out.Records[2].ID)

	all, err := s.repo.ListRolls(s.ctx, &ListRollsInput{AccountID: "player-1"})
	s.Require().NoError(err)
	s.Len(all.Records, 5)

	empty, err := s.repo.ListRolls(s.ctx, &ListRollsInput{AccountID: "player-3"})
	s.Require().NoError(err)
	s.Empty(empty.Records)
}

func (s *RedisRepositoryTestSuite) TestGetNonExistentRoll() {
	_, err := s.repo.GetRoll(s.ctx, &GetRollInput{RollID: "missing"})
	s.Equal(ErrRollNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceChecksStake() {
	s.openAccount("player-1", 50)

	// A winning delta is positive but the stake still has to be covered
	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: 100, Stake: 100, Now: s.testNow})
	s.ErrorIs(err, ErrInsufficientBalance)

	out, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: 50, Stake: 50, Now: s.testNow})
	s.Require().NoError(err)
	s.Equal(int64(100), out.Account.Balance)
}

func (s *RedisRepositoryTestSuite) TestAdjustBalanceRejectsOverflow() {
	s.openAccount("player-1", math.MaxInt64-10)

	_, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{
		AccountID: "player-1",
		Delta:     11,
		Entry:     s.newEntry("roll-1", "player-1", 0),
		Now:       s.testNow,
	})
	s.ErrorIs(err, ErrBalanceOverflow)

	account, err := s.repo.GetAccount(s.ctx, &GetAccountInput{AccountID: "player-1"})
	s.Require().NoError(err)
	s.Equal(int64(math.MaxInt64-10), account.Balance)

	_, err = s.repo.GetRoll(s.ctx, &GetRollInput{RollID: "roll-1"})
	s.ErrorIs(err, ErrRollNotFound)

	out, err := s.repo.AdjustBalance(s.ctx, &AdjustBalanceInput{AccountID: "player-1", Delta: 10, Now: s.testNow})
	s.Require().NoError(err)
	s.Equal(int64(math.MaxInt64), out.Account.Balance)
}

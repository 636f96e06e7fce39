package ledger

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/fairdice/internal/common/clock/mocks"
	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/models"
	ledgerRepo "github.com/KirkDiggler/fairdice/internal/repositories/ledger"
	repoMocks "github.com/KirkDiggler/fairdice/internal/repositories/ledger/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockRepo  *repoMocks.MockRepository
	mockClock *clockMocks.MockClock
	service   Service
	ctx       context.Context

	testTime      time.Time
	testAccountID string
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testAccountID = "test-account-id"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		DefaultBalance: 1000,
		Repository:     s.mockRepo,
		Clock:          s.mockClock,
		Logger:         zaptest.NewLogger(s.T()),
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) account(balance int64) *models.Account {
	return &models.Account{
		ID:        s.testAccountID,
		Balance:   balance,
		CreatedAt: s.testTime,
		UpdatedAt: s.testTime,
	}
}

func (s *LedgerServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{Clock: s.mockClock})
	s.Equal(ErrNilRepository, err)

	_, err = New(&Config{Repository: s.mockRepo})
	s.Equal(ErrNilClock, err)

	_, err = New(&Config{Repository: s.mockRepo, Clock: s.mockClock, DefaultBalance: -1})
	s.Equal(ErrNegativeBalance, err)
}

func (s *LedgerServiceTestSuite) TestOpenAccount() {
	s.mockRepo.EXPECT().
		CreateAccount(s.ctx, &ledgerRepo.CreateAccountInput{
			AccountID: s.testAccountID,
			Balance:   1000,
			Now:       s.testTime,
		}).
		Return(&ledgerRepo.CreateAccountOutput{Account: s.account(1000), Created: true}, nil)

	out, err := s.service.OpenAccount(s.ctx, &OpenAccountInput{AccountID: s.testAccountID})
	s.Require().NoError(err)
	s.True(out.Created)
	s.Equal(int64(1000), out.Account.Balance)
}

func (s *LedgerServiceTestSuite) TestOpenAccountRequiresID() {
	_, err := s.service.OpenAccount(s.ctx, &OpenAccountInput{})
	s.ErrorIs(err, fault.ErrMissingAccountID)
}

func (s *LedgerServiceTestSuite) TestGetBalance() {
	s.mockRepo.EXPECT().
		GetAccount(s.ctx, &ledgerRepo.GetAccountInput{AccountID: s.testAccountID}).
		Return(s.account(420), nil)

	out, err := s.service.GetBalance(s.ctx, &GetBalanceInput{AccountID: s.testAccountID})
	s.Require().NoError(err)
	s.Equal(int64(420), out.Balance)
	s.Equal(s.testAccountID, out.AccountID)
}

func (s *LedgerServiceTestSuite) TestGetBalanceUnknownAccount() {
	s.mockRepo.EXPECT().GetAccount(s.ctx, gomock.Any()).Return(nil, ledgerRepo.ErrAccountNotFound)

	_, err := s.service.GetBalance(s.ctx, &GetBalanceInput{AccountID: s.testAccountID})
	s.ErrorIs(err, fault.ErrAccountNotFound)
	s.Equal(fault.KindResourceState, fault.KindOf(err))
}

func (s *LedgerServiceTestSuite) TestSettleWin() {
	s.mockRepo.EXPECT().
		AdjustBalance(s.ctx, &ledgerRepo.AdjustBalanceInput{
			AccountID: s.testAccountID,
			Delta:     100,
			Stake:     100,
			Now:       s.testTime,
		}).
		Return(&ledgerRepo.AdjustBalanceOutput{Account: s.account(1100)}, nil)

	out, err := s.service.Settle(s.ctx, &SettleInput{
		AccountID:        s.testAccountID,
		Wager:            100,
		PayoutMultiplier: 2,
		Won:              true,
	})
	s.Require().NoError(err)
	s.Equal(int64(1100), out.NewBalance)
	s.Equal(int64(200), out.Payout)
	s.Equal(int64(100), out.Delta)
}

func (s *LedgerServiceTestSuite) TestSettleLoss() {
	s.mockRepo.EXPECT().
		AdjustBalance(s.ctx, &ledgerRepo.AdjustBalanceInput{
			AccountID: s.testAccountID,
			Delta:     -100,
			Stake:     100,
			Now:       s.testTime,
		}).
		Return(&ledgerRepo.AdjustBalanceOutput{Account: s.account(900)}, nil)

	out, err := s.service.Settle(s.ctx, &SettleInput{
		AccountID:        s.testAccountID,
		Wager:            100,
		PayoutMultiplier: 2,
	})
	s.Require().NoError(err)
	s.Equal(int64(900), out.NewBalance)
	s.Equal(int64(0), out.Payout)
	s.Equal(int64(-100), out.Delta)
}

func (s *LedgerServiceTestSuite) TestSettleCarriesEntry() {
	entry := &models.RollRecord{ID: "roll-1", AccountID: s.testAccountID}
	journaled := *entry
	journaled.BalanceAfter = 900

	s.mockRepo.EXPECT().
		AdjustBalance(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *ledgerRepo.AdjustBalanceInput) (*ledgerRepo.AdjustBalanceOutput, error) {
			s.Same(entry, input.Entry)
			return &ledgerRepo.AdjustBalanceOutput{Account: s.account(900), Entry: &journaled}, nil
		})

	out, err := s.service.Settle(s.ctx, &SettleInput{
		AccountID:        s.testAccountID,
		Wager:            100,
		PayoutMultiplier: 2,
		Entry:            entry,
	})
	s.Require().NoError(err)
	s.Equal(int64(900), out.Entry.BalanceAfter)
}

func (s *LedgerServiceTestSuite) TestSettleRejectsBadWagers() {
	for _, wager := range []int64{0, -5, math.MaxInt64} {
		_, err := s.service.Settle(s.ctx, &SettleInput{
			AccountID:        s.testAccountID,
			Wager:            wager,
			PayoutMultiplier: 2,
			Won:              true,
		})
		s.ErrorIs(err, fault.ErrInvalidWager, "wager %d", wager)
		s.Equal(fault.KindInvalidInput, fault.KindOf(err))
	}
}

func (s *LedgerServiceTestSuite) TestSettleMapsRepositoryErrors() {
	cases := []struct {
		repoErr error
		want    error
	}{
		{ledgerRepo.ErrInsufficientBalance, fault.ErrInsufficientBalance},
		{ledgerRepo.ErrAccountNotFound, fault.ErrAccountNotFound},
		{ledgerRepo.ErrTooMuchContention, fault.ErrLedgerContention},
		{ledgerRepo.ErrBalanceOverflow, fault.ErrInvalidWager},
	}

	for _, tc := range cases {
		s.mockRepo.EXPECT().AdjustBalance(s.ctx, gomock.Any()).Return(nil, tc.repoErr)

		_, err := s.service.Settle(s.ctx, &SettleInput{
			AccountID:        s.testAccountID,
			Wager:            100,
			PayoutMultiplier: 2,
		})
		s.ErrorIs(err, tc.want)
	}

	storeErr := errors.New("connection reset")
	s.mockRepo.EXPECT().AdjustBalance(s.ctx, gomock.Any()).Return(nil, storeErr)
	_, err := s.service.Settle(s.ctx, &SettleInput{AccountID: s.testAccountID, Wager: 1, PayoutMultiplier: 2})
	s.ErrorIs(err, storeErr)
}

func (s *LedgerServiceTestSuite) TestGetRoll() {
	record := &models.RollRecord{ID: "roll-1", AccountID: s.testAccountID}
	s.mockRepo.EXPECT().GetRoll(s.ctx, &ledgerRepo.GetRollInput{RollID: "roll-1"}).Return(record, nil)

	got, err := s.service.GetRoll(s.ctx, &GetRollInput{RollID: "roll-1"})
	s.Require().NoError(err)
	s.Equal(record, got)
}

func (s *LedgerServiceTestSuite) TestGetRollNotFound() {
	s.mockRepo.EXPECT().GetRoll(s.ctx, gomock.Any()).Return(nil, ledgerRepo.ErrRollNotFound)

	_, err := s.service.GetRoll(s.ctx, &GetRollInput{RollID: "missing"})
	s.ErrorIs(err, fault.ErrRecordNotFound)
	s.Equal(fault.KindNotFound, fault.KindOf(err))
}

func (s *LedgerServiceTestSuite) TestListRolls() {
	records := []*models.RollRecord{{ID: "roll-2"}, {ID: "roll-1"}}
	s.mockRepo.EXPECT().
		ListRolls(s.ctx, &ledgerRepo.ListRollsInput{AccountID: s.testAccountID, Limit: 2}).
		Return(&ledgerRepo.ListRollsOutput{Records: records}, nil)

	out, err := s.service.ListRolls(s.ctx, &ListRollsInput{AccountID: s.testAccountID, Limit: 2})
	s.Require().NoError(err)
	s.Equal(records, out.Records)
}

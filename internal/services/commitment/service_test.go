package commitment

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/fairdice/internal/common/clock/mocks"
	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/dice"
	diceMocks "github.com/KirkDiggler/fairdice/internal/dice/mocks"
	"github.com/KirkDiggler/fairdice/internal/models"
	commitmentRepo "github.com/KirkDiggler/fairdice/internal/repositories/commitment"
	repoMocks "github.com/KirkDiggler/fairdice/internal/repositories/commitment/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

type CommitmentServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockRepo  *repoMocks.MockRepository
	mockSeeds *diceMocks.MockSeedGenerator
	mockClock *clockMocks.MockClock
	service   Service
	ctx       context.Context

	testTime      time.Time
	testAccountID string
	testSeed      string
	testHash      string
	testTTL       time.Duration
}

func (s *CommitmentServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockSeeds = diceMocks.NewMockSeedGenerator(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testAccountID = "test-account-id"
	s.testSeed = "5f0c6a2d7e8b9c1f3a4b5c6d7e8f90112233445566778899aabbccddeeff0011"
	s.testHash = dice.HashSeed(s.testSeed)
	s.testTTL = 10 * time.Minute

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		TTL:           s.testTTL,
		Repository:    s.mockRepo,
		SeedGenerator: s.mockSeeds,
		Clock:         s.mockClock,
		Logger:        zaptest.NewLogger(s.T()),
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *CommitmentServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCommitmentServiceSuite(t *testing.T) {
	suite.Run(t, new(CommitmentServiceTestSuite))
}

func (s *CommitmentServiceTestSuite) pendingCommitment() *models.Commitment {
	return &models.Commitment{
		AccountID:      s.testAccountID,
		ServerSeed:     s.testSeed,
		ServerSeedHash: s.testHash,
		State:          models.CommitmentStatePending,
		IssuedAt:       s.testTime,
		ExpiresAt:      s.testTime.Add(s.testTTL),
	}
}

func (s *CommitmentServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	_, err = New(&Config{SeedGenerator: s.mockSeeds, Clock: s.mockClock})
	s.Equal(ErrNilRepository, err)

	_, err = New(&Config{Repository: s.mockRepo, Clock: s.mockClock})
	s.Equal(ErrNilSeedGenerator, err)

	_, err = New(&Config{Repository: s.mockRepo, SeedGenerator: s.mockSeeds})
	s.Equal(ErrNilClock, err)
}

func (s *CommitmentServiceTestSuite) TestIssue() {
	s.mockSeeds.EXPECT().NewSeed().Return(s.testSeed, nil)
	s.mockRepo.EXPECT().
		SaveCommitment(s.ctx, &commitmentRepo.SaveCommitmentInput{
			Commitment: s.pendingCommitment(),
			TTL:        s.testTTL,
		}).
		Return(nil)

	out, err := s.service.Issue(s.ctx, &IssueInput{AccountID: s.testAccountID})
	s.Require().NoError(err)
	s.Equal(s.testHash, out.ServerSeedHash)
	s.Equal(s.testTime, out.IssuedAt)
	s.Equal(s.testTime.Add(s.testTTL), out.ExpiresAt)
}

func (s *CommitmentServiceTestSuite) TestIssueRejectsOutstandingCommitment() {
	s.mockSeeds.EXPECT().NewSeed().Return(s.testSeed, nil)
	s.mockRepo.EXPECT().SaveCommitment(s.ctx, gomock.Any()).Return(commitmentRepo.ErrCommitmentExists)

	_, err := s.service.Issue(s.ctx, &IssueInput{AccountID: s.testAccountID})
	s.ErrorIs(err, fault.ErrCommitmentAlreadyOutstanding)
	s.Equal(fault.KindResourceState, fault.KindOf(err))
}

func (s *CommitmentServiceTestSuite) TestIssueRequiresAccount() {
	_, err := s.service.Issue(s.ctx, &IssueInput{})
	s.ErrorIs(err, fault.ErrMissingAccountID)
}

func (s *CommitmentServiceTestSuite) TestIssueSeedFailure() {
	seedErr := errors.New("entropy exhausted")
	s.mockSeeds.EXPECT().NewSeed().Return("", seedErr)

	_, err := s.service.Issue(s.ctx, &IssueInput{AccountID: s.testAccountID})
	s.ErrorIs(err, seedErr)
}

func (s *CommitmentServiceTestSuite) TestGetPending() {
	s.mockRepo.EXPECT().
		GetCommitment(s.ctx, &commitmentRepo.GetCommitmentInput{AccountID: s.testAccountID}).
		Return(s.pendingCommitment(), nil)

	out, err := s.service.GetPending(s.ctx, &GetPendingInput{AccountID: s.testAccountID})
	s.Require().NoError(err)
	s.Equal(s.testHash, out.ServerSeedHash)
}

func (s *CommitmentServiceTestSuite) TestGetPendingNone() {
	s.mockRepo.EXPECT().GetCommitment(s.ctx, gomock.Any()).Return(nil, commitmentRepo.ErrCommitmentNotFound)

	_, err := s.service.GetPending(s.ctx, &GetPendingInput{AccountID: s.testAccountID})
	s.ErrorIs(err, fault.ErrNoCommitmentAvailable)
}

func (s *CommitmentServiceTestSuite) TestConsume() {
	s.mockRepo.EXPECT().
		ConsumeCommitment(s.ctx, &commitmentRepo.ConsumeCommitmentInput{AccountID: s.testAccountID}).
		Return(s.pendingCommitment(), nil)

	out, err := s.service.Consume(s.ctx, &ConsumeInput{AccountID: s.testAccountID})
	s.Require().NoError(err)
	s.Equal(s.testSeed, out.Commitment.ServerSeed)
	s.Equal(models.CommitmentStateConsumed, out.Commitment.State)
}

func (s *CommitmentServiceTestSuite) TestConsumeWithoutIssue() {
	s.mockRepo.EXPECT().ConsumeCommitment(s.ctx, gomock.Any()).Return(nil, commitmentRepo.ErrCommitmentNotFound)

	_, err := s.service.Consume(s.ctx, &ConsumeInput{AccountID: s.testAccountID})
	s.ErrorIs(err, fault.ErrNoCommitmentAvailable)
}

func (s *CommitmentServiceTestSuite) TestConsumeDetectsTamperedSeed() {
	tampered := s.pendingCommitment()
	tampered.ServerSeed = "not-the-committed-seed"
	s.mockRepo.EXPECT().ConsumeCommitment(s.ctx, gomock.Any()).Return(tampered, nil)

	_, err := s.service.Consume(s.ctx, &ConsumeInput{AccountID: s.testAccountID})
	s.ErrorIs(err, fault.ErrCommitmentMismatch)
	s.Equal(fault.KindIntegrityFault, fault.KindOf(err))
}

func (s *CommitmentServiceTestSuite) TestRestoreKeepsRemainingTTL() {
	consumed := s.pendingCommitment()
	consumed.State = models.CommitmentStateConsumed

	s.mockRepo.EXPECT().
		SaveCommitment(s.ctx, &commitmentRepo.SaveCommitmentInput{
			Commitment: s.pendingCommitment(),
			TTL:        s.testTTL,
		}).
		Return(nil)

	s.NoError(s.service.Restore(s.ctx, &RestoreInput{Commitment: consumed}))
}

func (s *CommitmentServiceTestSuite) TestRestoreDropsExpiredCommitment() {
	expired := s.pendingCommitment()
	expired.ExpiresAt = s.testTime.Add(-time.Second)

	s.NoError(s.service.Restore(s.ctx, &RestoreInput{Commitment: expired}))
}

func (s *CommitmentServiceTestSuite) TestRestoreWhenSlotTaken() {
	s.mockRepo.EXPECT().SaveCommitment(s.ctx, gomock.Any()).Return(commitmentRepo.ErrCommitmentExists)

	err := s.service.Restore(s.ctx, &RestoreInput{Commitment: s.pendingCommitment()})
	s.ErrorIs(err, fault.ErrCommitmentAlreadyOutstanding)
}

func (s *CommitmentServiceTestSuite) TestRestoreNil() {
	s.Equal(ErrNilCommitment, s.service.Restore(s.ctx, &RestoreInput{}))
}

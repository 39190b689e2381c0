package policy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/core/policy/mocks"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/diff"
	"github.com/goto/signoff/pkg/log"
)

type ServiceTestSuite struct {
	suite.Suite
	mockRepository  *mocks.Repository
	mockAuditLogger *mocks.AuditLogger
	service         *policy.Service
	now             time.Time
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.mockRepository = new(mocks.Repository)
	s.mockAuditLogger = new(mocks.AuditLogger)
	s.service = policy.NewService(policy.ServiceDeps{
		Repository:  s.mockRepository,
		Logger:      log.NewNoop(),
		AuditLogger: s.mockAuditLogger,
	})
	s.now = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	s.service.TimeNow = func() time.Time { return s.now }
}

func (s *ServiceTestSuite) TearDownTest() {
	s.mockRepository.AssertExpectations(s.T())
	s.mockAuditLogger.AssertExpectations(s.T())
}

func samplePolicy() *domain.Policy {
	return &domain.Policy{
		ID:       "po-approval",
		Model:    "purchase.order",
		Currency: "EUR",
		Levels: []*domain.Level{
			{Sequence: 1, Name: "manager", Strategy: domain.ApproverStrategyRole, Role: "manager"},
			{Sequence: 2, Name: "director", Strategy: domain.ApproverStrategyUser, User: "dir@example.com",
				Threshold: &domain.Threshold{Min: 1000}},
		},
	}
}

func (s *ServiceTestSuite) TestCreate() {
	s.Run("should reject invalid policy", func() {
		s.SetupTest()
		p := samplePolicy()
		p.Levels[1].Sequence = 1

		err := s.service.Create(context.Background(), p)

		s.ErrorIs(err, policy.ErrInvalidPolicy)
	})

	s.Run("should reject existing id", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().GetOne(mock.Anything, "po-approval", uint(0)).Return(samplePolicy(), nil).Once()

		err := s.service.Create(context.Background(), samplePolicy())

		s.ErrorIs(err, policy.ErrPolicyAlreadyExists)
	})

	s.Run("should store version 1 with defaults and audit", func() {
		s.SetupTest()
		p := samplePolicy()
		s.mockRepository.EXPECT().GetOne(mock.Anything, "po-approval", uint(0)).Return(nil, policy.ErrPolicyNotFound).Once()
		s.mockRepository.EXPECT().Create(mock.Anything, p).Return(nil).Once()
		s.mockAuditLogger.EXPECT().Log(mock.Anything, policy.AuditKeyPolicyCreate, mock.Anything).Return(nil).Once()

		err := s.service.Create(context.Background(), p)

		s.NoError(err)
		s.Equal(uint(1), p.Version)
		s.Equal(s.now, p.CreatedAt)
		s.Equal(domain.ApprovalModeAny, p.Levels[0].Mode)
		s.Equal("EUR", p.Levels[1].Threshold.Currency)
	})

	s.Run("should not fail on audit error", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().GetOne(mock.Anything, "po-approval", uint(0)).Return(nil, policy.ErrPolicyNotFound).Once()
		s.mockRepository.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
		s.mockAuditLogger.EXPECT().Log(mock.Anything, policy.AuditKeyPolicyCreate, mock.Anything).Return(errors.New("audit down")).Once()

		s.NoError(s.service.Create(context.Background(), samplePolicy()))
	})
}

func (s *ServiceTestSuite) TestUpdate() {
	s.Run("should return not found", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().GetOne(mock.Anything, "po-approval", uint(0)).Return(nil, policy.ErrPolicyNotFound).Once()

		err := s.service.Update(context.Background(), samplePolicy())

		s.ErrorIs(err, policy.ErrPolicyNotFound)
	})

	s.Run("should bump the version and audit the changelog", func() {
		s.SetupTest()
		existing := samplePolicy()
		existing.Version = 3
		existing.SetDefaults()
		updated := samplePolicy()
		updated.Levels[0].Role = "head"

		s.mockRepository.EXPECT().GetOne(mock.Anything, "po-approval", uint(0)).Return(existing, nil).Once()
		s.mockRepository.EXPECT().Create(mock.Anything, updated).Return(nil).Once()
		s.mockAuditLogger.EXPECT().Log(mock.Anything, policy.AuditKeyPolicyUpdate, mock.MatchedBy(func(data map[string]interface{}) bool {
			changes, ok := data["changes"].([]*diff.PatchOp)
			if !ok {
				return false
			}
			for _, c := range changes {
				if c.Path == "levels.0.role" && c.NewValue == "head" && c.OldValue == "manager" {
					return data["version"] == uint(4)
				}
			}
			return false
		})).Return(nil).Once()

		err := s.service.Update(context.Background(), updated)

		s.NoError(err)
		s.Equal(uint(4), updated.Version)
	})
}

func (s *ServiceTestSuite) TestMatch() {
	doc := &domain.Record{Model: "purchase.order", ID: "PO-1"}
	filter := domain.ListPoliciesFilter{Models: []string{"purchase.order"}}

	s.Run("should pick the latest version of the lowest priority active policy", func() {
		s.SetupTest()
		old := samplePolicy()
		old.ID, old.Version, old.Priority = "a-policy", 1, 1
		latest := samplePolicy()
		latest.ID, latest.Version, latest.Priority = "a-policy", 2, 1
		inactive := &domain.Policy{ID: "0-inactive", Version: 1, Model: "purchase.order"}
		other := samplePolicy()
		other.ID, other.Version, other.Priority = "b-policy", 1, 1
		lowPriority := samplePolicy()
		lowPriority.ID, lowPriority.Version, lowPriority.Priority = "0-policy", 1, 5

		s.mockRepository.EXPECT().Find(mock.Anything, filter).Return([]*domain.Policy{other, old, inactive, lowPriority, latest}, nil).Once()

		matched, err := s.service.Match(context.Background(), doc)

		s.NoError(err)
		s.Same(latest, matched)
	})

	s.Run("should serve the next lookup from cache", func() {
		s.SetupTest()
		p := samplePolicy()
		p.Version = 1
		s.mockRepository.EXPECT().Find(mock.Anything, filter).Return([]*domain.Policy{p}, nil).Once()
		s.mockRepository.EXPECT().GetOne(mock.Anything, p.ID, uint(0)).Return(p, nil).Once()

		first, err := s.service.Match(context.Background(), doc)
		s.NoError(err)
		second, err := s.service.Match(context.Background(), doc)
		s.NoError(err)
		s.Same(first, second)
	})

	s.Run("should drop a cached match once a newer version is stored elsewhere", func() {
		s.SetupTest()
		v1 := samplePolicy()
		v1.Version = 1
		v2 := samplePolicy()
		v2.Version = 2
		s.mockRepository.EXPECT().Find(mock.Anything, filter).Return([]*domain.Policy{v1}, nil).Once()
		s.mockRepository.EXPECT().GetOne(mock.Anything, v1.ID, uint(0)).Return(v2, nil).Once()
		s.mockRepository.EXPECT().Find(mock.Anything, filter).Return([]*domain.Policy{v1, v2}, nil).Once()

		first, err := s.service.Match(context.Background(), doc)
		s.Require().NoError(err)
		s.Equal(uint(1), first.Version)
		second, err := s.service.Match(context.Background(), doc)

		s.NoError(err)
		s.Same(v2, second)
	})

	s.Run("should return the version check error", func() {
		s.SetupTest()
		p := samplePolicy()
		p.Version = 1
		expectedErr := errors.New("db down")
		s.mockRepository.EXPECT().Find(mock.Anything, filter).Return([]*domain.Policy{p}, nil).Once()
		s.mockRepository.EXPECT().GetOne(mock.Anything, p.ID, uint(0)).Return(nil, expectedErr).Once()

		_, err := s.service.Match(context.Background(), doc)
		s.Require().NoError(err)
		_, err = s.service.Match(context.Background(), doc)

		s.ErrorIs(err, expectedErr)
	})

	s.Run("should return not found when no policy is active", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().Find(mock.Anything, filter).Return([]*domain.Policy{{ID: "empty", Model: "purchase.order"}}, nil).Once()

		_, err := s.service.Match(context.Background(), doc)

		s.ErrorIs(err, policy.ErrPolicyNotFound)
	})
}

package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/core/resolver/mocks"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
)

type ServiceTestSuite struct {
	suite.Suite
	mockGroups *mocks.GroupRepository
	mockRoles  *mocks.RoleRepository
	service    *resolver.Service
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.mockGroups = new(mocks.GroupRepository)
	s.mockRoles = new(mocks.RoleRepository)
	s.service = resolver.NewService(resolver.ServiceDeps{
		Groups: s.mockGroups,
		Roles:  s.mockRoles,
		Logger: log.NewNoop(),
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.mockGroups.AssertExpectations(s.T())
	s.mockRoles.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestResolve() {
	s.Run("should union explicit user, group members and role assignees without duplicates", func() {
		s.SetupTest()
		level := &domain.Level{
			Name:     "finance",
			Strategy: domain.ApproverStrategyRole,
			User:     "cfo@example.com",
			Group:    "finance",
			Role:     "controller",
		}
		doc := &domain.Record{Model: "purchase.order", ID: "PO-1"}
		s.mockGroups.EXPECT().GetMembers(mock.Anything, "finance").Return([]string{"ana@example.com", "CFO@example.com"}, nil).Once()
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "controller", "").Return([]string{"bo@example.com", "ana@example.com"}, nil).Once()

		approvers, err := s.service.Resolve(context.Background(), level, doc)

		s.NoError(err)
		s.Equal([]string{"cfo@example.com", "ana@example.com", "bo@example.com"}, approvers)
	})

	s.Run("should evaluate computed expressions against the document", func() {
		s.SetupTest()
		level := &domain.Level{
			Name:     "owner",
			Strategy: domain.ApproverStrategyComputed,
			Approvers: []string{
				"$document.fields.budget_owner",
				`[$document.created_by, "audit@example.com"]`,
				"$document.fields.missing",
			},
		}
		doc := &domain.Record{
			Model:     "purchase.order",
			ID:        "PO-1",
			CreatedBy: "ana@example.com",
			Fields:    map[string]interface{}{"budget_owner": "bo@example.com"},
		}

		approvers, err := s.service.Resolve(context.Background(), level, doc)

		s.NoError(err)
		s.Equal([]string{"bo@example.com", "ana@example.com", "audit@example.com"}, approvers)
	})

	s.Run("should fail on computed values that are not users", func() {
		s.SetupTest()
		level := &domain.Level{Name: "owner", Strategy: domain.ApproverStrategyComputed, Approvers: []string{"$document.amount"}}
		doc := &domain.Record{Model: "purchase.order", ID: "PO-1", Amount: 10}

		_, err := s.service.Resolve(context.Background(), level, doc)

		s.ErrorIs(err, resolver.ErrUnexpectedApproverType)
	})

	s.Run("should return config error on unknown group", func() {
		s.SetupTest()
		level := &domain.Level{Name: "finance", Strategy: domain.ApproverStrategyGroup, Group: "ghost"}
		s.mockGroups.EXPECT().GetMembers(mock.Anything, "ghost").Return(nil, resolver.ErrGroupNotFound).Once()

		_, err := s.service.Resolve(context.Background(), level, &domain.Record{Model: "purchase.order"})

		s.ErrorIs(err, resolver.ErrGroupNotFound)
	})

	s.Run("should wrap repository errors", func() {
		s.SetupTest()
		level := &domain.Level{Name: "mgr", Strategy: domain.ApproverStrategyRole, Role: "manager"}
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "").Return(nil, errors.New("connection refused")).Once()

		_, err := s.service.Resolve(context.Background(), level, &domain.Record{Model: "purchase.order"})

		s.ErrorIs(err, resolver.ErrFailedToGetApprovers)
	})

	s.Run("should return empty list when nobody holds the role", func() {
		s.SetupTest()
		level := &domain.Level{Name: "mgr", Strategy: domain.ApproverStrategyRole, Role: "manager"}
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "").Return(nil, nil).Once()

		approvers, err := s.service.Resolve(context.Background(), level, &domain.Record{Model: "purchase.order"})

		s.NoError(err)
		s.Empty(approvers)
	})
}

func (s *ServiceTestSuite) TestUnitRoleOverride() {
	level := &domain.Level{Name: "mgr", Strategy: domain.ApproverStrategyRole, Role: "manager", User: "cfo@example.com"}

	s.Run("should use the unit table for documents applying unit roles", func() {
		s.SetupTest()
		s.service.RegisterOverride("purchase.order", resolver.UnitRoleOverride(s.mockRoles))
		doc := &domain.Record{Model: "purchase.order", ID: "PO-1", Unit: "jakarta", ApplyUnitRoles: true}
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "").Return([]string{"global@example.com"}, nil).Once()
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "jakarta").Return([]string{"jkt@example.com"}, nil).Once()

		approvers, err := s.service.Resolve(context.Background(), level, doc)

		s.NoError(err)
		s.Equal([]string{"cfo@example.com", "jkt@example.com"}, approvers)
	})

	s.Run("should fail when the unit has no assignee for the role", func() {
		s.SetupTest()
		s.service.RegisterOverride("purchase.order", resolver.UnitRoleOverride(s.mockRoles))
		doc := &domain.Record{Model: "purchase.order", ID: "PO-1", Unit: "bandung", ApplyUnitRoles: true}
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "").Return([]string{"global@example.com"}, nil).Once()
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "bandung").Return([]string{}, nil).Once()

		_, err := s.service.Resolve(context.Background(), level, doc)

		s.ErrorIs(err, resolver.ErrUnitApproverNotFound)
	})

	s.Run("should keep the global table for documents not applying unit roles", func() {
		s.SetupTest()
		s.service.RegisterOverride("purchase.order", resolver.UnitRoleOverride(s.mockRoles))
		doc := &domain.Record{Model: "purchase.order", ID: "PO-1", Unit: "jakarta"}
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "").Return([]string{"global@example.com"}, nil).Once()

		approvers, err := s.service.Resolve(context.Background(), level, doc)

		s.NoError(err)
		s.Equal([]string{"cfo@example.com", "global@example.com"}, approvers)
	})

	s.Run("should not apply overrides of other models", func() {
		s.SetupTest()
		s.service.RegisterOverride("hr.expense", resolver.OverrideFunc(func(context.Context, *domain.Level, domain.Document, resolver.Resolution) ([]string, error) {
			s.Fail("override must not run")
			return nil, nil
		}))
		s.mockRoles.EXPECT().GetAssignees(mock.Anything, "manager", "").Return([]string{"global@example.com"}, nil).Once()

		_, err := s.service.Resolve(context.Background(), level, &domain.Record{Model: "purchase.order"})

		s.NoError(err)
	})
}

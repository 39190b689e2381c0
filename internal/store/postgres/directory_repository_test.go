package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/suite"

	"github.com/goto/signoff/core/currency"
	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/postgres"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/pkg/postgrestest"
)

type DirectoryRepositoryTestSuite struct {
	suite.Suite
	store    *postgres.Store
	pool     *dockertest.Pool
	resource *dockertest.Resource

	groups *postgres.GroupRepository
	roles  *postgres.RoleRepository
	rates  *postgres.CurrencyRepository
}

func TestDirectoryRepository(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(DirectoryRepositoryTestSuite))
}

func (s *DirectoryRepositoryTestSuite) SetupSuite() {
	var err error

	logger := log.NewCtxLogger("debug", []log.ContextKey{"test"})
	s.store, s.pool, s.resource, err = postgrestest.NewTestStore(logger)
	if err != nil {
		s.T().Fatal(err)
	}

	s.groups = postgres.NewGroupRepository(s.store.DB())
	s.roles = postgres.NewRoleRepository(s.store.DB())
	s.rates = postgres.NewCurrencyRepository(s.store.DB())
}

func (s *DirectoryRepositoryTestSuite) TearDownSuite() {
	if err := s.store.Close(); err != nil {
		s.T().Fatal(err)
	}
	if err := postgrestest.PurgeTestDocker(s.pool, s.resource); err != nil {
		s.T().Fatal(err)
	}
}

func (s *DirectoryRepositoryTestSuite) SetupTest() {
	s.Require().NoError(postgrestest.Setup(s.store))
}

func (s *DirectoryRepositoryTestSuite) TestGroups() {
	ctx := context.Background()
	s.Require().NoError(s.groups.Upsert(ctx, &domain.Group{Name: "finance", Members: []string{"a@example.com"}}))
	s.Require().NoError(s.groups.Upsert(ctx, &domain.Group{Name: "finance", Members: []string{"a@example.com", "b@example.com"}}))

	members, err := s.groups.GetMembers(ctx, "Finance")
	s.NoError(err)
	s.Equal([]string{"a@example.com", "b@example.com"}, members)

	_, err = s.groups.GetMembers(ctx, "legal")
	s.ErrorIs(err, resolver.ErrGroupNotFound)
}

func (s *DirectoryRepositoryTestSuite) TestRoles() {
	ctx := context.Background()
	s.Require().NoError(s.roles.Upsert(ctx, &domain.RoleAssignment{Role: "cfo", Users: []string{"cfo@example.com"}}))
	s.Require().NoError(s.roles.Upsert(ctx, &domain.RoleAssignment{Role: "cfo", Unit: "jakarta", Users: []string{"jkt-cfo@example.com"}}))

	global, err := s.roles.GetAssignees(ctx, "CFO", "")
	s.NoError(err)
	s.Equal([]string{"cfo@example.com"}, global)

	unit, err := s.roles.GetAssignees(ctx, "cfo", "jakarta")
	s.NoError(err)
	s.Equal([]string{"jkt-cfo@example.com"}, unit)

	none, err := s.roles.GetAssignees(ctx, "cfo", "surabaya")
	s.NoError(err)
	s.Empty(none)
}

func (s *DirectoryRepositoryTestSuite) TestCurrencyRates() {
	ctx := context.Background()
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.rates.Upsert(ctx, &domain.CurrencyRate{Currency: "idr", Rate: 15000, EffectiveDate: jan}))
	s.Require().NoError(s.rates.Upsert(ctx, &domain.CurrencyRate{Currency: "IDR", Rate: 15500, EffectiveDate: feb}))

	rate, err := s.rates.GetRate(ctx, "IDR", feb.Add(-time.Hour))
	s.NoError(err)
	s.Equal(15000.0, rate.Rate)

	rate, err = s.rates.GetRate(ctx, "idr", feb.Add(time.Hour))
	s.NoError(err)
	s.Equal(15500.0, rate.Rate)

	_, err = s.rates.GetRate(ctx, "IDR", jan.Add(-time.Hour))
	s.ErrorIs(err, currency.ErrRateNotFound)
}

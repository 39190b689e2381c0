package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	saltaudit "github.com/goto/salt/audit"
	auditrepo "github.com/goto/salt/audit/repositories"
	"github.com/redis/go-redis/v9"

	"github.com/goto/signoff/core/approval"
	"github.com/goto/signoff/core/comment"
	"github.com/goto/signoff/core/currency"
	"github.com/goto/signoff/core/event"
	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/core/reminder"
	"github.com/goto/signoff/core/report"
	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/core/workflow"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/memory"
	"github.com/goto/signoff/internal/store/postgres"
	"github.com/goto/signoff/jobs"
	"github.com/goto/signoff/pkg/audit"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers"
)

type transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type policyRepository interface {
	Create(context.Context, *domain.Policy) error
	Find(context.Context, domain.ListPoliciesFilter) ([]*domain.Policy, error)
	GetOne(ctx context.Context, id string, version uint) (*domain.Policy, error)
}

type requestRepository interface {
	BulkInsert(context.Context, []*domain.ApprovalRequest) error
	BulkUpdate(context.Context, []*domain.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	Find(context.Context, domain.ListApprovalRequestsFilter) ([]*domain.ApprovalRequest, error)
	DeleteByDocument(context.Context, domain.DocumentRef) error
	UpdateLastReminderDate(ctx context.Context, ids []string, at time.Time) error
}

// DocumentRepository stores the generic records served by the HTTP API
type DocumentRepository interface {
	domain.DocumentStore
	Upsert(context.Context, *domain.Record) error
	GetByRef(context.Context, domain.DocumentRef) (*domain.Record, error)
	List(context.Context, domain.ListDocumentsFilter) ([]*domain.Record, error)
}

type GroupRepository interface {
	Upsert(context.Context, *domain.Group) error
	GetMembers(ctx context.Context, name string) ([]string, error)
}

type RoleRepository interface {
	Upsert(context.Context, *domain.RoleAssignment) error
	GetAssignees(ctx context.Context, role, unit string) ([]string, error)
}

type commentRepository interface {
	Create(context.Context, *domain.Comment) error
	List(context.Context, domain.ListCommentsFilter) ([]*domain.Comment, error)
}

type currencyRepository interface {
	GetRate(ctx context.Context, currency string, at time.Time) (*domain.CurrencyRate, error)
	Upsert(context.Context, *domain.CurrencyRate) error
}

type reportRepository interface {
	GetPendingApprovalsList(context.Context, *report.PendingApprovalsReportFilter) ([]*report.PendingApprovalsReport, error)
}

type auditLogRepository interface {
	List(context.Context, *domain.ListAuditLogFilter) ([]*saltaudit.Log, error)
}

// storage is what a store driver contributes to the services
type storage struct {
	transactor transactor
	policies   policyRepository
	requests   requestRepository
	documents  func(domain.CurrencyConverter) DocumentRepository
	comments   commentRepository
	groups     GroupRepository
	roles      RoleRepository
	rates      currencyRepository
	reports    reportRepository
	auditLogs  auditLogRepository
	// auditSink receives the entries written by the audit logger
	auditSink audit.Repository
	close func() error
}

type ServiceDeps struct {
	Config   *Config
	Logger   log.Logger
	Notifier notifiers.Client
}

type Services struct {
	CurrencyService *currency.Service
	ResolverService *resolver.Service
	ApprovalService *approval.Service
	PolicyService   *policy.Service
	CommentService  *comment.Service
	WorkflowService *workflow.Service
	ReminderService *reminder.Service
	ReportService   *report.Service
	EventService    *event.Service

	Documents DocumentRepository
	Groups    GroupRepository
	Roles     RoleRepository
	Locker    jobs.Locker

	closers []func() error
}

// InitServices connects the configured store and builds every service on top of it
func InitServices(deps ServiceDeps) (*Services, error) {
	var st *storage
	var err error
	switch deps.Config.StoreDriver {
	case StoreDriverMemory:
		st = memoryStorage()
	default:
		st, err = postgresStorage(deps.Config)
		if err != nil {
			return nil, err
		}
	}

	services, err := buildServices(deps, st)
	if err != nil {
		if st.close != nil {
			st.close()
		}
		return nil, err
	}
	return services, nil
}

func buildServices(deps ServiceDeps, st *storage) (*Services, error) {
	ctx := context.Background()
	cfg := deps.Config
	logger := deps.Logger
	v := validator.New()

	auditLogger, err := audit.New(ctx, st.auditSink, "signoff")
	if err != nil {
		return nil, err
	}

	currencyService := currency.NewService(currency.ServiceDeps{
		Repository:   st.rates,
		BaseCurrency: cfg.Currency.Base,
		Logger:       logger,
		CacheTTL:     cfg.Currency.CacheTTL,
	})
	documents := st.documents(currencyService)

	resolverService := resolver.NewService(resolver.ServiceDeps{
		Groups: st.groups,
		Roles:  st.roles,
		Logger: logger,
	})
	unitRoles := resolver.UnitRoleOverride(st.roles)
	for _, model := range cfg.Approval.UnitRoleModels {
		resolverService.RegisterOverride(model, unitRoles)
	}

	approvalService := approval.NewService(approval.ServiceDeps{
		Repository: st.requests,
		Resolver:   resolverService,
		Groups:     st.groups,
		AdminGroup: cfg.Approval.AdminGroup,
		Logger:     logger,
	})
	policyService := policy.NewService(policy.ServiceDeps{
		Repository:  st.policies,
		Validator:   v,
		Logger:      logger,
		AuditLogger: auditLogger,
		CacheTTL:    cfg.Approval.PolicyCacheTTL,
	})
	commentService := comment.NewService(comment.ServiceDeps{
		Repository:  st.comments,
		Requests:    approvalService,
		Notifier:    deps.Notifier,
		Logger:      logger,
		AuditLogger: auditLogger,
	})
	workflowService := workflow.NewService(workflow.ServiceDeps{
		Transactor:  st.transactor,
		Policies:    policyService,
		Approvals:   approvalService,
		Groups:      st.groups,
		Comments:    commentService,
		Documents:   documents,
		Notifier:    deps.Notifier,
		Logger:      logger,
		AuditLogger: auditLogger,
	})
	reminderService := reminder.NewService(reminder.ServiceDeps{
		Approvals: approvalService,
		Policies:  policyService,
		Notifier:  deps.Notifier,
		Logger:    logger,
	})

	s := &Services{
		CurrencyService: currencyService,
		ResolverService: resolverService,
		ApprovalService: approvalService,
		PolicyService:   policyService,
		CommentService:  commentService,
		WorkflowService: workflowService,
		ReminderService: reminderService,
		ReportService:   report.NewService(report.ServiceDeps{Repository: st.reports}),
		EventService:    event.NewService(st.auditLogs, logger),

		Documents: documents,
		Groups:    st.groups,
		Roles:     st.roles,
		Locker:    jobs.NewNoopLocker(),
	}
	if st.close != nil {
		s.closers = append(s.closers, st.close)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.Locker = jobs.NewRedisLocker(client, cfg.Redis.Prefix)
		s.closers = append(s.closers, client.Close)
	}

	return s, nil
}

// Close releases the store connection and the redis client
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func postgresStorage(cfg *Config) (*storage, error) {
	st, err := postgres.NewStore(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	sqlDB, err := st.DB().DB()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("getting sql db: %w", err)
	}

	db := st.DB()
	return &storage{
		transactor: st,
		policies:   postgres.NewPolicyRepository(db),
		requests:   postgres.NewApprovalRequestRepository(db),
		documents: func(c domain.CurrencyConverter) DocumentRepository {
			return postgres.NewDocumentRepository(db, c)
		},
		comments:  postgres.NewCommentRepository(db),
		groups:    postgres.NewGroupRepository(db),
		roles:     postgres.NewRoleRepository(db),
		rates:     postgres.NewCurrencyRepository(db),
		reports:   report.NewRepository(db),
		auditLogs: postgres.NewAuditLogRepository(db),
		auditSink: auditrepo.NewPostgresRepository(sqlDB),
		close:     st.Close,
	}, nil
}

func memoryStorage() *storage {
	st := memory.NewStore()
	auditLogs := memory.NewAuditLogRepository(st)
	return &storage{
		transactor: st,
		policies:   memory.NewPolicyRepository(st),
		requests:   memory.NewApprovalRequestRepository(st),
		documents: func(c domain.CurrencyConverter) DocumentRepository {
			st.SetCurrencyConverter(c)
			return memory.NewDocumentRepository(st)
		},
		comments:  memory.NewCommentRepository(st),
		groups:    memory.NewGroupRepository(st),
		roles:     memory.NewRoleRepository(st),
		rates:     memory.NewCurrencyRepository(st),
		reports:   memory.NewReportRepository(st),
		auditLogs: auditLogs,
		auditSink: auditLogs,
	}
}

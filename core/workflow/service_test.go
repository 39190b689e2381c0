package workflow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/goto/signoff/core/approval"
	"github.com/goto/signoff/core/comment"
	"github.com/goto/signoff/core/policy"
	"github.com/goto/signoff/core/reminder"
	"github.com/goto/signoff/core/resolver"
	"github.com/goto/signoff/core/workflow"
	"github.com/goto/signoff/core/workflow/mocks"
	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/store/memory"
	"github.com/goto/signoff/pkg/log"
)

const model = "purchase.order"

type failingStore struct {
	*memory.DocumentRepository
}

func (f failingStore) SaveDocument(context.Context, domain.Document) error {
	return errors.New("disk full")
}

type ServiceTestSuite struct {
	suite.Suite

	store     *memory.Store
	documents *memory.DocumentRepository
	groups    *memory.GroupRepository
	roles     *memory.RoleRepository
	comments  *memory.CommentRepository

	mockNotifier    *mocks.Notifier
	mockAuditLogger *mocks.AuditLogger
	sent            []domain.Notification

	policyService   *policy.Service
	approvalService *approval.Service
	service         *workflow.Service

	now time.Time
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	ctx := context.Background()
	logger := log.NewNoop()
	s.now = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	s.sent = nil

	s.store = memory.NewStore()
	s.documents = memory.NewDocumentRepository(s.store)
	s.groups = memory.NewGroupRepository(s.store)
	s.roles = memory.NewRoleRepository(s.store)
	s.comments = memory.NewCommentRepository(s.store)

	s.mockNotifier = new(mocks.Notifier)
	s.mockNotifier.EXPECT().Notify(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, items []domain.Notification) []error {
			s.sent = append(s.sent, items...)
			return nil
		}).Maybe()
	s.mockAuditLogger = new(mocks.AuditLogger)
	s.mockAuditLogger.EXPECT().Log(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	resolverService := resolver.NewService(resolver.ServiceDeps{
		Groups: s.groups,
		Roles:  s.roles,
		Logger: logger,
	})
	s.policyService = policy.NewService(policy.ServiceDeps{
		Repository:  memory.NewPolicyRepository(s.store),
		Logger:      logger,
		AuditLogger: s.mockAuditLogger,
	})
	s.approvalService = approval.NewService(approval.ServiceDeps{
		Repository: memory.NewApprovalRequestRepository(s.store),
		Resolver:   resolverService,
		Groups:     s.groups,
		AdminGroup: "admins",
		Logger:     logger,
	})
	s.approvalService.TimeNow = func() time.Time { return s.now }
	commentService := comment.NewService(comment.ServiceDeps{
		Repository:  s.comments,
		Requests:    s.approvalService,
		Notifier:    s.mockNotifier,
		Logger:      logger,
		AuditLogger: s.mockAuditLogger,
	})

	s.service = workflow.NewService(workflow.ServiceDeps{
		Transactor:  s.store,
		Policies:    s.policyService,
		Approvals:   s.approvalService,
		Groups:      s.groups,
		Comments:    commentService,
		Documents:   s.documents,
		Notifier:    s.mockNotifier,
		Logger:      logger,
		AuditLogger: s.mockAuditLogger,
	})
	s.service.TimeNow = func() time.Time { return s.now }

	s.Require().NoError(s.groups.Upsert(ctx, &domain.Group{Name: "finance", Members: []string{"fin1@example.com", "fin2@example.com"}}))
	s.Require().NoError(s.groups.Upsert(ctx, &domain.Group{Name: "admins", Members: []string{"admin@example.com"}}))
	s.Require().NoError(s.groups.Upsert(ctx, &domain.Group{Name: "directors", Members: []string{"boss@example.com"}}))
	s.Require().NoError(s.roles.Upsert(ctx, &domain.RoleAssignment{Role: "cfo", Users: []string{"cfo@example.com"}}))
}

func (s *ServiceTestSuite) createPolicy(levels ...*domain.Level) *domain.Policy {
	p := &domain.Policy{ID: "po-approval", Model: model, Levels: levels, BypassGroups: []string{"directors"}}
	s.Require().NoError(s.policyService.Create(context.Background(), p))
	return p
}

func (s *ServiceTestSuite) createDocument(id string, amount float64) domain.DocumentRef {
	d := &domain.Record{
		Model:          model,
		ID:             id,
		Name:           "PO " + id,
		State:          domain.DocumentStateDraft,
		Amount:         amount,
		LineCount:      1,
		RequireLines:   true,
		FinalizedState: "purchase",
		CreatedBy:      "creator@example.com",
	}
	s.Require().NoError(s.documents.Upsert(context.Background(), d))
	return d.Ref()
}

func (s *ServiceTestSuite) threeLevels() []*domain.Level {
	return []*domain.Level{
		{Sequence: 10, Name: "manager", Strategy: domain.ApproverStrategyUser, User: "manager@example.com"},
		{Sequence: 20, Name: "finance", Strategy: domain.ApproverStrategyGroup, Group: "finance"},
		{Sequence: 30, Name: "cfo", Strategy: domain.ApproverStrategyRole, Role: "cfo"},
	}
}

func (s *ServiceTestSuite) state(ref domain.DocumentRef) domain.DocumentState {
	d, err := s.documents.GetByRef(context.Background(), ref)
	s.Require().NoError(err)
	return d.State
}

func (s *ServiceTestSuite) requests(ref domain.DocumentRef) []*domain.ApprovalRequest {
	requests, err := s.service.ListRequests(context.Background(), ref)
	s.Require().NoError(err)
	return requests
}

func (s *ServiceTestSuite) TestRequestApproval() {
	s.Run("should create one request per required level with only the first pending", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)

		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")

		s.Require().NoError(err)
		s.False(result.AutoApproved)
		s.Equal(domain.DocumentStateUnderApproval, s.state(ref))

		requests := s.requests(ref)
		s.Require().Len(requests, 3)
		s.Equal([]int{10, 20, 30}, []int{requests[0].Sequence, requests[1].Sequence, requests[2].Sequence})
		s.Equal(domain.RequestStatusPending, requests[0].Status)
		s.Equal(domain.RequestStatusNew, requests[1].Status)
		s.Equal(domain.RequestStatusNew, requests[2].Status)
		s.Equal([]string{"fin1@example.com", "fin2@example.com"}, requests[1].Approvers)
		s.Equal("requester@example.com", requests[0].RequestedBy)

		s.Require().Len(s.sent, 1)
		s.Equal("manager@example.com", s.sent[0].User)
		s.Equal(domain.NotificationTypeApproverNotification, s.sent[0].Message.Type)
	})

	s.Run("should auto approve when the amount is below every threshold", func() {
		s.SetupTest()
		s.createPolicy(&domain.Level{
			Sequence: 1, Name: "cfo", Strategy: domain.ApproverStrategyRole, Role: "cfo",
			Threshold: &domain.Threshold{Min: 10000},
		})
		small := s.createDocument("PO-small", 5000)

		result, err := s.service.RequestApproval(context.Background(), small, "requester@example.com")

		s.Require().NoError(err)
		s.True(result.AutoApproved)
		s.Empty(result.Requests)
		s.Empty(s.requests(small))
		s.Equal(domain.DocumentState("purchase"), s.state(small))
	})

	s.Run("should require approval above the threshold and finalize once approved", func() {
		s.SetupTest()
		s.createPolicy(&domain.Level{
			Sequence: 1, Name: "cfo", Strategy: domain.ApproverStrategyRole, Role: "cfo",
			Threshold: &domain.Threshold{Min: 10000},
		})
		big := s.createDocument("PO-big", 50000)

		result, err := s.service.RequestApproval(context.Background(), big, "requester@example.com")
		s.Require().NoError(err)
		s.Require().Len(result.Requests, 1)
		s.Equal(domain.RequestStatusPending, result.Requests[0].Status)

		_, err = s.service.Approve(context.Background(), result.Requests[0].ID, "cfo@example.com")

		s.Require().NoError(err)
		s.Equal(domain.DocumentState("purchase"), s.state(big))
		last := s.sent[len(s.sent)-1]
		s.Equal(domain.NotificationTypeDocumentApproved, last.Message.Type)
		s.Equal("requester@example.com", last.User)
	})

	s.Run("should skip approval when the document allows the actor", func() {
		s.SetupTest()
		ref := s.createDocument("PO-exempt", 100)
		d, err := s.documents.GetByRef(context.Background(), ref)
		s.Require().NoError(err)
		d.Exempt = []string{"owner@example.com"}
		s.Require().NoError(s.documents.Upsert(context.Background(), d))

		result, err := s.service.RequestApproval(context.Background(), ref, "owner@example.com")

		s.Require().NoError(err)
		s.True(result.AutoApproved)
		s.Equal(domain.DocumentState("purchase"), s.state(ref))
	})

	s.Run("should skip approval for members of a bypass group before resolving approvers", func() {
		s.SetupTest()
		s.createPolicy(&domain.Level{Sequence: 1, Name: "ghost", Strategy: domain.ApproverStrategyRole, Role: "nobody"})
		ref := s.createDocument("PO-director", 100)

		result, err := s.service.RequestApproval(context.Background(), ref, "boss@example.com")

		s.Require().NoError(err)
		s.True(result.AutoApproved)
		s.Empty(s.requests(ref))
	})

	s.Run("should fail closed when a required level has no approver", func() {
		s.SetupTest()
		s.createPolicy(
			&domain.Level{Sequence: 1, Name: "manager", Strategy: domain.ApproverStrategyUser, User: "manager@example.com"},
			&domain.Level{Sequence: 2, Name: "ghost", Strategy: domain.ApproverStrategyRole, Role: "nobody"},
		)
		ref := s.createDocument("PO-2", 100)

		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")

		s.ErrorIs(err, approval.ErrApproversNotFound)
		s.Equal(domain.DocumentStateDraft, s.state(ref))
		s.Empty(s.requests(ref))
	})

	s.Run("should return a configuration error when no policy matches", func() {
		s.SetupTest()
		ref := s.createDocument("PO-3", 100)

		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")

		s.ErrorIs(err, policy.ErrPolicyNotFound)
		s.Equal(domain.DocumentStateDraft, s.state(ref))
	})

	s.Run("should reject a document failing its structural checks", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-4", 100)
		d, err := s.documents.GetByRef(context.Background(), ref)
		s.Require().NoError(err)
		d.LineCount = 0
		s.Require().NoError(s.documents.Upsert(context.Background(), d))

		_, err = s.service.RequestApproval(context.Background(), ref, "requester@example.com")

		s.ErrorIs(err, workflow.ErrDocumentNotEligible)
		s.Empty(s.requests(ref))
	})

	s.Run("should only accept draft documents", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-5", 100)
		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.RequestApproval(context.Background(), ref, "requester@example.com")

		s.ErrorIs(err, workflow.ErrDocumentStateInvalid)
		s.Len(s.requests(ref), 3)
	})

	s.Run("should roll back created requests when saving the document fails", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-6", 100)
		s.service.RegisterDocumentStore(model, failingStore{s.documents})

		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")

		s.EqualError(err, "disk full")
		s.Equal(domain.DocumentStateDraft, s.state(ref))
		s.Empty(s.requests(ref))
	})
}

func (s *ServiceTestSuite) TestUpdateApproval() {
	s.Run("should promote exactly the next level", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.Approve(context.Background(), result.Requests[0].ID, "manager@example.com")

		s.Require().NoError(err)
		requests := s.requests(ref)
		s.Equal(domain.RequestStatusApproved, requests[0].Status)
		s.Equal("manager@example.com", requests[0].ApprovedBy)
		s.Equal(domain.RequestStatusPending, requests[1].Status)
		s.Equal(domain.RequestStatusNew, requests[2].Status)
		s.Equal(domain.DocumentStateUnderApproval, s.state(ref))
	})

	s.Run("should finalize only when every level is approved", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		approvers := []string{"manager@example.com", "fin2@example.com", "cfo@example.com"}
		for i, approver := range approvers {
			_, err := s.service.Approve(context.Background(), s.requests(ref)[i].ID, approver)
			s.Require().NoError(err)
			if i < len(approvers)-1 {
				s.Equal(domain.DocumentStateUnderApproval, s.state(ref))
			}
		}

		s.Equal(domain.DocumentState("purchase"), s.state(ref))
		for _, r := range s.requests(ref) {
			s.Equal(domain.RequestStatusApproved, r.Status)
		}
	})

	s.Run("should never overwrite a decided request", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)
		first := result.Requests[0].ID
		_, err = s.service.Approve(context.Background(), first, "manager@example.com")
		s.Require().NoError(err)

		s.now = s.now.Add(time.Hour)
		_, err = s.service.Approve(context.Background(), first, "admin@example.com")

		s.ErrorIs(err, approval.ErrRequestAlreadyDecided)
		requests := s.requests(ref)
		s.Equal("manager@example.com", requests[0].ApprovedBy)
		s.Equal(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), requests[0].ApproveDate.UTC())
		s.Equal(domain.RequestStatusPending, requests[1].Status)
	})

	s.Run("should reject the whole document and clear approvals", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)
		_, err = s.service.Approve(context.Background(), result.Requests[0].ID, "manager@example.com")
		s.Require().NoError(err)

		_, err = s.service.Reject(context.Background(), s.requests(ref)[1].ID, "fin1@example.com", "budget exceeded")

		s.Require().NoError(err)
		s.Equal(domain.DocumentStateRejected, s.state(ref))
		requests := s.requests(ref)
		for _, r := range requests {
			s.Empty(r.ApprovedBy)
			s.Nil(r.ApproveDate)
		}
		s.Equal(domain.RequestStatusApproved, requests[0].Status)
		s.Equal(domain.RequestStatusRejected, requests[1].Status)
		s.Equal("budget exceeded", requests[1].Reason)
		s.Equal(domain.RequestStatusNew, requests[2].Status)

		comments, err := s.comments.List(context.Background(), domain.ListCommentsFilter{DocumentModel: model, DocumentID: "PO-1"})
		s.Require().NoError(err)
		s.Require().Len(comments, 1)
		s.Contains(comments[0].Body, "budget exceeded")

		last := s.sent[len(s.sent)-1]
		s.Equal(domain.NotificationTypeDocumentRejected, last.Message.Type)
		s.Equal("requester@example.com", last.User)
	})

	s.Run("should stop reminding the rest of a level once the document is rejected", func() {
		s.SetupTest()
		p := &domain.Policy{
			ID:    "po-approval",
			Model: model,
			Levels: []*domain.Level{
				{Sequence: 10, Name: "finance", Strategy: domain.ApproverStrategyGroup, Group: "finance", Mode: domain.ApprovalModeAll},
			},
			Reminder: &domain.ReminderConfig{Template: "ApprovalReminder", Period: "24h"},
		}
		s.Require().NoError(s.policyService.Create(context.Background(), p))
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)
		s.Require().Len(result.Requests, 2)

		var rejected, sibling *domain.ApprovalRequest
		for _, r := range result.Requests {
			if r.IsExistingApprover("fin1@example.com") {
				rejected = r
			} else {
				sibling = r
			}
		}
		s.Require().NotNil(rejected)
		s.Require().NotNil(sibling)
		_, err = s.service.Reject(context.Background(), rejected.ID, "fin1@example.com", "budget exceeded")
		s.Require().NoError(err)

		for _, r := range s.requests(ref) {
			if r.ID == sibling.ID {
				s.Equal(domain.RequestStatusNew, r.Status)
			}
		}
		_, err = s.service.Approve(context.Background(), sibling.ID, "fin2@example.com")
		s.Error(err)

		s.sent = nil
		reminders := reminder.NewService(reminder.ServiceDeps{
			Approvals: s.approvalService,
			Policies:  s.policyService,
			Notifier:  s.mockNotifier,
			Logger:    log.NewNoop(),
		})
		err = reminders.RunOnce(context.Background(), s.now.Add(25*time.Hour), reminder.Config{Calendar: domain.DefaultWorkingCalendar()})

		s.NoError(err)
		s.Empty(s.sent)
		s.Equal(domain.DocumentStateRejected, s.state(ref))
	})

	s.Run("should leave later levels new when the first level rejects", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()[:2]...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.Reject(context.Background(), result.Requests[0].ID, "manager@example.com", "wrong vendor")

		s.Require().NoError(err)
		s.Equal(domain.DocumentStateRejected, s.state(ref))
		requests := s.requests(ref)
		s.Equal(domain.RequestStatusRejected, requests[0].Status)
		s.Equal(domain.RequestStatusNew, requests[1].Status)
	})

	s.Run("should require a reason to reject", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.Reject(context.Background(), result.Requests[0].ID, "manager@example.com", "")

		s.ErrorIs(err, domain.ErrRejectReasonRequired)
		s.Equal(domain.DocumentStateUnderApproval, s.state(ref))
	})

	s.Run("should forbid users outside the approvers and accept administrators", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.Approve(context.Background(), result.Requests[0].ID, "stranger@example.com")
		s.ErrorIs(err, approval.ErrActionForbidden)

		_, err = s.service.Approve(context.Background(), result.Requests[0].ID, "admin@example.com")
		s.NoError(err)
	})

	s.Run("should not act on requests that are not pending yet", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.Approve(context.Background(), s.requests(ref)[1].ID, "fin1@example.com")

		s.ErrorIs(err, approval.ErrRequestNotActionable)
	})

	s.Run("should keep the policy version a document started with", func() {
		s.SetupTest()
		p := s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		p.Levels = p.Levels[:1]
		s.Require().NoError(s.policyService.Update(context.Background(), p))

		_, err = s.service.Approve(context.Background(), result.Requests[0].ID, "manager@example.com")
		s.Require().NoError(err)

		requests := s.requests(ref)
		s.Len(requests, 3)
		s.Equal(uint(1), requests[0].PolicyVersion)
		s.Equal(domain.RequestStatusPending, requests[1].Status)
		s.Equal(domain.DocumentStateUnderApproval, s.state(ref))
	})
}

func (s *ServiceTestSuite) TestRecall() {
	s.Run("should remove every request and start clean on the next request", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		first, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)
		_, err = s.service.Approve(context.Background(), first.Requests[0].ID, "manager@example.com")
		s.Require().NoError(err)

		result, err := s.service.Recall(context.Background(), ref, "requester@example.com")

		s.Require().NoError(err)
		s.Len(result.Requests, 3)
		for _, r := range result.Requests {
			s.Equal(domain.RequestStatusRecall, r.Status)
		}
		s.Equal(domain.DocumentStateDraft, s.state(ref))
		s.Empty(s.requests(ref))

		second, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)
		requests := s.requests(ref)
		s.Len(requests, 3)
		s.NotEqual(first.Requests[0].ID, second.Requests[0].ID)
		s.Equal(domain.RequestStatusPending, requests[0].Status)
		s.Empty(requests[0].ApprovedBy)
	})

	s.Run("should allow the creator and forbid others", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.Recall(context.Background(), ref, "manager@example.com")
		s.ErrorIs(err, workflow.ErrRecallForbidden)
		s.Len(s.requests(ref), 3)

		_, err = s.service.Recall(context.Background(), ref, "creator@example.com")
		s.NoError(err)
	})

	s.Run("should only recall documents under approval", func() {
		s.SetupTest()
		ref := s.createDocument("PO-1", 100)

		_, err := s.service.Recall(context.Background(), ref, "creator@example.com")

		s.ErrorIs(err, workflow.ErrDocumentNotUnderApproval)
	})
}

func (s *ServiceTestSuite) TestResetToDraft() {
	s.Run("should bring a rejected document back to draft", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		result, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)
		_, err = s.service.Reject(context.Background(), result.Requests[0].ID, "manager@example.com", "no")
		s.Require().NoError(err)

		_, err = s.service.ResetToDraft(context.Background(), ref, "requester@example.com")

		s.Require().NoError(err)
		s.Equal(domain.DocumentStateDraft, s.state(ref))
		s.Empty(s.requests(ref))
	})

	s.Run("should not reset a document under approval", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.ResetToDraft(context.Background(), ref, "requester@example.com")

		s.ErrorIs(err, workflow.ErrDocumentStateInvalid)
	})
}

func (s *ServiceTestSuite) TestConfirm() {
	s.Run("should refuse to finalize while approvals are pending", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")
		s.Require().NoError(err)

		_, err = s.service.Confirm(context.Background(), ref, "requester@example.com")

		s.ErrorIs(err, approval.ErrPendingApprovalExists)
		s.True(workflow.IsConflict(err))
		s.Equal(domain.DocumentStateUnderApproval, s.state(ref))
	})

	s.Run("should finalize an approved document", func() {
		s.SetupTest()
		ref := s.createDocument("PO-1", 100)
		d, err := s.documents.GetByRef(context.Background(), ref)
		s.Require().NoError(err)
		d.State = domain.DocumentStateApproved
		s.Require().NoError(s.documents.Upsert(context.Background(), d))

		result, err := s.service.Confirm(context.Background(), ref, "requester@example.com")

		s.Require().NoError(err)
		s.Equal(domain.DocumentState("purchase"), result.Document.GetState())
	})

	s.Run("should not confirm a draft", func() {
		s.SetupTest()
		ref := s.createDocument("PO-1", 100)

		_, err := s.service.Confirm(context.Background(), ref, "requester@example.com")

		s.ErrorIs(err, workflow.ErrDocumentStateInvalid)
	})
}

func (s *ServiceTestSuite) TestAuditLog() {
	s.Run("should record the transition with the document reference", func() {
		s.SetupTest()
		s.createPolicy(s.threeLevels()...)
		ref := s.createDocument("PO-1", 100)
		s.mockAuditLogger = new(mocks.AuditLogger)
		s.service = workflow.NewService(workflow.ServiceDeps{
			Transactor:  s.store,
			Policies:    s.policyService,
			Approvals:   s.approvalService,
			Groups:      s.groups,
			Documents:   s.documents,
			Logger:      log.NewNoop(),
			AuditLogger: s.mockAuditLogger,
		})
		s.mockAuditLogger.EXPECT().
			Log(mock.Anything, workflow.AuditKeyRequestApproval, mock.MatchedBy(func(data map[string]interface{}) bool {
				return data["document_model"] == model && data["document_id"] == "PO-1" && data["actor"] == "requester@example.com"
			})).
			Return(errors.New("audit down")).Once()

		_, err := s.service.RequestApproval(context.Background(), ref, "requester@example.com")

		s.NoError(err)
		s.mockAuditLogger.AssertExpectations(s.T())
	})
}

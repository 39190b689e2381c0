package approval

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/pkg/slices"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	BulkInsert(context.Context, []*domain.ApprovalRequest) error
	BulkUpdate(context.Context, []*domain.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	Find(context.Context, domain.ListApprovalRequestsFilter) ([]*domain.ApprovalRequest, error)
	DeleteByDocument(context.Context, domain.DocumentRef) error
	UpdateLastReminderDate(ctx context.Context, ids []string, at time.Time) error
}

//go:generate mockery --name=approverResolver --exported --with-expecter
type approverResolver interface {
	Resolve(context.Context, *domain.Level, domain.Document) ([]string, error)
}

//go:generate mockery --name=groupRepository --exported --with-expecter
type groupRepository interface {
	GetMembers(ctx context.Context, name string) ([]string, error)
}

// DecisionResult is what a single approve or reject changed on the document requests
type DecisionResult struct {
	Request *domain.ApprovalRequest
	// Requests are all requests of the document after the decision
	Requests []*domain.ApprovalRequest
	// Promoted requests became pending because their previous level completed
	Promoted  []*domain.ApprovalRequest
	Completed bool
	Rejected  bool
}

type ServiceDeps struct {
	Repository repository
	Resolver   approverResolver
	Groups     groupRepository
	// AdminGroup members may decide any pending request
	AdminGroup string
	Logger     log.Logger
}

// Service is the ledger of approval requests
type Service struct {
	repo       repository
	resolver   approverResolver
	groups     groupRepository
	adminGroup string
	logger     log.Logger

	TimeNow func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		repo:       deps.Repository,
		resolver:   deps.Resolver,
		groups:     deps.Groups,
		adminGroup: deps.AdminGroup,
		logger:     deps.Logger,
		TimeNow:    time.Now,
	}
}

// CreateRequestsFor materialises one request per required level, or one per approver on levels
// in all mode. Requests of the lowest sequence start pending, the rest wait as new.
func (s *Service) CreateRequestsFor(ctx context.Context, doc domain.Document, policy *domain.Policy, requestedBy string) ([]*domain.ApprovalRequest, error) {
	if policy == nil || !policy.IsActive() {
		id := ""
		if policy != nil {
			id = policy.ID
		}
		return nil, fmt.Errorf("%w: %q", ErrPolicyInactive, id)
	}

	now := s.TimeNow()
	levels, err := policy.RequiredLevels(ctx, doc, now)
	if err != nil {
		return nil, fmt.Errorf("evaluating levels of policy %q: %w", policy.ID, err)
	}

	ref := doc.Ref()
	requests := []*domain.ApprovalRequest{}
	for _, level := range levels {
		approvers, err := s.resolver.Resolve(ctx, level, doc)
		if err != nil {
			return nil, fmt.Errorf("resolving approvers of level %q: %w", level.Name, err)
		}
		if len(approvers) == 0 {
			return nil, fmt.Errorf("%w: level %q of policy %q", ErrApproversNotFound, level.Name, policy.ID)
		}

		newRequest := func(approvers []string) *domain.ApprovalRequest {
			return &domain.ApprovalRequest{
				ID:            uuid.NewString(),
				DocumentModel: ref.Model,
				DocumentID:    ref.ID,
				PolicyID:      policy.ID,
				PolicyVersion: policy.Version,
				LevelName:     level.Name,
				Sequence:      level.Sequence,
				Status:        domain.RequestStatusNew,
				Approvers:     approvers,
				Group:         level.Group,
				RequestedBy:   requestedBy,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
		}

		if level.IsAllMode() {
			for _, approver := range approvers {
				requests = append(requests, newRequest([]string{approver}))
			}
		} else {
			requests = append(requests, newRequest(approvers))
		}
	}

	if len(requests) == 0 {
		return requests, nil
	}

	first := requests[0].Sequence
	for _, r := range requests {
		if r.Sequence == first {
			r.Promote()
		}
	}

	if err := s.repo.BulkInsert(ctx, requests); err != nil {
		return nil, fmt.Errorf("inserting approval requests: %w", err)
	}
	return requests, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	if id == "" {
		return nil, ErrRequestIDEmptyParam
	}
	return s.repo.GetByID(ctx, id)
}

// ListByDocument returns the document requests ordered by sequence
func (s *Service) ListByDocument(ctx context.Context, ref domain.DocumentRef) ([]*domain.ApprovalRequest, error) {
	requests, err := s.repo.Find(ctx, domain.ListApprovalRequestsFilter{
		DocumentModel: ref.Model,
		DocumentID:    ref.ID,
	})
	if err != nil {
		return nil, err
	}
	sortRequests(requests)
	return requests, nil
}

func (s *Service) Find(ctx context.Context, filter domain.ListApprovalRequestsFilter) ([]*domain.ApprovalRequest, error) {
	return s.repo.Find(ctx, filter)
}

// ListPending returns every pending request across documents
func (s *Service) ListPending(ctx context.Context) ([]*domain.ApprovalRequest, error) {
	return s.repo.Find(ctx, domain.ListApprovalRequestsFilter{
		Statuses: []string{domain.RequestStatusPending},
	})
}

// RecordDecision applies an approve or reject action to a pending request.
// Approving the last request of a sequence promotes the next sequence.
// Rejecting clears approval stamps and sends the other pending requests of the level back to new.
func (s *Service) RecordDecision(ctx context.Context, action domain.ApprovalAction) (*DecisionResult, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}

	request, err := s.repo.GetByID(ctx, action.RequestID)
	if err != nil {
		return nil, err
	}
	if err := checkRequestStatus(request.Status); err != nil {
		return nil, err
	}

	allowed, err := s.isAllowedToDecide(ctx, request, action.Actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %q on request %q", ErrActionForbidden, action.Actor, request.ID)
	}

	requests, err := s.ListByDocument(ctx, request.Ref())
	if err != nil {
		return nil, fmt.Errorf("listing document requests: %w", err)
	}
	// work on the instance belonging to the document list so the result stays consistent
	for _, r := range requests {
		if r.ID == request.ID {
			request = r
			break
		}
	}

	now := s.TimeNow()
	result := &DecisionResult{Request: request, Requests: requests}
	request.Attachments = append(request.Attachments, action.Attachments...)

	changed := []*domain.ApprovalRequest{request}
	switch action.Action {
	case domain.ApprovalActionApprove:
		request.Approve(action.Actor, now)
		result.Promoted = promoteNextSequence(requests, request.Sequence)
		result.Completed = allApproved(requests)
		changed = append(changed, result.Promoted...)
	case domain.ApprovalActionReject:
		request.Reject(action.Actor, action.Reason, now)
		result.Rejected = true
		for _, r := range requests {
			if r.ID == request.ID {
				r.ClearApproval()
				continue
			}
			touched := r.ApprovedBy != "" || r.ApproveDate != nil
			if r.Status == domain.RequestStatusPending {
				// nobody can act on the rest of the level once the document is rejected
				r.Status = domain.RequestStatusNew
				touched = true
			}
			r.ClearApproval()
			if touched {
				changed = append(changed, r)
			}
		}
	}

	for _, r := range changed {
		r.UpdatedAt = now
	}
	if err := s.repo.BulkUpdate(ctx, changed); err != nil {
		return nil, fmt.Errorf("updating approval requests: %w", err)
	}

	return result, nil
}

// EnsureAllApproved fails with ErrPendingApprovalExists unless every request of the document is approved
func (s *Service) EnsureAllApproved(ctx context.Context, ref domain.DocumentRef) error {
	requests, err := s.ListByDocument(ctx, ref)
	if err != nil {
		return err
	}
	for _, r := range requests {
		if r.Status != domain.RequestStatusApproved {
			return fmt.Errorf("%w: level %q is %s", ErrPendingApprovalExists, r.LevelName, r.Status)
		}
	}
	return nil
}

// RemoveRequests deletes every request of the document and returns them with the recall status
func (s *Service) RemoveRequests(ctx context.Context, ref domain.DocumentRef) ([]*domain.ApprovalRequest, error) {
	requests, err := s.ListByDocument(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return requests, nil
	}
	if err := s.repo.DeleteByDocument(ctx, ref); err != nil {
		return nil, fmt.Errorf("deleting approval requests: %w", err)
	}
	for _, r := range requests {
		r.Status = domain.RequestStatusRecall
	}
	return requests, nil
}

func (s *Service) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return s.repo.UpdateLastReminderDate(ctx, ids, at)
}

// AddAttachment stores supporting evidence on a request. Approvers and the requester may attach.
func (s *Service) AddAttachment(ctx context.Context, requestID, actor string, attachment domain.Attachment) (*domain.ApprovalRequest, error) {
	request, err := s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsExistingApprover(actor) && !strings.EqualFold(request.RequestedBy, actor) {
		return nil, fmt.Errorf("%w: %q on request %q", ErrActionForbidden, actor, request.ID)
	}
	request.Attachments = append(request.Attachments, attachment)
	request.UpdatedAt = s.TimeNow()
	if err := s.repo.BulkUpdate(ctx, []*domain.ApprovalRequest{request}); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *Service) isAllowedToDecide(ctx context.Context, request *domain.ApprovalRequest, actor string) (bool, error) {
	if request.IsExistingApprover(actor) {
		return true, nil
	}
	if s.adminGroup == "" || s.groups == nil {
		return false, nil
	}
	admins, err := s.groups.GetMembers(ctx, s.adminGroup)
	if err != nil {
		return false, fmt.Errorf("loading admin group %q: %w", s.adminGroup, err)
	}
	return slices.ContainsFold(admins, actor), nil
}

func checkRequestStatus(status string) error {
	switch status {
	case domain.RequestStatusPending:
		return nil
	case domain.RequestStatusApproved, domain.RequestStatusRejected:
		return fmt.Errorf("%w: %q", ErrRequestAlreadyDecided, status)
	default:
		return fmt.Errorf("%w: %q", ErrRequestNotActionable, status)
	}
}

// promoteNextSequence moves the next waiting sequence to pending once sequence is fully approved
func promoteNextSequence(requests []*domain.ApprovalRequest, sequence int) []*domain.ApprovalRequest {
	for _, r := range requests {
		if r.Sequence == sequence && r.Status != domain.RequestStatusApproved {
			return nil
		}
	}

	next, found := 0, false
	for _, r := range requests {
		if r.Status == domain.RequestStatusNew && r.Sequence > sequence && (!found || r.Sequence < next) {
			next, found = r.Sequence, true
		}
	}
	if !found {
		return nil
	}

	var promoted []*domain.ApprovalRequest
	for _, r := range requests {
		if r.Sequence == next && r.Status == domain.RequestStatusNew {
			r.Promote()
			promoted = append(promoted, r)
		}
	}
	return promoted
}

func allApproved(requests []*domain.ApprovalRequest) bool {
	for _, r := range requests {
		if r.Status != domain.RequestStatusApproved {
			return false
		}
	}
	return len(requests) > 0
}

func sortRequests(requests []*domain.ApprovalRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		if requests[i].Sequence != requests[j].Sequence {
			return requests[i].Sequence < requests[j].Sequence
		}
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
}


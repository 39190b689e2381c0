package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	RequestStatusNew      = "new"
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
	// RequestStatusRecall is only reported for requests removed by a recall or a reset
	RequestStatusRecall = "recall"
)

type Attachment struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url" yaml:"url" validate:"required,url"`
}

// ApprovalRequest is one pending or decided approval unit for one level of one document
type ApprovalRequest struct {
	ID            string `json:"id" yaml:"id"`
	DocumentModel string `json:"document_model" yaml:"document_model"`
	DocumentID    string `json:"document_id" yaml:"document_id"`
	PolicyID      string `json:"policy_id" yaml:"policy_id"`
	PolicyVersion uint   `json:"policy_version" yaml:"policy_version"`
	LevelName     string `json:"level_name" yaml:"level_name"`
	Sequence      int    `json:"sequence" yaml:"sequence"`
	Status        string `json:"status" yaml:"status"`

	Approvers []string `json:"approvers" yaml:"approvers"`
	Group     string   `json:"group,omitempty" yaml:"group,omitempty"`

	RequestedBy string     `json:"requested_by" yaml:"requested_by"`
	ApprovedBy  string     `json:"approved_by,omitempty" yaml:"approved_by,omitempty"`
	ApproveDate *time.Time `json:"approve_date,omitempty" yaml:"approve_date,omitempty"`
	RejectedBy  string     `json:"rejected_by,omitempty" yaml:"rejected_by,omitempty"`
	RejectDate  *time.Time `json:"reject_date,omitempty" yaml:"reject_date,omitempty"`
	Reason      string     `json:"reason,omitempty" yaml:"reason,omitempty"`

	Attachments      []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	LastReminderDate *time.Time   `json:"last_reminder_date,omitempty" yaml:"last_reminder_date,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func (r *ApprovalRequest) Ref() DocumentRef {
	return DocumentRef{Model: r.DocumentModel, ID: r.DocumentID}
}

func (r *ApprovalRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

func (r *ApprovalRequest) IsDecided() bool {
	return r.Status == RequestStatusApproved || r.Status == RequestStatusRejected
}

func (r *ApprovalRequest) IsExistingApprover(user string) bool {
	for _, v := range r.Approvers {
		if strings.EqualFold(user, v) {
			return true
		}
	}
	return false
}

// Promote activates a request once every earlier level is approved
func (r *ApprovalRequest) Promote() {
	r.Status = RequestStatusPending
}

func (r *ApprovalRequest) Approve(actor string, at time.Time) {
	r.Status = RequestStatusApproved
	r.ApprovedBy = actor
	r.ApproveDate = &at
}

func (r *ApprovalRequest) Reject(actor, reason string, at time.Time) {
	r.Status = RequestStatusRejected
	r.RejectedBy = actor
	r.RejectDate = &at
	r.Reason = reason
}

// ClearApproval drops approver and approval date, keeping the status
func (r *ApprovalRequest) ClearApproval() {
	r.ApprovedBy = ""
	r.ApproveDate = nil
}

// ReminderBase is the instant the next reminder period is counted from
func (r *ApprovalRequest) ReminderBase() time.Time {
	if r.LastReminderDate != nil {
		return *r.LastReminderDate
	}
	return r.CreatedAt
}

type ApprovalActionType string

const (
	ApprovalActionApprove ApprovalActionType = "approve"
	ApprovalActionReject  ApprovalActionType = "reject"
)

type ApprovalAction struct {
	RequestID   string             `json:"request_id" validate:"required"`
	Actor       string             `json:"actor" validate:"required"`
	Action      ApprovalActionType `json:"action" validate:"required,oneof=approve reject"`
	Reason      string             `json:"reason,omitempty"`
	Attachments []Attachment       `json:"attachments,omitempty" validate:"omitempty,dive"`
}

func (a ApprovalAction) Validate() error {
	if a.Actor == "" {
		return ErrEmptyActor
	}
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidApprovalAction, err)
	}
	if a.Action == ApprovalActionReject && strings.TrimSpace(a.Reason) == "" {
		return ErrRejectReasonRequired
	}
	return nil
}

type ListApprovalRequestsFilter struct {
	DocumentModel string   `mapstructure:"document_model" validate:"omitempty"`
	DocumentID    string   `mapstructure:"document_id" validate:"omitempty"`
	Statuses      []string `mapstructure:"statuses" validate:"omitempty,min=1"`
	Approver      string   `mapstructure:"approver" validate:"omitempty"`
	PolicyIDs     []string `mapstructure:"policy_ids" validate:"omitempty,min=1"`
	Size          int      `mapstructure:"size" validate:"omitempty"`
	Offset        int      `mapstructure:"offset" validate:"omitempty"`
}

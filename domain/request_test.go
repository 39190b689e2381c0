package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goto/signoff/domain"
)

func TestApprovalRequest_IsExistingApprover(t *testing.T) {
	r := &domain.ApprovalRequest{
		Approvers: []string{"user1@example.com", "user2@example.com", "user3@example.com"},
	}

	tests := []struct {
		name     string
		approver string
		want     bool
	}{
		{
			name:     "existing approver",
			approver: "user2@example.com",
			want:     true,
		},
		{
			name:     "non-existing approver",
			approver: "user4@example.com",
			want:     false,
		},
		{
			name:     "existing approver with upper case email",
			approver: "USER3@EXAMPLE.COM",
			want:     true,
		},
		{
			name:     "existing approver with mixed case email",
			approver: "UsEr2@ExAmPlE.CoM",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IsExistingApprover(tt.approver))
		})
	}
}

func TestApprovalRequest_Lifecycle(t *testing.T) {
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	r := &domain.ApprovalRequest{Status: domain.RequestStatusNew, CreatedAt: now}

	assert.False(t, r.IsPending())
	r.Promote()
	assert.True(t, r.IsPending())
	assert.False(t, r.IsDecided())

	r.Approve("ana@example.com", now)
	assert.True(t, r.IsDecided())
	assert.Equal(t, "ana@example.com", r.ApprovedBy)
	assert.Equal(t, now, *r.ApproveDate)

	r.ClearApproval()
	assert.Empty(t, r.ApprovedBy)
	assert.Nil(t, r.ApproveDate)
	assert.Equal(t, domain.RequestStatusApproved, r.Status)

	r.Reject("bo@example.com", "over budget", now)
	assert.Equal(t, domain.RequestStatusRejected, r.Status)
	assert.Equal(t, "over budget", r.Reason)
}

func TestApprovalRequest_ReminderBase(t *testing.T) {
	created := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	r := &domain.ApprovalRequest{CreatedAt: created}
	assert.Equal(t, created, r.ReminderBase())

	reminded := created.Add(25 * time.Hour)
	r.LastReminderDate = &reminded
	assert.Equal(t, reminded, r.ReminderBase())
}

func TestApprovalAction_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		action      domain.ApprovalAction
		expectedErr error
	}{
		{
			name:        "missing actor",
			action:      domain.ApprovalAction{RequestID: "r1", Action: domain.ApprovalActionApprove},
			expectedErr: domain.ErrEmptyActor,
		},
		{
			name:        "unknown action",
			action:      domain.ApprovalAction{RequestID: "r1", Actor: "ana@example.com", Action: "escalate"},
			expectedErr: domain.ErrInvalidApprovalAction,
		},
		{
			name:        "reject without reason",
			action:      domain.ApprovalAction{RequestID: "r1", Actor: "ana@example.com", Action: domain.ApprovalActionReject, Reason: "  "},
			expectedErr: domain.ErrRejectReasonRequired,
		},
		{
			name:   "valid approve",
			action: domain.ApprovalAction{RequestID: "r1", Actor: "ana@example.com", Action: domain.ApprovalActionApprove},
		},
		{
			name:   "valid reject",
			action: domain.ApprovalAction{RequestID: "r1", Actor: "ana@example.com", Action: domain.ApprovalActionReject, Reason: "no budget"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.action.Validate()
			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

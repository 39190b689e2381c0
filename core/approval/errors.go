package approval

import "errors"

var (
	ErrRequestIDEmptyParam   = errors.New("approval request id is required")
	ErrRequestNotFound       = errors.New("approval request not found")
	ErrPolicyInactive        = errors.New("policy has no approval level")
	ErrApproversNotFound     = errors.New("no approver resolved for level")
	ErrRequestAlreadyDecided = errors.New("approval request is already decided")
	ErrRequestNotActionable  = errors.New("approval request is not pending")
	ErrActionForbidden       = errors.New("user is not allowed to act on this approval request")
	ErrPendingApprovalExists = errors.New("document still has approval requests waiting")
)

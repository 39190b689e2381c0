package resolver

import "errors"

var (
	ErrGroupNotFound          = errors.New("group not found")
	ErrUnitApproverNotFound   = errors.New("no approver assigned to the role in the document unit")
	ErrFailedToGetApprovers   = errors.New("failed to get approvers")
	ErrUnexpectedApproverType = errors.New("unexpected approver type")
	ErrUnsupportedStrategy    = errors.New("unsupported approver strategy")
)

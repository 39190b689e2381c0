package workflow

import "errors"

var (
	ErrDocumentNotFound         = errors.New("document not found")
	ErrDocumentStoreNotFound    = errors.New("no document store registered for model")
	ErrDocumentStateInvalid     = errors.New("document state does not allow this action")
	ErrDocumentNotEligible      = errors.New("document is not eligible for approval")
	ErrDocumentNotUnderApproval = errors.New("document is not under approval")
	ErrRecallForbidden          = errors.New("only the requester or the creator can recall the approval request")
)

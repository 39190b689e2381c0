package domain

import "errors"

var (
	ErrDuplicateLevelSequence = errors.New("duplicate level sequence")
	ErrDuplicateLevelName     = errors.New("duplicate level name")
	ErrReminderConfigInvalid  = errors.New("invalid reminder configuration")
	ErrCalendarInvalid        = errors.New("invalid working calendar")

	ErrDocumentHasNoLines       = errors.New("document has no lines")
	ErrDocumentZeroAmount       = errors.New("document total must be greater than zero")
	ErrCurrencyConverterMissing = errors.New("currency converter is not configured")
	ErrDocumentRefInvalid       = errors.New("document reference needs a model and an id")

	ErrEmptyActor            = errors.New("actor can't be empty")
	ErrInvalidApprovalAction = errors.New("invalid approval action")
	ErrRejectReasonRequired  = errors.New("a reason is required to reject")
)

package policy

import "errors"

var (
	ErrPolicyNotFound      = errors.New("policy not found")
	ErrPolicyAlreadyExists = errors.New("policy already exists")
	ErrEmptyIDParam        = errors.New("policy id can't be empty")
	ErrInvalidPolicy       = errors.New("invalid policy")
	ErrEmptyModel          = errors.New("document model can't be empty")
)

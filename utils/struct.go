package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var structValidator = validator.New()

// ValidateStruct runs the `validate` tags of v.
func ValidateStruct(v interface{}) error {
	return structValidator.Struct(v)
}

func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goto/signoff/utils"
)

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Name string `validate:"required"`
	}
	assert.Error(t, utils.ValidateStruct(sample{}))
	assert.NoError(t, utils.ValidateStruct(sample{Name: "ok"}))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, utils.IsValidUUID("0f0c8a5e-2d9b-4e8e-9c7a-2d8f1d0a5b11"))
	assert.False(t, utils.IsValidUUID("PO-1"))
}

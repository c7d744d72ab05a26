package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=13"`
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, ValidateStruct(&signup{Name: "Ada", Email: "ada@example.com", Age: 30}))
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(signup{Email: "nope", Age: 3})
	require.Error(t, err)

	var fields Errors
	require.True(t, errors.As(err, &fields))
	require.Len(t, fields, 3)
	assert.Equal(t, "required", fields[0].Tag)
	assert.Equal(t, "name is required", fields[0].Message)
	assert.Equal(t, "email must be a valid email address", fields[1].Message)
	assert.Contains(t, err.Error(), "age must be greater than or equal to 13")
}

func TestValidateStruct_RejectsNonStruct(t *testing.T) {
	assert.Error(t, ValidateStruct("text"))
	assert.NoError(t, ValidateStruct(nil))
}

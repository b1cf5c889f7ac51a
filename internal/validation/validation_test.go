package validation

import (
	"testing"

	domainErrors "piclips/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Err(t *testing.T) {
	v := New()
	assert.NoError(t, v.Err())

	v.Required("title", "  ")
	v.OneOf("privacy", "friends", "public", "private")
	v.MaxLength("title", "later errors for the same field are ignored", 3)

	err := v.Err()
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	assert.EqualError(t, err, "privacy must be one of public, private; title is required")
}

func TestValidator_Password(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"secret12", true},
		{"short1", false},
		{"onlyletters", false},
		{"1234567890", false},
	}
	for _, tt := range tests {
		v := New()
		v.Password("password", tt.password)
		assert.Equal(t, tt.valid, v.Valid(), tt.password)
	}
}

func TestStruct(t *testing.T) {
	type input struct {
		Title   string `json:"title" validate:"required,max=5"`
		Privacy string `json:"privacy" validate:"omitempty,oneof=public private"`
		Amount  int64  `json:"amount" validate:"gt=0"`
	}

	assert.NoError(t, Struct(input{Title: "ok", Amount: 1}))

	err := Struct(input{Title: "too long", Privacy: "secret", Amount: 0})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	assert.EqualError(t, err, "amount must be greater than 0; privacy must be one of public, private; title must not be more than 5 characters long")
}

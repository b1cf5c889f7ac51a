package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesOnCode(t *testing.T) {
	derived := ErrValidation.WithMessage("title: required")

	assert.True(t, stderrors.Is(derived, ErrValidation))
	assert.False(t, stderrors.Is(derived, ErrInvalidTipAmount))
	assert.Equal(t, "title: required", derived.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindBusinessRule, KindOf(ErrInsufficientTokens))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", ErrVideoNotFound)))
	assert.Equal(t, KindInternal, KindOf(stderrors.New("connection refused")))
	assert.Equal(t, KindValidation, KindOf(Validation("content: required")))
}

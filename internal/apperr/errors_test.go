package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("register: %w", &ValidationError{Fields: map[string]string{
		"phone": "is required",
		"email": "must be a valid email",
	}})

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "register: validation failed: email: must be a valid email; phone: is required", err.Error())
	assert.Equal(t, "is required", Fields(err)["phone"])
}

func TestNotFoundAndInvariant(t *testing.T) {
	nf := NotFound("user")
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.Equal(t, "user not found", nf.Error())

	inv := Invariant("plan %q has no price", "weekly")
	assert.True(t, errors.Is(inv, ErrInvariant))
	assert.Equal(t, `invariant violation: plan "weekly" has no price`, inv.Error())
	assert.Nil(t, Fields(inv))
}

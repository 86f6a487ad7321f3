package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/storefront/internal/core/fault"
)

func TestFault_Error(t *testing.T) {
	err := fault.Validation("invalid_order_item", "quantity must be positive")
	assert.EqualError(t, err, "invalid_order_item: quantity must be positive")

	withDetail := err.WithDetail("item at index %d", 2)
	assert.EqualError(t, withDetail, "invalid_order_item: quantity must be positive (item at index 2)")
	// The original is untouched.
	assert.Empty(t, err.Detail)
}

func TestFault_Is(t *testing.T) {
	err := fault.NotFound("order_not_found", "order abc not found")
	wrapped := fmt.Errorf("loading order: %w", err)

	assert.True(t, errors.Is(wrapped, fault.NotFound("order_not_found", "different message")))
	assert.False(t, errors.Is(wrapped, fault.NotFound("user_not_found", "")))
	assert.False(t, errors.Is(wrapped, fault.Conflict("order_not_found", "")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, fault.KindConflict, fault.KindOf(fault.Conflict("email_taken", "taken")))
	assert.Equal(t, fault.KindForbidden, fault.KindOf(fmt.Errorf("wrapped: %w", fault.Forbidden("invalid_credentials", "no"))))
	assert.Equal(t, fault.Kind(""), fault.KindOf(errors.New("plain")))

	assert.True(t, fault.IsKind(fault.Validation("bad", "bad"), fault.KindValidation))
	assert.False(t, fault.IsKind(nil, fault.KindValidation))
}

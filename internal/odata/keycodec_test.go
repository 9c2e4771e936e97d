package odata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeKey_Deterministic(t *testing.T) {
	a := EncodeKey("backend-listing-key-123")
	b := EncodeKey("backend-listing-key-123")
	assert.Equal(t, a, b)
}

func TestEncodeKey_DecimalDigitsOnly(t *testing.T) {
	encoded := EncodeKey("another-backend-key")
	for _, r := range encoded {
		assert.True(t, r >= '0' && r <= '9', "expected decimal digit, got %q", r)
	}
}

func TestEncodeKey_DifferentInputsDifferentOutputs(t *testing.T) {
	a := EncodeKey("key-one")
	b := EncodeKey("key-two")
	assert.NotEqual(t, a, b)
}

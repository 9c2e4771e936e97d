package dbgateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendError_UnwrapsToUnderlyingError(t *testing.T) {
	err := &BackendError{Op: "query", Err: ErrNotConnected}
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.Contains(t, err.Error(), "dbgateway: query:")
}

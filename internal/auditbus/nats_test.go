package auditbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_EmptyURLIsNoOp(t *testing.T) {
	bus, err := Connect("")
	require.NoError(t, err)

	// Publish and Close must not panic on a no-op bus.
	bus.Publish("Property", "list", 200, 5*time.Millisecond)
	bus.Close()
}

func TestSubjectFor_UsesResourceName(t *testing.T) {
	assert.Equal(t, "odata.request.Property", subjectFor("Property"))
}

package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMetadata_ReturnsCSDL(t *testing.T) {
	server, _ := newTestServer()

	rec := doRequest(server, http.MethodGet, "/odata/$metadata", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `Version="4.0"`)
	assert.Contains(t, rec.Body.String(), `EntityType Name="Property"`)
	assert.Contains(t, rec.Body.String(), `Name="BedroomsTotal"`)
}

func TestHandleServiceDocument_ListsEntitySets(t *testing.T) {
	server, _ := newTestServer()

	rec := doRequest(server, http.MethodGet, "/odata/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Property"`)
	assert.Contains(t, rec.Body.String(), `"Member"`)
	assert.Contains(t, rec.Body.String(), `"Office"`)
}

package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
)

func TestHandleRedirect_FoundListingRedirects(t *testing.T) {
	server, _ := newTestServer()
	server.gateway.(*fakeGateway).queryResult = &dbgateway.Result{
		Columns: []string{"LISTING_URL"},
		Rows:    [][]interface{}{{"http://example.com/listing/123"}},
	}

	rec := doRequest(server, http.MethodGet, "/r/MLS12345", "", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://example.com/listing/123", rec.Header().Get("Location"))
}

func TestHandleRedirect_UnknownMlsNumberIs404(t *testing.T) {
	server, _ := newTestServer()

	rec := doRequest(server, http.MethodGet, "/r/DOESNOTEXIST", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

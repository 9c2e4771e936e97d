package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
)

func TestHandleList_RequiresBearerToken(t *testing.T) {
	server, _ := newTestServer()

	rec := doRequest(server, http.MethodGet, "/odata/Property", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleList_ValidTokenReturnsEnvelope(t *testing.T) {
	server, _ := newTestServer()
	server.gateway.(*fakeGateway).queryResult = &dbgateway.Result{
		Columns: []string{"IDCLISTINGKEY", "CITY", "PHOTOSXML"},
		Rows: [][]interface{}{
			{"backend-1", "Los Angeles", ""},
		},
	}

	token := issueTestToken(server)
	rec := doRequest(server, http.MethodGet, "/odata/Property", "", map[string]string{
		"Authorization": "Bearer " + token,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"@odata.context"`)
	assert.Equal(t, "4.0", rec.Header().Get("OData-Version"))
}

func TestHandleGet_UnknownKeyIsNotFound(t *testing.T) {
	server, _ := newTestServer()
	token := issueTestToken(server)

	rec := doRequest(server, http.MethodGet, "/odata/Member(999)", "", map[string]string{
		"Authorization": "Bearer " + token,
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NotFound")
}

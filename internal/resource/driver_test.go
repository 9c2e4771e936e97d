package resource

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
	"github.com/summitmls/reso-odata-gateway/internal/odata"
)

// fakeGateway is an in-process stand-in for dbgateway.Gateway keyed by
// a substring match against the query text, so a test can script
// distinct responses for the data query, the count query, and any
// $expand follow-up query without a real database.
type fakeGateway struct {
	responses []fakeResponse
	queries   []string
}

type fakeResponse struct {
	match  string
	result *dbgateway.Result
	err    error
}

func (f *fakeGateway) Query(ctx context.Context, query string, params map[string]interface{}) (*dbgateway.Result, error) {
	f.queries = append(f.queries, query)
	for _, r := range f.responses {
		if strings.Contains(query, r.match) {
			return r.result, r.err
		}
	}
	return &dbgateway.Result{}, nil
}

func (f *fakeGateway) QueryRow(ctx context.Context, query string, params map[string]interface{}) (*dbgateway.Result, error) {
	return f.Query(ctx, query, params)
}

func (f *fakeGateway) Ping(ctx context.Context) error { return nil }
func (f *fakeGateway) Close() error                   { return nil }

// fakeKeyAlias is an in-process KeyAliasStore.
type fakeKeyAlias struct {
	aliases map[string]string
}

func newFakeKeyAlias() *fakeKeyAlias {
	return &fakeKeyAlias{aliases: make(map[string]string)}
}

func (f *fakeKeyAlias) UpsertKeyAlias(ctx context.Context, encodedKey, backendKey string) {
	f.aliases[encodedKey] = backendKey
}

func (f *fakeKeyAlias) ResolveKeyAlias(ctx context.Context, encodedKey string) (string, error) {
	backendKey, ok := f.aliases[encodedKey]
	if !ok {
		return "", ErrNotFound
	}
	return backendKey, nil
}

func TestDriver_List_ExpandsAttachesRelatedEntity(t *testing.T) {
	gw := &fakeGateway{
		responses: []fakeResponse{
			{
				match: "FROM PROPERTY_VIEW",
				result: &dbgateway.Result{
					Columns: []string{"IDCLISTINGKEY", "CITY", "IDCLISTAGENTKEY", "PHOTOSXML"},
					Rows: [][]interface{}{
						{"backend-key-1", "Los Angeles", int32(100), ""},
					},
				},
			},
			{
				match: "FROM AGENT",
				result: &dbgateway.Result{
					Columns: []string{"AGENTKEY", "GIVENNAME", "SURNAME"},
					Rows: [][]interface{}{
						{int32(100), "John", "Agent"},
					},
				},
			},
		},
	}

	driver := NewDriver(gw, newFakeKeyAlias())
	resp, err := driver.List(context.Background(), PropertyConfig, odata.RawQuery{Expand: "ListAgent"}, "http://host/odata/Property")
	require.NoError(t, err)

	rows, ok := resp.Value.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)

	row := rows[0].(map[string]interface{})
	agent, ok := row["ListAgent"].(map[string]interface{})
	require.True(t, ok, "expected ListAgent to be attached")
	assert.Equal(t, int32(100), agent["MemberKey"])
	assert.Equal(t, "John", agent["MemberFirstName"])
}

func TestDriver_List_InvalidExpandIsParseError(t *testing.T) {
	gw := &fakeGateway{}
	driver := NewDriver(gw, newFakeKeyAlias())

	_, err := driver.List(context.Background(), PropertyConfig, odata.RawQuery{Expand: "InvalidExpand"}, "http://host/odata/Property")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid $expand")
}

func TestDriver_List_CountAndNextLink(t *testing.T) {
	gw := &fakeGateway{
		responses: []fakeResponse{
			{
				match: "SELECT COUNT(*)",
				result: &dbgateway.Result{
					Columns: []string{"total"},
					Rows:    [][]interface{}{{int64(100)}},
				},
			},
		},
	}

	driver := NewDriver(gw, newFakeKeyAlias())
	resp, err := driver.List(context.Background(), PropertyConfig, odata.RawQuery{Top: "10", Skip: "0", Count: "true"}, "http://host/odata/Property")
	require.NoError(t, err)
	require.NotNil(t, resp.Count)
	assert.Equal(t, int64(100), *resp.Count)
	assert.Contains(t, resp.NextLink, "%24skip=10")
}

func TestDriver_Get_EncodesListingKeyAndSetsContext(t *testing.T) {
	backendKey := "backend-key-1"
	encodedKey := odata.EncodeKey(backendKey)

	gw := &fakeGateway{
		responses: []fakeResponse{
			{
				match: "FROM PROPERTY_VIEW",
				result: &dbgateway.Result{
					Columns: []string{"IDCLISTINGKEY", "CITY", "PHOTOSXML"},
					Rows: [][]interface{}{
						{backendKey, "Los Angeles", "<URL>http://img/1.jpg</URL>"},
					},
				},
			},
		},
	}

	keyAlias := newFakeKeyAlias()
	keyAlias.aliases[encodedKey] = backendKey
	driver := NewDriver(gw, keyAlias)

	entity, err := driver.Get(context.Background(), PropertyConfig, encodedKey, "", "http://host/odata/Property")
	require.NoError(t, err)

	assert.Equal(t, encodedKey, entity["ListingKey"])
	assert.Equal(t, "http://host/odata/$metadata#Property/$entity", entity["@odata.context"])

	media, ok := entity["Media"].([]MediaItem)
	require.True(t, ok)
	require.Len(t, media, 1)
	assert.Equal(t, "http://img/1.jpg", media[0].MediaURL)
}

func TestDriver_Get_UnknownEncodedKeyIsNotFound(t *testing.T) {
	gw := &fakeGateway{}
	driver := NewDriver(gw, newFakeKeyAlias())

	_, err := driver.Get(context.Background(), PropertyConfig, "999999999999999", "", "http://host/odata/Property")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDriver_Get_MissingRowIsNotFound(t *testing.T) {
	gw := &fakeGateway{}
	driver := NewDriver(gw, newFakeKeyAlias())

	_, err := driver.Get(context.Background(), MemberConfig, "42", "", "http://host/odata/Member")
	require.ErrorIs(t, err, ErrNotFound)
}

package odata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitmls/reso-odata-gateway/internal/reso"
)

func TestCompileFilter_SimpleEquality(t *testing.T) {
	compiled, err := CompileFilter(`City eq 'Los Angeles'`, reso.Property)
	require.NoError(t, err)
	assert.Equal(t, "CITY = @filter0", compiled.SQL)
	assert.Equal(t, map[string]interface{}{"filter0": "Los Angeles"}, compiled.Params)
}

func TestCompileFilter_AndConjunction(t *testing.T) {
	compiled, err := CompileFilter(`ListPrice gt 500000 and City eq 'LA'`, reso.Property)
	require.NoError(t, err)
	assert.Equal(t, "IDCLISTPRICE > @filter0 AND CITY = @filter1", compiled.SQL)
	assert.Equal(t, float64(500000), compiled.Params["filter0"])
	assert.Equal(t, "LA", compiled.Params["filter1"])
}

func TestCompileFilter_ContainsFunction(t *testing.T) {
	compiled, err := CompileFilter(`contains(PublicRemarks,'pool')`, reso.Property)
	require.NoError(t, err)
	assert.Equal(t, "PUBLICREMARKS LIKE @filter0", compiled.SQL)
	assert.Equal(t, "%pool%", compiled.Params["filter0"])
}

func TestCompileFilter_NotOverGroup(t *testing.T) {
	compiled, err := CompileFilter(`not (StandardStatus eq 'Closed')`, reso.Property)
	require.NoError(t, err)
	assert.Equal(t, "NOT (STANDARDSTATUS = @filter0)", compiled.SQL)
}

func TestCompileFilter_UnknownField(t *testing.T) {
	_, err := CompileFilter(`Bogus eq 'x'`, reso.Property)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown field")
}

func TestCompileFilter_BadOperatorToken(t *testing.T) {
	_, err := CompileFilter(`City = 'x'`, reso.Property)
	require.Error(t, err)
}

func TestCompileFilter_InjectionPayloadStaysParameterized(t *testing.T) {
	compiled, err := CompileFilter(`City eq '; DROP TABLE users; --'`, reso.Property)
	require.NoError(t, err)
	assert.NotContains(t, compiled.SQL, "DROP TABLE")
	assert.Equal(t, "; DROP TABLE users; --", compiled.Params["filter0"])
}

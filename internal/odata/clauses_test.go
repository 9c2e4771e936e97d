package odata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitmls/reso-odata-gateway/internal/reso"
)

func TestParseSelect_Default(t *testing.T) {
	cols, err := ParseSelect("", reso.Member)
	require.NoError(t, err)
	assert.Equal(t, reso.Member.DeclaredColumns(), cols)
}

func TestParseSelect_ValidSubset(t *testing.T) {
	cols, err := ParseSelect("ListingKey, City", reso.Property)
	require.NoError(t, err)
	assert.Equal(t, []string{"IDCLISTINGKEY", "CITY"}, cols)
}

func TestParseSelect_RejectsInjectionPayload(t *testing.T) {
	_, err := ParseSelect("ListingKey, '; DROP TABLE users; --", reso.Property)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid field in $select")
}

func TestParseOrderBy_DefaultDirection(t *testing.T) {
	terms, err := ParseOrderBy("City", reso.Property)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "CITY", terms[0].Column)
	assert.Equal(t, "ASC", terms[0].Direction)
}

func TestParseOrderBy_ExplicitDesc(t *testing.T) {
	terms, err := ParseOrderBy("ListPrice desc, City asc", reso.Property)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "DESC", terms[0].Direction)
	assert.Equal(t, "ASC", terms[1].Direction)
}

func TestParseExpand_AllowedName(t *testing.T) {
	names, err := ParseExpand("ListAgent", reso.Property)
	require.NoError(t, err)
	assert.Equal(t, []string{"ListAgent"}, names)
}

func TestParseExpand_RejectsUnknownTarget(t *testing.T) {
	_, err := ParseExpand("InvalidExpand", reso.Property)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid $expand")
}

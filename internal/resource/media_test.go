package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMedia_ExtractsURLsInOrder(t *testing.T) {
	xml := `<Photos><Photo><URL>http://img/1.jpg</URL></Photo><Photo><URL>http://img/2.jpg</URL></Photo></Photos>`
	items := parseMedia(xml, "encoded-key")

	require := assert.New(t)
	require.Len(items, 2)
	require.Equal("http://img/1.jpg", items[0].MediaURL)
	require.Equal(1, items[0].Order)
	require.Equal("http://img/2.jpg", items[1].MediaURL)
	require.Equal(2, items[1].Order)
	require.Equal("encoded-key", items[0].ResourceRecordKey)
	require.NotEmpty(items[0].MediaKey)
	require.NotEqual(items[0].MediaKey, items[1].MediaKey)
}

func TestParseMedia_EmptyXMLYieldsEmptySliceNotNil(t *testing.T) {
	items := parseMedia("", "encoded-key")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

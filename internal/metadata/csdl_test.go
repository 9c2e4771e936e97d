package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCSDL_ContainsExpectedDeclarations(t *testing.T) {
	xml := BuildCSDL()

	assert.Contains(t, xml, `Version="4.0"`)
	assert.Contains(t, xml, `EntityType Name="Property"`)
	assert.Contains(t, xml, `Name="ListingKey"`)
	assert.Contains(t, xml, `Name="BedroomsTotal" Type="Edm.Int32"`)
	assert.Contains(t, xml, `Collection(org.reso.metadata.Media)`)
	assert.Contains(t, xml, `EntitySet Name="Member"`)
	assert.Contains(t, xml, `EntitySet Name="Office"`)
}

func TestBuildServiceDocument_ListsThreeEntitySets(t *testing.T) {
	doc := BuildServiceDocument("http://host/odata")
	assert.Equal(t, "http://host/odata/$metadata", doc.Context)
	assert.Len(t, doc.Value, 3)
}

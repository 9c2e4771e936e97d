package reso

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFieldMap_PanicsOnDuplicateName(t *testing.T) {
	assert.Panics(t, func() {
		NewFieldMap("T", "A", nil, []Field{
			{RESOName: "A", Column: "COL_A"},
			{RESOName: "A", Column: "COL_B"},
		})
	})
}

func TestNewFieldMap_PanicsOnDuplicateColumn(t *testing.T) {
	assert.Panics(t, func() {
		NewFieldMap("T", "A", nil, []Field{
			{RESOName: "A", Column: "COL_A"},
			{RESOName: "B", Column: "COL_A"},
		})
	})
}

func TestNewFieldMap_PanicsWhenKeyFieldMissing(t *testing.T) {
	assert.Panics(t, func() {
		NewFieldMap("T", "Missing", nil, []Field{
			{RESOName: "A", Column: "COL_A"},
		})
	})
}

func TestFieldMap_ColumnAndRESONameAreInverses(t *testing.T) {
	fm := NewFieldMap("T", "A", nil, []Field{
		{RESOName: "A", Column: "COL_A"},
		{RESOName: "B", Column: "COL_B", EdmType: "Edm.Int32"},
	})

	col, ok := fm.Column("B")
	assert.True(t, ok)
	assert.Equal(t, "COL_B", col)

	name, ok := fm.RESOName("COL_B")
	assert.True(t, ok)
	assert.Equal(t, "B", name)
}

func TestFieldMap_EdmTypeDefaultsToString(t *testing.T) {
	fm := NewFieldMap("T", "A", nil, []Field{
		{RESOName: "A", Column: "COL_A"},
		{RESOName: "B", Column: "COL_B", EdmType: "Edm.Decimal"},
	})

	assert.Equal(t, "Edm.String", fm.EdmType("A"))
	assert.Equal(t, "Edm.Decimal", fm.EdmType("B"))
	assert.Equal(t, "Edm.String", fm.EdmType("Unknown"))
}

func TestFieldMap_IsAllowedExpansion(t *testing.T) {
	fm := NewFieldMap("T", "A", []string{"ListAgent"}, []Field{
		{RESOName: "A", Column: "COL_A"},
	})
	assert.True(t, fm.IsAllowedExpansion("ListAgent"))
	assert.False(t, fm.IsAllowedExpansion("ListOffice"))
}

func TestPropertyMemberOfficeFieldMaps_AreWellFormed(t *testing.T) {
	for _, fm := range []*FieldMap{Property, Member, Office} {
		assert.NotEmpty(t, fm.Table)
		assert.NotEmpty(t, fm.KeyColumn())
		assert.NotEmpty(t, fm.DeclaredColumns())
	}
}

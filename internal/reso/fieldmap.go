// Package reso declares the RESO field maps for the Property, Member,
// and Office entity sets: the bijection between externally exposed
// RESO Data Dictionary names and the backend SQL Server column names
// they're stored under (spec §3.2).
package reso

import "fmt"

// Field describes one exposed RESO attribute.
type Field struct {
	// RESOName is the name exposed over OData (ListPrice, City, ...).
	RESOName string
	// Column is the backend SQL Server column name (IDCLISTPRICE, CITY, ...).
	Column string
	// EdmType is the CSDL primitive type for this field. Defaults to
	// Edm.String when left empty.
	EdmType string
}

// FieldMap is an ordered, validated bijection between RESO names and
// backend columns for one resource.
type FieldMap struct {
	Table            string
	KeyField         string // RESO name of the key field
	AllowedExpansions []string
	fields           []Field
	forward          map[string]string // RESO name -> column
	reverse          map[string]string // column -> RESO name
}

// NewFieldMap builds a FieldMap from an ordered field declaration and
// derives both the forward and reverse lookup tables from it, per
// spec §9 ("Field-map construction"). It panics if the declaration is
// not a bijection or omits the key field — these are startup-time
// programmer errors, never request-time conditions.
func NewFieldMap(table, keyField string, allowedExpansions []string, fields []Field) *FieldMap {
	forward := make(map[string]string, len(fields))
	reverse := make(map[string]string, len(fields))

	for _, f := range fields {
		if _, dup := forward[f.RESOName]; dup {
			panic(fmt.Sprintf("reso: duplicate field name %q in %s field map", f.RESOName, table))
		}
		if _, dup := reverse[f.Column]; dup {
			panic(fmt.Sprintf("reso: column %q mapped by more than one field in %s field map", f.Column, table))
		}
		forward[f.RESOName] = f.Column
		reverse[f.Column] = f.RESOName
	}

	if _, ok := forward[keyField]; !ok {
		panic(fmt.Sprintf("reso: key field %q missing from %s field map", keyField, table))
	}

	return &FieldMap{
		Table:             table,
		KeyField:          keyField,
		AllowedExpansions: allowedExpansions,
		fields:            fields,
		forward:           forward,
		reverse:           reverse,
	}
}

// Column returns the backend column for a RESO field name.
func (m *FieldMap) Column(resoName string) (string, bool) {
	col, ok := m.forward[resoName]
	return col, ok
}

// RESOName returns the exposed name for a backend column.
func (m *FieldMap) RESOName(column string) (string, bool) {
	name, ok := m.reverse[column]
	return name, ok
}

// KeyColumn returns the backend column backing the key field.
func (m *FieldMap) KeyColumn() string {
	return m.forward[m.KeyField]
}

// DeclaredColumns returns backend columns in map-declaration order —
// the default $select and the tie-breaking default $orderby column.
func (m *FieldMap) DeclaredColumns() []string {
	cols := make([]string, len(m.fields))
	for i, f := range m.fields {
		cols[i] = f.Column
	}
	return cols
}

// DeclaredNames returns RESO field names in map-declaration order.
func (m *FieldMap) DeclaredNames() []string {
	names := make([]string, len(m.fields))
	for i, f := range m.fields {
		names[i] = f.RESOName
	}
	return names
}

// DeclaredFields returns the full field declarations in order, for
// consumers (the CSDL emitter) that need the EdmType alongside the
// name.
func (m *FieldMap) DeclaredFields() []Field {
	return m.fields
}

// EdmType returns the CSDL primitive type for a RESO field name,
// defaulting to Edm.String when the declaration left it empty.
func (m *FieldMap) EdmType(resoName string) string {
	for _, f := range m.fields {
		if f.RESOName == resoName {
			if f.EdmType == "" {
				return "Edm.String"
			}
			return f.EdmType
		}
	}
	return "Edm.String"
}

// IsAllowedExpansion reports whether name is a valid $expand target
// for this resource.
func (m *FieldMap) IsAllowedExpansion(name string) bool {
	for _, n := range m.AllowedExpansions {
		if n == name {
			return true
		}
	}
	return false
}

package metadata

import (
	"fmt"
	"strings"

	"github.com/summitmls/reso-odata-gateway/internal/reso"
)

// entityType describes one CSDL EntityType this service exposes.
type entityType struct {
	Name       string
	Fields     *reso.FieldMap
	HasMedia   bool
	NavTargets map[string]string // NavigationProperty name -> target entity type name
}

var entityTypes = []entityType{
	{
		Name:     "Property",
		Fields:   reso.Property,
		HasMedia: true,
		NavTargets: map[string]string{
			"ListAgent":  "Member",
			"ListOffice": "Office",
		},
	},
	{Name: "Member", Fields: reso.Member},
	{Name: "Office", Fields: reso.Office},
}

// BuildCSDL renders the service's $metadata document (spec §4.6): one
// ComplexType for Media, one EntityType per exposed resource with a
// Key and a Property per declared field, and an EntityContainer
// listing the three entity sets.
func BuildCSDL() string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">` + "\n")
	b.WriteString("  <edmx:DataServices>\n")
	b.WriteString(`    <Schema Namespace="org.reso.metadata" xmlns="http://docs.oasis-open.org/odata/ns/edm">` + "\n")

	writeMediaComplexType(&b)

	for _, et := range entityTypes {
		writeEntityType(&b, et)
	}

	writeEntityContainer(&b)

	b.WriteString("    </Schema>\n")
	b.WriteString("  </edmx:DataServices>\n")
	b.WriteString("</edmx:Edmx>\n")

	return b.String()
}

func writeMediaComplexType(b *strings.Builder) {
	b.WriteString(`      <ComplexType Name="Media">` + "\n")
	b.WriteString(`        <Property Name="MediaKey" Type="Edm.String"/>` + "\n")
	b.WriteString(`        <Property Name="ResourceRecordKey" Type="Edm.String"/>` + "\n")
	b.WriteString(`        <Property Name="MediaURL" Type="Edm.String"/>` + "\n")
	b.WriteString(`        <Property Name="Order" Type="Edm.Int32"/>` + "\n")
	b.WriteString("      </ComplexType>\n")
}

func writeEntityType(b *strings.Builder, et entityType) {
	fmt.Fprintf(b, "      <EntityType Name=%q>\n", et.Name)
	fmt.Fprintf(b, "        <Key>\n          <PropertyRef Name=%q/>\n        </Key>\n", et.Fields.KeyField)

	for _, f := range et.Fields.DeclaredFields() {
		if f.RESOName == "PhotosXML" {
			// Exposed as the Media complex-type collection property
			// instead, not the raw backend field.
			continue
		}
		fmt.Fprintf(b, "        <Property Name=%q Type=%q/>\n", f.RESOName, et.Fields.EdmType(f.RESOName))
	}

	if et.HasMedia {
		b.WriteString(`        <Property Name="Media" Type="Collection(org.reso.metadata.Media)"/>` + "\n")
	}

	for name, target := range et.NavTargets {
		fmt.Fprintf(b, "        <NavigationProperty Name=%q Type=%q/>\n", name, "org.reso.metadata."+target)
	}

	b.WriteString("      </EntityType>\n")
}

func writeEntityContainer(b *strings.Builder) {
	b.WriteString(`      <EntityContainer Name="Container">` + "\n")
	for _, et := range entityTypes {
		fmt.Fprintf(b, "        <EntitySet Name=%q EntityType=%q/>\n", et.Name, "org.reso.metadata."+et.Name)
	}
	b.WriteString("      </EntityContainer>\n")
}

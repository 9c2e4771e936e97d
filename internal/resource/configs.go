package resource

import "github.com/summitmls/reso-odata-gateway/internal/reso"

// PropertyConfig, MemberConfig, and OfficeConfig are the three
// entity-set configurations the HTTP surface drives (spec §3.1).
var (
	PropertyConfig = Config{
		Name:       "Property",
		Fields:     reso.Property,
		IsProperty: true,
		Expansions: map[string]Expansion{
			"ListAgent": {
				Name:          "ListAgent",
				ForeignKey:    "ListAgentKey",
				Target:        reso.Member,
				TargetKeyName: "MemberKey",
			},
			"ListOffice": {
				Name:          "ListOffice",
				ForeignKey:    "ListOfficeKey",
				Target:        reso.Office,
				TargetKeyName: "OfficeKey",
			},
		},
	}

	MemberConfig = Config{
		Name:   "Member",
		Fields: reso.Member,
	}

	OfficeConfig = Config{
		Name:   "Office",
		Fields: reso.Office,
	}
)

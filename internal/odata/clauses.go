package odata

import (
	"fmt"
	"strings"

	"github.com/summitmls/reso-odata-gateway/internal/reso"
)

// ParseSelect comma-splits a $select value, validates every name
// against the field map, and returns the backend columns to project.
// An empty/absent value selects every declared column, in
// declaration order.
func ParseSelect(raw string, fields *reso.FieldMap) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fields.DeclaredColumns(), nil
	}

	names := splitTrim(raw)
	cols := make([]string, 0, len(names))
	for _, name := range names {
		col, ok := fields.Column(name)
		if !ok {
			return nil, &ParseError{Message: fmt.Sprintf("Invalid field in $select: %s", name)}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// OrderByTerm is one resolved ORDER BY entry.
type OrderByTerm struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// ParseOrderBy comma-splits a $orderby value; each entry is
// "<name> [asc|desc]" (default asc), whitelist-checked against the
// field map.
func ParseOrderBy(raw string, fields *reso.FieldMap) ([]OrderByTerm, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	entries := splitTrim(raw)
	terms := make([]OrderByTerm, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Fields(entry)
		if len(parts) == 0 {
			continue
		}
		name := parts[0]
		direction := "ASC"
		if len(parts) > 1 {
			switch strings.ToLower(parts[1]) {
			case "asc":
				direction = "ASC"
			case "desc":
				direction = "DESC"
			default:
				return nil, &ParseError{Message: fmt.Sprintf("Invalid field in $orderby: %s", entry)}
			}
		}

		col, ok := fields.Column(name)
		if !ok {
			return nil, &ParseError{Message: fmt.Sprintf("Invalid field in $orderby: %s", name)}
		}
		terms = append(terms, OrderByTerm{Column: col, Direction: direction})
	}
	return terms, nil
}

// ParseExpand comma-splits a $expand value and validates each entry
// against the resource's allowed navigation names. It returns the
// requested expansion names; the resource driver decides how to
// satisfy each one.
func ParseExpand(raw string, fields *reso.FieldMap) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	names := splitTrim(raw)
	for _, name := range names {
		if !fields.IsAllowedExpansion(name) {
			return nil, &ParseError{Message: fmt.Sprintf(
				"Invalid $expand: %s. Allowed: %s", name, strings.Join(fields.AllowedExpansions, ", "))}
		}
	}
	return names, nil
}

func splitTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

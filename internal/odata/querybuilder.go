package odata

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/summitmls/reso-odata-gateway/internal/reso"
)

const (
	defaultTop = 100
	minTop     = 1
	maxTop     = 1000
	minSkip    = 0
)

// RawQuery holds the subset of raw OData query-string values the
// builder consumes, before any validation.
type RawQuery struct {
	Select  string
	Filter  string
	OrderBy string
	Expand  string
	Top     string
	Skip    string
	Count   string
}

// BuildOptions parameterizes one call to Build.
type BuildOptions struct {
	Table    string
	Fields   *reso.FieldMap
	Query    RawQuery
	KeyField string // RESO name of the key field, for a single-entity lookup
	KeyValue interface{}
	BaseURL  string // when set, enables next-link construction
	BaseWhere string // optional fragment AND-ed into every WHERE, no params
}

// Plan is a compiled query plan: the data SQL, optional count SQL,
// their shared parameters, and (when a BaseURL was supplied) a
// closure that builds the next page's link from an observed total.
type Plan struct {
	DataSQL      string
	CountSQL     string // empty if $count wasn't requested
	Params       map[string]interface{}
	Top          int
	Skip         int
	WantCount    bool
	NextLinkFunc func(total int64) string // nil unless BaseURL was supplied and WantCount is true
}

// Build assembles a query plan per spec §4.4.
func Build(opts BuildOptions) (*Plan, error) {
	top := clampInt(parseIntDefault(opts.Query.Top, defaultTop), minTop, maxTop)
	skip := maxInt(parseIntDefault(opts.Query.Skip, 0), minSkip)
	wantCount := opts.Query.Count == "true"

	selectCols, err := ParseSelect(opts.Query.Select, opts.Fields)
	if err != nil {
		return nil, err
	}

	params := make(map[string]interface{})
	var whereParts []string

	if opts.BaseWhere != "" {
		whereParts = append(whereParts, opts.BaseWhere)
	}

	if opts.KeyValue != nil {
		keyCol := opts.Fields.KeyColumn()
		if opts.KeyField != "" {
			if col, ok := opts.Fields.Column(opts.KeyField); ok {
				keyCol = col
			}
		}
		whereParts = append(whereParts, fmt.Sprintf("%s = @keyValue", keyCol))
		params["keyValue"] = opts.KeyValue
	} else if opts.Query.Filter != "" {
		compiled, err := CompileFilter(opts.Query.Filter, opts.Fields)
		if err != nil {
			return nil, err
		}
		whereParts = append(whereParts, compiled.SQL)
		for k, v := range compiled.Params {
			params[k] = v
		}
	}

	orderTerms, err := ParseOrderBy(opts.Query.OrderBy, opts.Fields)
	if err != nil {
		return nil, err
	}
	orderBySQL := renderOrderBy(orderTerms, opts.Fields)

	whereSQL := ""
	if len(whereParts) > 0 {
		whereSQL = "WHERE " + strings.Join(whereParts, " AND ")
	}

	dataSQL := fmt.Sprintf(
		"SELECT %s FROM %s %s %s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY",
		strings.Join(selectCols, ", "), opts.Table, whereSQL, orderBySQL, skip, top,
	)
	dataSQL = collapseSpaces(dataSQL)

	plan := &Plan{
		DataSQL:   dataSQL,
		Params:    params,
		Top:       top,
		Skip:      skip,
		WantCount: wantCount,
	}

	if wantCount {
		plan.CountSQL = collapseSpaces(fmt.Sprintf(
			"SELECT COUNT(*) AS total FROM %s %s", opts.Table, whereSQL,
		))
	}

	if opts.BaseURL != "" && wantCount {
		plan.NextLinkFunc = func(total int64) string {
			if int64(skip+top) >= total {
				return ""
			}
			return buildNextLink(opts.BaseURL, opts.Query, skip+top, top)
		}
	}

	return plan, nil
}

func renderOrderBy(terms []OrderByTerm, fields *reso.FieldMap) string {
	if len(terms) == 0 {
		cols := fields.DeclaredColumns()
		if len(cols) == 0 {
			return ""
		}
		return fmt.Sprintf("ORDER BY %s ASC", cols[0])
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%s %s", t.Column, t.Direction)
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// buildNextLink re-propagates the client-supplied $select/$filter/
// $orderby/$count options with an advanced $skip (spec §4.4 step 7).
// Query parameters are URL-encoded, so "$" appears as "%24".
func buildNextLink(baseURL string, q RawQuery, skip, top int) string {
	v := url.Values{}
	v.Set("$top", strconv.Itoa(top))
	v.Set("$skip", strconv.Itoa(skip))
	if q.Select != "" {
		v.Set("$select", q.Select)
	}
	if q.Filter != "" {
		v.Set("$filter", q.Filter)
	}
	if q.OrderBy != "" {
		v.Set("$orderby", q.OrderBy)
	}
	if q.Count != "" {
		v.Set("$count", q.Count)
	}
	return baseURL + "?" + v.Encode()
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func collapseSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

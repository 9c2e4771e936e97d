package resource

import (
	"context"
	"fmt"
	"strings"
)

// applyExpansions satisfies each requested $expand target with one
// batched SELECT keyed by an IN-list over the de-duplicated, non-nil
// foreign keys found across rows (spec §4.5 step 6). Rows with no
// matching related record are left unattached — not an error.
func (d *Driver) applyExpansions(ctx context.Context, cfg Config, rows []map[string]interface{}, names []string) error {
	for _, name := range names {
		exp, ok := cfg.Expansions[name]
		if !ok {
			continue // already validated by ParseExpand; defensive only
		}
		if err := d.applyOneExpansion(ctx, rows, exp); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) applyOneExpansion(ctx context.Context, rows []map[string]interface{}, exp Expansion) error {
	keys, byKey := collectForeignKeys(rows, exp.ForeignKey)
	if len(keys) == 0 {
		return nil
	}

	keyCol, _ := exp.Target.Column(exp.TargetKeyName)
	params := make(map[string]interface{}, len(keys))
	placeholders := make([]string, len(keys))
	for i, k := range keys {
		paramName := fmt.Sprintf("exp%d", i)
		placeholders[i] = "@" + paramName
		params[paramName] = k
	}

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (%s)",
		strings.Join(exp.Target.DeclaredColumns(), ", "), exp.Target.Table, keyCol, strings.Join(placeholders, ", "))

	result, err := d.gateway.Query(ctx, sql, params)
	if err != nil {
		return err
	}

	related := reshapeRows(result, exp.Target)
	byTargetKey := make(map[interface{}]map[string]interface{}, len(related))
	for _, r := range related {
		if v, ok := r[exp.TargetKeyName]; ok {
			byTargetKey[normalizeKey(v)] = r
		}
	}

	for _, fk := range keys {
		matched, ok := byTargetKey[normalizeKey(fk)]
		if !ok {
			continue
		}
		for _, parentRow := range byKey[normalizeKey(fk)] {
			parentRow[exp.Name] = matched
		}
	}
	return nil
}

// collectForeignKeys gathers the de-duplicated, non-nil values of
// foreignKeyField across rows, and an index back from each value to
// every row that referenced it.
func collectForeignKeys(rows []map[string]interface{}, foreignKeyField string) ([]interface{}, map[interface{}][]map[string]interface{}) {
	seen := make(map[interface{}]bool)
	var keys []interface{}
	byKey := make(map[interface{}][]map[string]interface{})

	for _, row := range rows {
		v, ok := row[foreignKeyField]
		if !ok || v == nil {
			continue
		}
		nk := normalizeKey(v)
		if !seen[nk] {
			seen[nk] = true
			keys = append(keys, v)
		}
		byKey[nk] = append(byKey[nk], row)
	}
	return keys, byKey
}

// normalizeKey maps driver-returned numeric types to a single
// comparable representation so int32/int64/int from different result
// sets still match as the same foreign key.
func normalizeKey(v interface{}) interface{} {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int:
		return int64(n)
	default:
		return v
	}
}


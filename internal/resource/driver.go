// Package resource is the per-entity-set orchestrator (C5): it drives
// the query builder, runs data and count queries concurrently, shapes
// rows into the OData envelope, applies the Property key codec and
// photo-XML reshape, and performs $expand as a second batched query.
package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
	"github.com/summitmls/reso-odata-gateway/internal/odata"
	"github.com/summitmls/reso-odata-gateway/internal/reso"
)

// KeyAliasStore is the persistence contract the Property key codec's
// decode path needs (spec §4.7A); satisfied by *tokenstore.Store.
type KeyAliasStore interface {
	UpsertKeyAlias(ctx context.Context, encodedKey, backendKey string)
	ResolveKeyAlias(ctx context.Context, encodedKey string) (string, error)
}

// Expansion describes one $expand target: a foreign key column on the
// parent resource and the related resource it points to.
type Expansion struct {
	Name          string // navigation name, e.g. "ListAgent"
	ForeignKey    string // RESO name on the parent, e.g. "ListAgentKey"
	Target        *reso.FieldMap
	TargetKeyName string // RESO key field name on the target, e.g. "MemberKey"
}

// Config describes one entity set: its table/field map and, for
// Property, its allowed expansions.
type Config struct {
	Name       string
	Fields     *reso.FieldMap
	Expansions map[string]Expansion
	IsProperty bool // enables key-codec + photo XML reshape
}

// Driver orchestrates list/get for a single configured entity set.
type Driver struct {
	gateway  dbgateway.Gateway
	keyAlias KeyAliasStore
}

// NewDriver builds a Driver over the given DB gateway and (optional,
// only required for Property) key alias store.
func NewDriver(gateway dbgateway.Gateway, keyAlias KeyAliasStore) *Driver {
	return &Driver{gateway: gateway, keyAlias: keyAlias}
}

// List implements spec §4.5 "list".
func (d *Driver) List(ctx context.Context, cfg Config, q odata.RawQuery, baseURL string) (*odata.Response, error) {
	expandNames, err := odata.ParseExpand(q.Expand, cfg.Fields)
	if err != nil {
		return nil, err
	}

	plan, err := odata.Build(odata.BuildOptions{
		Table:   cfg.Fields.Table,
		Fields:  cfg.Fields,
		Query:   q,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}

	dataResult, countResult, err := d.runConcurrently(ctx, plan)
	if err != nil {
		return nil, err
	}

	rows := reshapeRows(dataResult, cfg.Fields)
	if cfg.IsProperty {
		d.applyPropertyTransforms(ctx, rows)
	}
	if err := d.applyExpansions(ctx, cfg, rows, expandNames); err != nil {
		return nil, err
	}

	contextURL := fmt.Sprintf("%s/$metadata#%s", strings.TrimSuffix(baseURL, "/"+cfg.Name), cfg.Name)

	var countPtr *int64
	var nextLink string
	if plan.WantCount {
		total := countTotal(countResult)
		countPtr = &total
		if plan.NextLinkFunc != nil {
			nextLink = plan.NextLinkFunc(total)
		}
	}

	value := make([]interface{}, len(rows))
	for i, r := range rows {
		value[i] = r
	}

	return odata.NewResponse(contextURL, value, countPtr, nextLink), nil
}

// Get implements spec §4.5 "get".
func (d *Driver) Get(ctx context.Context, cfg Config, rawKey, expandRaw, baseURL string) (map[string]interface{}, error) {
	expandNames, err := odata.ParseExpand(expandRaw, cfg.Fields)
	if err != nil {
		return nil, err
	}

	key := strings.Trim(rawKey, "'")

	var keyValue interface{}
	if cfg.IsProperty {
		backendKey, err := d.keyAlias.ResolveKeyAlias(ctx, key)
		if err != nil {
			return nil, ErrNotFound
		}
		keyValue = backendKey
	} else if n, err := strconv.Atoi(key); err == nil {
		keyValue = n
	} else {
		keyValue = key
	}

	plan, err := odata.Build(odata.BuildOptions{
		Table:    cfg.Fields.Table,
		Fields:   cfg.Fields,
		Query:    odata.RawQuery{Top: "1"},
		KeyField: cfg.Fields.KeyField,
		KeyValue: keyValue,
	})
	if err != nil {
		return nil, err
	}

	result, err := d.gateway.Query(ctx, plan.DataSQL, plan.Params)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, ErrNotFound
	}

	rows := reshapeRows(result, cfg.Fields)
	if cfg.IsProperty {
		d.applyPropertyTransforms(ctx, rows)
	}
	if err := d.applyExpansions(ctx, cfg, rows, expandNames); err != nil {
		return nil, err
	}

	entity := rows[0]
	entity["@odata.context"] = fmt.Sprintf("%s/$metadata#%s/$entity", strings.TrimSuffix(baseURL, "/"+cfg.Name), cfg.Name)
	return entity, nil
}

// runConcurrently issues the data and (if requested) count queries as
// plain goroutines joined with a sync.WaitGroup — no errgroup
// dependency. The data query's error, if any, is reported first.
func (d *Driver) runConcurrently(ctx context.Context, plan *odata.Plan) (*dbgateway.Result, *dbgateway.Result, error) {
	var (
		wg          sync.WaitGroup
		dataResult  *dbgateway.Result
		countResult *dbgateway.Result
		dataErr     error
		countErr    error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		dataResult, dataErr = d.gateway.Query(ctx, plan.DataSQL, plan.Params)
	}()

	if plan.WantCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			countResult, countErr = d.gateway.Query(ctx, plan.CountSQL, plan.Params)
		}()
	}

	wg.Wait()

	if dataErr != nil {
		return nil, nil, dataErr
	}
	if countErr != nil {
		return nil, nil, countErr
	}
	return dataResult, countResult, nil
}

func countTotal(result *dbgateway.Result) int64 {
	if result == nil || len(result.Rows) == 0 || len(result.Rows[0]) == 0 {
		return 0
	}
	switch v := result.Rows[0][0].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

// reshapeRows converts backend column names to RESO names, dropping
// any column the field map doesn't declare (spec §4.5 step 4).
func reshapeRows(result *dbgateway.Result, fields *reso.FieldMap) []map[string]interface{} {
	if result == nil {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(result.Rows))
	for _, raw := range result.Rows {
		entity := make(map[string]interface{}, len(result.Columns))
		for i, col := range result.Columns {
			name, ok := fields.RESOName(col)
			if !ok {
				continue
			}
			entity[name] = raw[i]
		}
		rows = append(rows, entity)
	}
	return rows
}

// Package dbgateway is the backend SQL Server collaborator: it runs
// parameterized queries built by internal/odata against the MLS
// backend, over a connection that may be reached through an SSH
// tunnel, and reports a distinct error when the connection is down
// rather than pretending a query returned zero rows.
package dbgateway

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"

	_ "github.com/microsoft/go-mssqldb"
)

// Result is a driver-agnostic row set: column names plus each row as
// a slice of Go values, in column order.
type Result struct {
	Columns []string
	Rows    [][]interface{}
}

// Gateway executes parameterized SQL against the backend database.
// internal/resource and internal/httpapi depend on this interface,
// not on *sql.DB directly, so tests can substitute an in-process fake.
type Gateway interface {
	Query(ctx context.Context, query string, params map[string]interface{}) (*Result, error)
	QueryRow(ctx context.Context, query string, params map[string]interface{}) (*Result, error)
	Ping(ctx context.Context) error
	Close() error
}

// SQLGateway is the production Gateway backed by database/sql and
// github.com/microsoft/go-mssqldb, reached either directly or through
// a Tunnel.
type SQLGateway struct {
	db     *sql.DB
	tunnel *Tunnel // nil when SSH tunneling is disabled
}

// Config holds the pieces SQLGateway needs to open a connection.
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
}

// Open connects to the backend database directly (no tunnel). Use
// NewTunneledGateway when the backend is only reachable through SSH.
func Open(cfg Config) (*SQLGateway, error) {
	dsn := buildDSN(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, &BackendError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	if err := db.Ping(); err != nil {
		return nil, &BackendError{Op: "ping", Err: err}
	}
	log.Println("dbgateway: backend database connection established")

	return &SQLGateway{db: db}, nil
}

// NewTunneledGateway opens the backend database through an already
// running SSH tunnel, connecting to the tunnel's local listener
// instead of cfg.Host/cfg.Port directly, and keeping a reference to
// the tunnel so Close() tears it down too.
func NewTunneledGateway(cfg Config, tunnel *Tunnel) (*SQLGateway, error) {
	host, port, err := net.SplitHostPort(tunnel.LocalAddr().String())
	if err != nil {
		return nil, fmt.Errorf("dbgateway: tunnel local address: %w", err)
	}
	localCfg := cfg
	localCfg.Host = host
	localCfg.Port = atoiOrZero(port)

	gw, err := Open(localCfg)
	if err != nil {
		return nil, err
	}
	gw.tunnel = tunnel
	return gw, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// buildDSN assembles a sqlserver:// connection URL, the format the
// go-mssqldb driver expects (spec §9 "backend connectivity").
func buildDSN(host string, port int, user, password, database string) string {
	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(user, password),
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	q := url.Values{}
	q.Set("database", database)
	u.RawQuery = q.Encode()
	return u.String()
}

// Query runs query and returns every matching row.
func (g *SQLGateway) Query(ctx context.Context, query string, params map[string]interface{}) (*Result, error) {
	rows, err := g.db.QueryContext(ctx, query, namedArgs(params)...)
	if err != nil {
		return nil, g.wrapConnError("query", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// QueryRow runs query and returns at most one row (used by the MLS
// number redirect lookup).
func (g *SQLGateway) QueryRow(ctx context.Context, query string, params map[string]interface{}) (*Result, error) {
	result, err := g.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) > 1 {
		result.Rows = result.Rows[:1]
	}
	return result, nil
}

// Ping reports whether the connection is currently usable.
func (g *SQLGateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return g.wrapConnError("ping", err)
	}
	return nil
}

// Close releases the underlying connection pool (and the tunnel, if
// one was set up for this gateway).
func (g *SQLGateway) Close() error {
	err := g.db.Close()
	if g.tunnel != nil {
		g.tunnel.Close()
	}
	return err
}

// wrapConnError distinguishes a dropped connection from an ordinary
// query error so callers can map it to "database not connected"
// rather than a 500 with a SQL-shaped message leaking to clients.
func (g *SQLGateway) wrapConnError(op string, err error) error {
	if err == sql.ErrConnDone || err == sql.ErrTxDone {
		return &BackendError{Op: op, Err: ErrNotConnected}
	}
	return &BackendError{Op: op, Err: err}
}

func namedArgs(params map[string]interface{}) []interface{} {
	args := make([]interface{}, 0, len(params))
	for name, value := range params {
		args = append(args, sql.Named(name, value))
	}
	return args
}

func scanRows(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dbgateway: reading columns: %w", err)
	}

	result := &Result{Columns: cols}
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("dbgateway: scanning row: %w", err)
		}
		result.Rows = append(result.Rows, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dbgateway: iterating rows: %w", err)
	}
	return result, nil
}

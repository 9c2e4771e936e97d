// Package tokenstore is the Postgres-backed persistent store for the
// OAuth2 token service (C8): access tokens, refresh tokens, and the
// property-key alias table used by the key codec's decode path.
package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned by Get/GetRefresh when no row matches.
var ErrNotFound = errors.New("tokenstore: not found")

// Token is one persisted access or refresh token row.
type Token struct {
	ClientID  string
	ExpiresAt time.Time
}

// Store wraps the Postgres connection pool backing the OAuth token
// service and the key-alias table.
type Store struct {
	db *sql.DB
}

// Config controls the Postgres connection pool, matching the
// toolbox's DatabaseMaxConnections / DatabaseMaxIdleConnections style.
type Config struct {
	ConnectionString string
	MaxOpenConns     int
	MaxIdleConns     int
	MigrationsPath   string // defaults to "migrations" if empty
}

// Open connects to Postgres, configures the pool, and runs pending
// migrations.
func Open(cfg Config) (*Store, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: open: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 || maxOpen > 10 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("tokenstore: ping: %w", err)
	}
	log.Println("tokenstore: database connection established")

	migrationsPath := cfg.MigrationsPath
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := RunMigrations(db, migrationsPath); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists an access token.
func (s *Store) Save(ctx context.Context, token, clientID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO oauth_tokens (access_token, client_id, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (access_token) DO UPDATE SET client_id = $2, expires_at = $3`,
		token, clientID, expiresAt)
	if err != nil {
		return fmt.Errorf("tokenstore: save: %w", err)
	}
	return nil
}

// Get looks up an access token. Returns ErrNotFound if no row
// matches.
func (s *Store) Get(ctx context.Context, token string) (*Token, error) {
	var t Token
	err := s.db.QueryRowContext(ctx,
		`SELECT client_id, expires_at FROM oauth_tokens WHERE access_token = $1`, token,
	).Scan(&t.ClientID, &t.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: get: %w", err)
	}
	return &t, nil
}

// Delete removes an access token.
func (s *Store) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE access_token = $1`, token)
	if err != nil {
		return fmt.Errorf("tokenstore: delete: %w", err)
	}
	return nil
}

// SaveRefresh persists a refresh token.
func (s *Store) SaveRefresh(ctx context.Context, token, clientID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO oauth_refresh_tokens (refresh_token, client_id, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (refresh_token) DO UPDATE SET client_id = $2, expires_at = $3`,
		token, clientID, expiresAt)
	if err != nil {
		return fmt.Errorf("tokenstore: save refresh: %w", err)
	}
	return nil
}

// GetRefresh looks up a refresh token. Returns ErrNotFound if no row
// matches.
func (s *Store) GetRefresh(ctx context.Context, token string) (*Token, error) {
	var t Token
	err := s.db.QueryRowContext(ctx,
		`SELECT client_id, expires_at FROM oauth_refresh_tokens WHERE refresh_token = $1`, token,
	).Scan(&t.ClientID, &t.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: get refresh: %w", err)
	}
	return &t, nil
}

// DeleteRefresh removes a refresh token.
func (s *Store) DeleteRefresh(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM oauth_refresh_tokens WHERE refresh_token = $1`, token)
	if err != nil {
		return fmt.Errorf("tokenstore: delete refresh: %w", err)
	}
	return nil
}

// Cleanup purges expired access and refresh tokens. Called by the
// authsvc sweeper on a 5-minute cadence (spec §4.8).
func (s *Store) Cleanup(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return fmt.Errorf("tokenstore: cleanup tokens: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("tokenstore: cleanup removed %d expired access tokens", n)
	}

	res, err = s.db.ExecContext(ctx, `DELETE FROM oauth_refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return fmt.Errorf("tokenstore: cleanup refresh tokens: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("tokenstore: cleanup removed %d expired refresh tokens", n)
	}
	return nil
}

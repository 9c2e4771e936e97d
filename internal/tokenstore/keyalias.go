package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// UpsertKeyAlias records an encoded-key to backend-key mapping (spec
// §4.7A). It is called every time a key is encoded; a row that
// already exists for encodedKey is left unchanged (ON CONFLICT DO
// NOTHING). Best-effort: a failure here is logged, never returned to
// the caller, since the encoding itself does not depend on this
// table succeeding.
func (s *Store) UpsertKeyAlias(ctx context.Context, encodedKey, backendKey string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO property_key_aliases (encoded_key, backend_key) VALUES ($1, $2)
		 ON CONFLICT (encoded_key) DO NOTHING`,
		encodedKey, backendKey)
	if err != nil {
		log.Printf("tokenstore: key alias upsert failed for %s: %v", encodedKey, err)
	}
}

// ResolveKeyAlias looks up the backend key for a previously encoded
// display key. Returns ErrNotFound if this process (or any process
// sharing the table) never observed that encoded key.
func (s *Store) ResolveKeyAlias(ctx context.Context, encodedKey string) (string, error) {
	var backendKey string
	err := s.db.QueryRowContext(ctx,
		`SELECT backend_key FROM property_key_aliases WHERE encoded_key = $1`, encodedKey,
	).Scan(&backendKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: resolve key alias: %w", err)
	}
	return backendKey, nil
}

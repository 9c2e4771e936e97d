package resource

import "errors"

// ErrNotFound is returned when a single-entity lookup misses, or when
// a Property path key cannot be decoded (spec §4.5 "get" step 3).
var ErrNotFound = errors.New("resource: not found")

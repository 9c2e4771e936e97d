package odata

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// EncodeKey deterministically encodes an opaque backend primary key
// into a stable, URL-safe, 63-bit decimal display form (spec §4.7):
// SHA-256 of the UTF-8 backend key, the first 8 bytes read big-endian
// as an unsigned integer, high bit masked to zero.
//
// Decoding is not a true inverse of this function — see
// internal/resource's KeyAliasStore, backed by the persisted-alias
// table in internal/tokenstore, for what makes
// GET /Property(<encoded key>) work in practice (spec §4.7A).
func EncodeKey(backendKey string) string {
	sum := sha256.Sum256([]byte(backendKey))
	n := binary.BigEndian.Uint64(sum[:8])
	n &^= 1 << 63 // mask high bit so the value fits a signed 63-bit integer
	return strconv.FormatUint(n, 10)
}

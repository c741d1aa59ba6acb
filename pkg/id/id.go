// Package id mints the public identifiers the API exposes for deals, pauses,
// collateral links, assets and ledger entries.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 32 lowercase hex characters backed by 16 random bytes.
// No separators or prefixes; the value doubles as a valid Ax-Request-Id.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

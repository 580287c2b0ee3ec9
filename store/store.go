package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by GetRefresh when no refresh token is
	// stored for the principal (never stored, deleted, or TTL-evicted).
	ErrNotFound = errors.New("refresh token not found")
	// ErrConflict is returned by ReplaceRefresh when the stored value no
	// longer equals the expected one.
	ErrConflict = errors.New("refresh token changed concurrently")
	// ErrUnavailable wraps infrastructure failures; callers may retry
	// with backoff. All other store errors are terminal.
	ErrUnavailable = errors.New("session store unavailable")
)

// Store is the TTL key/value capability injected into the engine.
// All operations are single-key and atomic at the store level; no
// multi-key transactions are required.
type Store interface {
	// PutRefresh unconditionally overwrites the principal's current
	// refresh token and resets its TTL, logically invalidating any
	// previously stored value.
	PutRefresh(ctx context.Context, principalID, tokenString string, ttl time.Duration) error

	// GetRefresh returns the current refresh token, or ErrNotFound.
	GetRefresh(ctx context.Context, principalID string) (string, error)

	// DeleteRefresh removes the principal's refresh entry. Deleting an
	// absent entry is not an error.
	DeleteRefresh(ctx context.Context, principalID string) error

	// ReplaceRefresh atomically swaps the stored refresh token from
	// expect to next, failing with ErrConflict when the stored value is
	// absent or differs. It is the strict-rotation alternative to
	// PutRefresh's last-writer-wins.
	ReplaceRefresh(ctx context.Context, principalID, expect, next string, ttl time.Duration) error

	// Revoke writes a revocation marker for the token ID. The caller
	// supplies the token's remaining lifetime so the marker never
	// outlives the token; non-positive TTLs are a no-op.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether a revocation marker exists for the
	// token ID.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// Ping checks backend reachability and reports round-trip latency.
	Ping(ctx context.Context) (time.Duration, error)
}

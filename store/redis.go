package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// revokedMarker is the sentinel value stored under revoked:{jti}.
// Presence is what matters; the value is never inspected.
const revokedMarker = "true"

const replaceRefreshScript = `
local current = redis.call("GET", KEYS[1])
if not current or current ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`

var replaceRefreshLua = redis.NewScript(replaceRefreshScript)

// RedisStore is the Redis-backed [Store]. All operations are single
// round-trips; ReplaceRefresh runs a Lua script so the compare and the
// swap cannot interleave with a concurrent writer.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a [RedisStore] on the given client. prefix
// namespaces every key and may be empty.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) refreshKey(principalID string) string {
	return s.prefix + "refresh:" + principalID
}

func (s *RedisStore) revokedKey(jti string) string {
	return s.prefix + "revoked:" + jti
}

// PutRefresh overwrites the principal's refresh entry and resets its TTL.
func (s *RedisStore) PutRefresh(ctx context.Context, principalID, tokenString string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.refreshKey(principalID), tokenString, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// GetRefresh returns the stored refresh token or ErrNotFound.
func (s *RedisStore) GetRefresh(ctx context.Context, principalID string) (string, error) {
	value, err := s.redis.Get(ctx, s.refreshKey(principalID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

// DeleteRefresh removes the principal's refresh entry.
func (s *RedisStore) DeleteRefresh(ctx context.Context, principalID string) error {
	if err := s.redis.Del(ctx, s.refreshKey(principalID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ReplaceRefresh swaps expect for next under the principal's key, or
// fails with ErrConflict when the stored value is absent or differs.
func (s *RedisStore) ReplaceRefresh(ctx context.Context, principalID, expect, next string, ttl time.Duration) error {
	swapped, err := replaceRefreshLua.Run(
		ctx,
		s.redis,
		[]string{s.refreshKey(principalID)},
		expect,
		next,
		ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if swapped != 1 {
		return ErrConflict
	}
	return nil
}

// Revoke writes the revocation marker with the token's remaining
// lifetime. Markers must not outlive the token they void, so a
// non-positive TTL writes nothing.
func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, s.revokedKey(jti), revokedMarker, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether a marker exists for the token ID.
func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// Ping measures a PING round-trip against the backend.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}

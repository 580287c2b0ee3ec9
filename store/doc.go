// Package store provides the TTL key/value abstraction behind sessionauth:
// the single current refresh token per principal and a revocation marker
// per token ID.
//
// # Design
//
// Two key families, both with store-enforced expiry:
//
//	refresh:{principalID} -> current refresh token string (TTL = refresh lifetime)
//	revoked:{jti}         -> sentinel marker (TTL = remaining token lifetime)
//
// Overwriting refresh:{principalID} is what invalidates the previous
// refresh token: later equality checks against the old value fail. A
// marker's absence does not imply validity (signature and expiry are
// checked elsewhere); its presence always implies invalidity.
//
// # Implementations
//
// [RedisStore] is the production backend (go-redis v9, single-key
// operations, Lua for the atomic replace-if-equal variant). [MemoryStore]
// is a mutex-guarded in-process backend for tests and single-node use.
// Both satisfy [Store]; the engine only sees the interface.
package store

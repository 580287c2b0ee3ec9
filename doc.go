// Package sessionauth manages the session-token lifecycle for the exam
// platform backend: it issues, verifies, rotates, and revokes signed
// session credentials backed by a TTL key/value store.
//
// The package is designed for concurrent server workloads: Engine
// methods are safe to call from multiple goroutines after initialization
// through [Builder.Build]. There is no in-process mutable state beyond
// the signing secret, which is loaded once and read-only thereafter.
//
// # Architecture boundaries
//
// sessionauth is the public surface. It exposes [Engine], [Builder],
// [Config], the sentinel error taxonomy, and value types (AuthResult,
// Principal, audit sinks). Flow orchestration, audit dispatch, and
// metric storage live under internal/ and are never exported. Token
// crypto lives in the token subpackage and store backends in the store
// subpackage; both are usable on their own.
//
// # What this package must NOT do
//
//   - Persist business entities, hash passwords, or send email; identity
//     resolution is delegated to the injected [IdentityProvider].
//   - Serve HTTP. The boundary layer maps sentinel errors to transport
//     statuses; see examples/http-minimal.
//   - Retry internally. Every failure surfaces once, as exactly one
//     sentinel error, and only store/identity outages are worth a caller
//     retry.
//
// # Performance contract
//
// Introspect and VerifyAccess are the hot path: token crypto plus a
// single store round-trip for the revocation check. Login and Refresh
// are allowed the extra identity or rotation round-trips.
package sessionauth

// Package token implements the signed-credential codec used by sessionauth.
//
// A Codec mints and verifies compact JWS tokens (HS512) carrying the
// claim set sessionauth operates on: subject, issuer, issued-at, expiry,
// a unique token ID (jti), the token type (access or refresh), the
// account tier, and the role scope.
//
// # Architecture boundaries
//
// The codec is pure: it never talks to the session store, so revocation
// and single-session checks are layered on top by the engine. Everything
// here is CPU-bound and safe for concurrent use after construction.
//
// # What this package must NOT do
//
//   - Perform I/O or consult any store.
//   - Import the sessionauth root package (no import cycles).
//   - Accept unsigned or differently-signed tokens: the signing method
//     is pinned to HS512 at parse time.
package token

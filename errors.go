package sessionauth

import (
	"errors"

	"github.com/examly/sessionauth/store"
	"github.com/examly/sessionauth/token"
)

var (
	// ErrInvalidCredentials is returned by Login for both unknown
	// identifiers and wrong passwords; the single message prevents
	// account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenMalformed indicates input that is not a well-formed signed
	// token.
	ErrTokenMalformed = token.ErrMalformed

	// ErrBadSignature indicates a MAC mismatch under the shared secret.
	ErrBadSignature = token.ErrBadSignature

	// ErrTokenExpired indicates the token's exp claim has passed.
	ErrTokenExpired = token.ErrExpired

	// ErrTokenInvalid indicates a structurally valid token with the
	// wrong type claim or a missing required field.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenRevoked indicates a revocation marker exists for the
	// token's ID.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrReplayDetected indicates a refresh token that no longer matches
	// the single stored value for its subject — a superseded token being
	// replayed, possibly after theft.
	ErrReplayDetected = errors.New("refresh token reuse detected")

	// ErrStoreUnavailable wraps session-store infrastructure failures;
	// callers may retry with backoff.
	ErrStoreUnavailable = store.ErrUnavailable

	// ErrIdentityUnavailable wraps identity-provider infrastructure
	// failures; callers may retry with backoff.
	ErrIdentityUnavailable = errors.New("identity provider unavailable")

	// ErrLoginRateLimited is returned when the login attempt budget for
	// an identifier or IP is exhausted.
	ErrLoginRateLimited = errors.New("login rate limited")

	// ErrRefreshRateLimited is returned when the refresh attempt budget
	// for a principal is exhausted.
	ErrRefreshRateLimited = errors.New("refresh rate limited")

	// ErrForbidden is returned by RequireRole when the token's scope does
	// not carry the required role.
	ErrForbidden = errors.New("permission denied")

	// ErrEngineNotReady is returned when an Engine method is called on a
	// nil or incompletely built engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

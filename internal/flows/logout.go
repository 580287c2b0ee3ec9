package flows

import (
	"context"

	"github.com/examly/sessionauth/token"
)

// LogoutFailureKind classifies logout flow failures for root-level mapping.
type LogoutFailureKind int

const (
	LogoutFailureNone LogoutFailureKind = iota
	LogoutFailureMalformed
	LogoutFailureStore
)

// LogoutResult reports the terminated token and subject, or failure
// metadata.
type LogoutResult struct {
	Failure     LogoutFailureKind
	Err         error
	PrincipalID string
	TokenID     string
	Revoked     bool
}

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	// Peek extracts claims without signature or expiry checks: logging
	// out an already-invalid token is a harmless no-op, not an error.
	Peek          func(string) (*token.Claims, error)
	RevokeToken   func(ctx context.Context, claims *token.Claims) (bool, error)
	DeleteRefresh func(ctx context.Context, principalID string) error
}

// RunLogout revokes the presented token's ID for its remaining lifetime
// and drops the subject's stored refresh token. Only structurally broken
// input fails.
func RunLogout(ctx context.Context, tokenString string, deps LogoutDeps) LogoutResult {
	claims, err := deps.Peek(tokenString)
	if err != nil {
		return LogoutResult{Failure: LogoutFailureMalformed, Err: err}
	}

	revoked, err := deps.RevokeToken(ctx, claims)
	if err != nil {
		return LogoutResult{
			Failure:     LogoutFailureStore,
			Err:         err,
			PrincipalID: claims.Subject,
			TokenID:     claims.ID,
		}
	}

	if claims.Subject != "" {
		if err := deps.DeleteRefresh(ctx, claims.Subject); err != nil {
			return LogoutResult{
				Failure:     LogoutFailureStore,
				Err:         err,
				PrincipalID: claims.Subject,
				TokenID:     claims.ID,
			}
		}
	}

	return LogoutResult{
		Failure:     LogoutFailureNone,
		PrincipalID: claims.Subject,
		TokenID:     claims.ID,
		Revoked:     revoked,
	}
}

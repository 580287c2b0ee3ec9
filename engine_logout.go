package sessionauth

import (
	"context"
	"time"

	"github.com/examly/sessionauth/internal/flows"
	"github.com/examly/sessionauth/token"
)

// Logout terminates the session the presented token belongs to: a
// revocation marker is written for the token's ID with the token's
// remaining lifetime, and the subject's stored refresh token is deleted.
//
// The token is parsed without signature or expiry verification, so
// logging out an expired or otherwise invalid session is an idempotent
// no-op. Only structurally broken input fails, with [ErrTokenMalformed].
func (e *Engine) Logout(ctx context.Context, tokenString string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	deps := flows.LogoutDeps{
		Peek: e.codec.Peek,
		RevokeToken: func(ctx context.Context, claims *token.Claims) (bool, error) {
			remaining := claims.Remaining(time.Now())
			if remaining <= 0 {
				return false, nil
			}
			if err := e.store.Revoke(ctx, claims.ID, remaining); err != nil {
				return false, err
			}
			return true, nil
		},
		DeleteRefresh: e.store.DeleteRefresh,
	}

	result := flows.RunLogout(ctx, tokenString, deps)

	switch result.Failure {
	case flows.LogoutFailureNone:
		e.metricInc(MetricLogout)
		if result.Revoked {
			e.metricInc(MetricTokenRevoked)
		}
		e.emitAudit(ctx, AuditLogout, result.PrincipalID, result.TokenID, true, nil, nil)
		return nil

	case flows.LogoutFailureMalformed:
		e.emitAudit(ctx, AuditLogout, "", "", false, result.Err, nil)
		return result.Err

	default: // LogoutFailureStore
		e.emitAudit(ctx, AuditLogout, result.PrincipalID, result.TokenID, false, result.Err, nil)
		return result.Err
	}
}

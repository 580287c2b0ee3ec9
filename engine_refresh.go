package sessionauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/examly/sessionauth/internal/flows"
	"github.com/examly/sessionauth/internal/rate"
	"github.com/examly/sessionauth/store"
	"github.com/examly/sessionauth/token"
)

// Refresh rotates a refresh token: the presented token must equal, byte
// for byte, the single stored refresh token for its subject. On success
// the old token is revoked for its remaining lifetime and a fresh
// access+refresh pair is minted from the old token's verified claims.
//
// The token's own expiry is deliberately not enforced here; the store
// TTL on the refresh entry is the effective refresh lifetime, so an
// expired-but-stored token still rotates and an unexpired-but-evicted
// one does not.
//
// A mismatch with the stored value, including an absent entry, surfaces
// as [ErrReplayDetected]: it means the token was superseded and is being
// presented again, possibly after theft. With strict rotation enabled,
// the losing side of two concurrent refreshes reports the same error.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if !e.ready() {
		return AuthResult{}, ErrEngineNotReady
	}

	deps := flows.RefreshDeps{
		VerifyAllowExpired: func(tokenString string) (*token.Claims, error) {
			return e.codec.Verify(tokenString, true)
		},
		GetRefresh:    e.store.GetRefresh,
		StoreNotFound: store.ErrNotFound,
		StoreConflict: store.ErrConflict,
		RevokeOld: func(ctx context.Context, claims *token.Claims) error {
			remaining := claims.Remaining(time.Now())
			if remaining <= 0 {
				return nil
			}
			return e.store.Revoke(ctx, claims.ID, remaining)
		},
		MintAccess: func(p flows.Principal) (string, error) {
			return e.codec.Mint(p.ID, token.TypeAccess, p.AccountType, p.Role, e.config.Token.AccessTTL)
		},
		MintRefresh: func(p flows.Principal) (string, error) {
			return e.codec.Mint(p.ID, token.TypeRefresh, p.AccountType, p.Role, e.config.Token.RefreshTTL)
		},
		SaveRefresh: func(ctx context.Context, principalID, presented, next string) error {
			if e.config.Session.StrictRotation {
				return e.store.ReplaceRefresh(ctx, principalID, presented, next, e.config.Token.RefreshTTL)
			}
			return e.store.PutRefresh(ctx, principalID, next, e.config.Token.RefreshTTL)
		},
	}
	if limiter := e.refreshThrottle(); limiter != nil {
		deps.RateLimiter = limiter
	}

	result := flows.RunRefresh(ctx, refreshToken, deps)

	switch result.Failure {
	case flows.RefreshFailureNone:
		e.metricInc(MetricRefreshSuccess)
		e.metricInc(MetricTokenRevoked)
		e.emitAudit(ctx, AuditRefreshSuccess, result.PrincipalID, result.OldTokenID, true, nil, nil)
		return AuthResult{
			AccessToken:   result.AccessToken,
			RefreshToken:  result.RefreshToken,
			Authenticated: true,
		}, nil

	case flows.RefreshFailureVerify:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, AuditRefreshInvalid, "", "", false, result.Err, nil)
		return AuthResult{}, result.Err

	case flows.RefreshFailureWrongType:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, AuditRefreshInvalid, result.PrincipalID, "", false, result.Err, nil)
		return AuthResult{}, fmt.Errorf("%w: %v", ErrTokenInvalid, result.Err)

	case flows.RefreshFailureRateLimited:
		e.metricInc(MetricRefreshRateLimited)
		e.emitAudit(ctx, AuditRefreshRateLimited, result.PrincipalID, "", false, result.Err, nil)
		if errors.Is(result.Err, rate.ErrUnavailable) {
			return AuthResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, result.Err)
		}
		return AuthResult{}, ErrRefreshRateLimited

	case flows.RefreshFailureReplay:
		e.metricInc(MetricReplayDetected)
		e.emitAudit(ctx, AuditRefreshReuse, result.PrincipalID, result.OldTokenID, false, result.Err, nil)
		return AuthResult{}, ErrReplayDetected

	default: // mint or store failure
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, AuditRefreshInvalid, result.PrincipalID, result.OldTokenID, false, result.Err, nil)
		return AuthResult{}, result.Err
	}
}

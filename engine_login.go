package sessionauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/examly/sessionauth/internal/flows"
	"github.com/examly/sessionauth/internal/rate"
	"github.com/examly/sessionauth/token"
)

// Login verifies credentials through the [IdentityProvider], mints an
// access+refresh token pair, and stores the refresh token as the
// principal's single current one, displacing any previous session.
//
// Failed credentials always surface as [ErrInvalidCredentials],
// identical for unknown identifiers and wrong passwords. Infrastructure
// failures surface as [ErrIdentityUnavailable] or [ErrStoreUnavailable];
// exhausted attempt budgets as [ErrLoginRateLimited].
func (e *Engine) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if !e.ready() {
		return AuthResult{}, ErrEngineNotReady
	}

	deps := flows.LoginDeps{
		ClientIP:           clientIPFromContext,
		InvalidCredentials: ErrInvalidCredentials,
		Authenticate: func(ctx context.Context, email, password string) (flows.Principal, error) {
			p, err := e.identity.Authenticate(ctx, email, password)
			if err != nil {
				return flows.Principal{}, err
			}
			return flows.Principal{
				ID:          p.ID,
				Role:        string(p.Role),
				AccountType: string(p.AccountType()),
			}, nil
		},
		MintAccess: func(p flows.Principal) (string, error) {
			return e.codec.Mint(p.ID, token.TypeAccess, p.AccountType, p.Role, e.config.Token.AccessTTL)
		},
		MintRefresh: func(p flows.Principal) (string, error) {
			return e.codec.Mint(p.ID, token.TypeRefresh, p.AccountType, p.Role, e.config.Token.RefreshTTL)
		},
		PutRefresh: func(ctx context.Context, principalID, refreshToken string) error {
			return e.store.PutRefresh(ctx, principalID, refreshToken, e.config.Token.RefreshTTL)
		},
		Warn: e.warnf,
	}
	if limiter := e.loginThrottle(); limiter != nil {
		deps.RateLimiter = limiter
	}

	result := flows.RunLogin(ctx, email, password, deps)

	switch result.Failure {
	case flows.LoginFailureNone:
		e.metricInc(MetricLoginSuccess)
		e.emitAudit(ctx, AuditLoginSuccess, result.Principal.ID, "", true, nil, nil)
		return AuthResult{
			AccessToken:   result.AccessToken,
			RefreshToken:  result.RefreshToken,
			Authenticated: true,
		}, nil

	case flows.LoginFailureRateLimited:
		e.metricInc(MetricLoginRateLimited)
		e.emitAudit(ctx, AuditLoginRateLimited, "", "", false, result.Err, func() map[string]string {
			return map[string]string{"identifier": email}
		})
		if errors.Is(result.Err, rate.ErrUnavailable) {
			return AuthResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, result.Err)
		}
		return AuthResult{}, ErrLoginRateLimited

	case flows.LoginFailureCredentials:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, AuditLoginFailure, "", "", false, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"identifier": email}
		})
		return AuthResult{}, ErrInvalidCredentials

	case flows.LoginFailureIdentity:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, AuditLoginFailure, "", "", false, result.Err, nil)
		return AuthResult{}, fmt.Errorf("%w: %v", ErrIdentityUnavailable, result.Err)

	case flows.LoginFailureStore:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, AuditLoginFailure, result.Principal.ID, "", false, result.Err, nil)
		return AuthResult{}, result.Err

	default: // LoginFailureMint
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, AuditLoginFailure, result.Principal.ID, "", false, result.Err, nil)
		return AuthResult{}, result.Err
	}
}

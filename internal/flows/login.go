package flows

import (
	"context"
	"errors"
)

// Principal is the authenticated subject as resolved by the identity
// provider, reduced to the fields that end up in token claims.
type Principal struct {
	ID          string
	Role        string
	AccountType string
}

// LoginFailureKind classifies login flow failures for root-level mapping.
type LoginFailureKind int

const (
	LoginFailureNone LoginFailureKind = iota
	LoginFailureRateLimited
	LoginFailureCredentials
	LoginFailureIdentity
	LoginFailureMint
	LoginFailureStore
)

// LoginResult carries either the issued token pair or failure metadata.
type LoginResult struct {
	Failure      LoginFailureKind
	Err          error
	Principal    Principal
	AccessToken  string
	RefreshToken string
}

// LoginRateLimiter is the attempt-budget capability for login.
type LoginRateLimiter interface {
	CheckLogin(ctx context.Context, identifier, ip string) error
	RecordLoginFailure(ctx context.Context, identifier, ip string) error
	ResetLogin(ctx context.Context, identifier, ip string) error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	ClientIP           func(context.Context) string
	Authenticate       func(ctx context.Context, email, password string) (Principal, error)
	InvalidCredentials error
	MintAccess         func(Principal) (string, error)
	MintRefresh        func(Principal) (string, error)
	PutRefresh         func(ctx context.Context, principalID, refreshToken string) error
	RateLimiter        LoginRateLimiter
	Warn               func(string, ...any)
}

// RunLogin resolves the principal, mints an access+refresh pair, and
// stores the refresh token as the principal's single current one.
// Either both tokens are minted and the refresh token stored, or nothing
// is returned; no step is retried internally.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) LoginResult {
	ip := ""
	if deps.ClientIP != nil {
		ip = deps.ClientIP(ctx)
	}

	if deps.RateLimiter != nil {
		if err := deps.RateLimiter.CheckLogin(ctx, email, ip); err != nil {
			return LoginResult{Failure: LoginFailureRateLimited, Err: err}
		}
	}

	principal, err := deps.Authenticate(ctx, email, password)
	if err != nil {
		if deps.InvalidCredentials != nil && errors.Is(err, deps.InvalidCredentials) {
			if deps.RateLimiter != nil {
				if recErr := deps.RateLimiter.RecordLoginFailure(ctx, email, ip); recErr != nil && deps.Warn != nil {
					deps.Warn("sessionauth: login failure bookkeeping failed")
				}
			}
			return LoginResult{Failure: LoginFailureCredentials, Err: err}
		}
		return LoginResult{Failure: LoginFailureIdentity, Err: err}
	}

	if deps.RateLimiter != nil {
		if resetErr := deps.RateLimiter.ResetLogin(ctx, email, ip); resetErr != nil && deps.Warn != nil {
			deps.Warn("sessionauth: login counter reset failed")
		}
	}

	access, err := deps.MintAccess(principal)
	if err != nil {
		return LoginResult{Failure: LoginFailureMint, Err: err, Principal: principal}
	}

	refresh, err := deps.MintRefresh(principal)
	if err != nil {
		return LoginResult{Failure: LoginFailureMint, Err: err, Principal: principal}
	}

	if err := deps.PutRefresh(ctx, principal.ID, refresh); err != nil {
		return LoginResult{Failure: LoginFailureStore, Err: err, Principal: principal}
	}

	return LoginResult{
		Failure:      LoginFailureNone,
		Principal:    principal,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

package flows

import (
	"context"
	"errors"

	"github.com/examly/sessionauth/token"
)

// RefreshFailureKind classifies refresh flow failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureVerify
	RefreshFailureWrongType
	RefreshFailureRateLimited
	RefreshFailureReplay
	RefreshFailureMint
	RefreshFailureStore
)

// RefreshResult carries either the rotated token pair or failure metadata.
type RefreshResult struct {
	Failure      RefreshFailureKind
	Err          error
	PrincipalID  string
	OldTokenID   string
	AccessToken  string
	RefreshToken string
}

// RefreshRateLimiter is the attempt-budget capability for refresh.
type RefreshRateLimiter interface {
	CheckRefresh(ctx context.Context, principalID string) error
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	// VerifyAllowExpired checks structure and signature but not the
	// token's own expiry: the store TTL on the refresh entry is the
	// effective refresh lifetime.
	VerifyAllowExpired func(string) (*token.Claims, error)
	RateLimiter        RefreshRateLimiter
	GetRefresh         func(ctx context.Context, principalID string) (string, error)
	StoreNotFound      error
	RevokeOld          func(ctx context.Context, claims *token.Claims) error
	MintAccess         func(Principal) (string, error)
	MintRefresh        func(Principal) (string, error)
	SaveRefresh        func(ctx context.Context, principalID, presented, next string) error
	StoreConflict      error
}

var errNotRefreshToken = errors.New("not a refresh token")

// RunRefresh executes refresh rotation with reuse detection: the
// presented token must equal, byte for byte, the single stored refresh
// token for its subject. A mismatch — including an absent entry — is
// treated as a possible theft signal, not a plain validation failure.
func RunRefresh(ctx context.Context, refreshToken string, deps RefreshDeps) RefreshResult {
	claims, err := deps.VerifyAllowExpired(refreshToken)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureVerify, Err: err}
	}

	if claims.Type != string(token.TypeRefresh) || claims.Subject == "" {
		return RefreshResult{Failure: RefreshFailureWrongType, Err: errNotRefreshToken}
	}

	principalID := claims.Subject

	if deps.RateLimiter != nil {
		if err := deps.RateLimiter.CheckRefresh(ctx, principalID); err != nil {
			return RefreshResult{
				Failure:     RefreshFailureRateLimited,
				Err:         err,
				PrincipalID: principalID,
			}
		}
	}

	stored, err := deps.GetRefresh(ctx, principalID)
	if err != nil {
		if deps.StoreNotFound != nil && errors.Is(err, deps.StoreNotFound) {
			return RefreshResult{
				Failure:     RefreshFailureReplay,
				Err:         err,
				PrincipalID: principalID,
				OldTokenID:  claims.ID,
			}
		}
		return RefreshResult{
			Failure:     RefreshFailureStore,
			Err:         err,
			PrincipalID: principalID,
		}
	}

	if stored != refreshToken {
		return RefreshResult{
			Failure:     RefreshFailureReplay,
			Err:         errors.New("presented refresh token superseded"),
			PrincipalID: principalID,
			OldTokenID:  claims.ID,
		}
	}

	if err := deps.RevokeOld(ctx, claims); err != nil {
		return RefreshResult{
			Failure:     RefreshFailureStore,
			Err:         err,
			PrincipalID: principalID,
			OldTokenID:  claims.ID,
		}
	}

	principal := Principal{
		ID:          principalID,
		Role:        claims.Scope,
		AccountType: claims.AccountType,
	}

	access, err := deps.MintAccess(principal)
	if err != nil {
		return RefreshResult{
			Failure:     RefreshFailureMint,
			Err:         err,
			PrincipalID: principalID,
			OldTokenID:  claims.ID,
		}
	}

	next, err := deps.MintRefresh(principal)
	if err != nil {
		return RefreshResult{
			Failure:     RefreshFailureMint,
			Err:         err,
			PrincipalID: principalID,
			OldTokenID:  claims.ID,
		}
	}

	if err := deps.SaveRefresh(ctx, principalID, refreshToken, next); err != nil {
		failure := RefreshFailureStore
		if deps.StoreConflict != nil && errors.Is(err, deps.StoreConflict) {
			// Strict rotation lost the race to a concurrent refresh.
			failure = RefreshFailureReplay
		}
		return RefreshResult{
			Failure:     failure,
			Err:         err,
			PrincipalID: principalID,
			OldTokenID:  claims.ID,
		}
	}

	return RefreshResult{
		Failure:      RefreshFailureNone,
		PrincipalID:  principalID,
		OldTokenID:   claims.ID,
		AccessToken:  access,
		RefreshToken: next,
	}
}

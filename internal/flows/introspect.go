package flows

import (
	"context"

	"github.com/examly/sessionauth/token"
)

// IntrospectResult reports token liveness. Cause is populated for
// metrics and the claims-returning verify path; the introspection
// surface itself never distinguishes failure reasons.
type IntrospectResult struct {
	Valid  bool
	Claims *token.Claims
	Cause  error
}

// IntrospectDeps captures introspection flow dependencies.
type IntrospectDeps struct {
	Verify    func(string) (*token.Claims, error)
	IsRevoked func(ctx context.Context, jti string) (bool, error)
	Revoked   error
}

// RunIntrospect verifies signature and expiry, then checks the
// revocation marker. A marker's absence does not imply validity; its
// presence always implies invalidity. The flow is side-effect free.
func RunIntrospect(ctx context.Context, tokenString string, deps IntrospectDeps) IntrospectResult {
	claims, err := deps.Verify(tokenString)
	if err != nil {
		return IntrospectResult{Cause: err}
	}

	revoked, err := deps.IsRevoked(ctx, claims.ID)
	if err != nil {
		return IntrospectResult{Claims: claims, Cause: err}
	}
	if revoked {
		return IntrospectResult{Claims: claims, Cause: deps.Revoked}
	}

	return IntrospectResult{Valid: true, Claims: claims}
}

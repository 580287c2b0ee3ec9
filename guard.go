package sessionauth

import (
	"fmt"

	"github.com/examly/sessionauth/token"
)

// RequireRole checks the scope claim against an allow-list of roles.
// It returns nil when the claim matches any listed role and
// [ErrForbidden] otherwise. Claims must come from [Engine.VerifyAccess];
// RequireRole performs no verification of its own.
func RequireRole(claims *token.Claims, roles ...Role) error {
	if claims == nil {
		return ErrForbidden
	}
	for _, role := range roles {
		if claims.Scope == string(role) {
			return nil
		}
	}
	return fmt.Errorf("%w: scope %q", ErrForbidden, claims.Scope)
}

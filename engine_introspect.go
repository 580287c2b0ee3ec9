package sessionauth

import (
	"context"
	"fmt"
	"time"

	"github.com/examly/sessionauth/internal/flows"
	"github.com/examly/sessionauth/token"
)

// Introspect reports whether a token is currently live: well-formed,
// signed with the shared secret, unexpired, and not revoked. The result
// is a bare boolean; callers that need to distinguish causes use
// [Engine.VerifyAccess].
//
// A store failure during the revocation check yields Valid=false rather
// than an error: introspection fails closed.
func (e *Engine) Introspect(ctx context.Context, tokenString string) IntrospectionResult {
	if !e.ready() {
		return IntrospectionResult{}
	}

	start := time.Now()
	result := e.runIntrospect(ctx, tokenString)
	e.metrics.Observe(MetricIntrospectLatency, time.Since(start))

	if result.Valid {
		e.metricInc(MetricIntrospectValid)
	} else {
		e.metricInc(MetricIntrospectInvalid)
	}
	return IntrospectionResult{Valid: result.Valid}
}

// VerifyAccess is the claims-returning verification used by resource
// guards. It applies the same checks as Introspect plus the type check,
// and reports the cause: [ErrTokenMalformed], [ErrBadSignature],
// [ErrTokenExpired], [ErrTokenInvalid] for a non-access token,
// [ErrTokenRevoked], or [ErrStoreUnavailable].
func (e *Engine) VerifyAccess(ctx context.Context, tokenString string) (*token.Claims, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	result := e.runIntrospect(ctx, tokenString)
	if !result.Valid {
		return nil, result.Cause
	}
	if result.Claims.Type != string(token.TypeAccess) {
		return nil, fmt.Errorf("%w: not an access token", ErrTokenInvalid)
	}
	return result.Claims, nil
}

func (e *Engine) runIntrospect(ctx context.Context, tokenString string) flows.IntrospectResult {
	return flows.RunIntrospect(ctx, tokenString, flows.IntrospectDeps{
		Verify: func(tokenString string) (*token.Claims, error) {
			return e.codec.Verify(tokenString, false)
		},
		IsRevoked: e.store.IsRevoked,
		Revoked:   ErrTokenRevoked,
	})
}

package sessionauth

import (
	"context"
	"time"

	internalaudit "github.com/examly/sessionauth/internal/audit"
)

// Audit event types emitted by the engine.
const (
	AuditLoginSuccess       = "login_success"
	AuditLoginFailure       = "login_failure"
	AuditLoginRateLimited   = "login_rate_limited"
	AuditRefreshSuccess     = "refresh_success"
	AuditRefreshInvalid     = "refresh_invalid"
	AuditRefreshReuse       = "refresh_reuse_detected"
	AuditRefreshRateLimited = "refresh_rate_limited"
	AuditLogout             = "logout"
)

// emitAudit enqueues an event on the dispatcher. metadata is a func so
// callers pay for map construction only when auditing is enabled.
func (e *Engine) emitAudit(ctx context.Context, eventType, principalID, tokenID string, success bool, failure error, metadata func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	event := internalaudit.Event{
		Timestamp:   time.Now(),
		EventType:   eventType,
		PrincipalID: principalID,
		TokenID:     tokenID,
		IP:          clientIPFromContext(ctx),
		Success:     success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.audit.Emit(ctx, event)
}

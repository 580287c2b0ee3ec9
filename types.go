package sessionauth

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/examly/sessionauth/internal/audit"
	internalmetrics "github.com/examly/sessionauth/internal/metrics"
)

// Role is the enumerated capability class carried in the scope claim.
// Values are open strings; the constants below are the roles the exam
// platform uses.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// AccountType is the account tier carried in the accountType claim.
type AccountType string

const (
	AccountFree    AccountType = "FREE"
	AccountPremium AccountType = "PREMIUM"
)

// Principal is the authenticated subject as resolved by the
// [IdentityProvider]. The engine treats it as an immutable value fetched
// at mint time; it is never persisted here.
type Principal struct {
	ID      string
	Role    Role
	Premium bool
}

// AccountType derives the claim value from the premium flag.
func (p Principal) AccountType() AccountType {
	if p.Premium {
		return AccountPremium
	}
	return AccountFree
}

// IdentityProvider resolves credentials to a verified [Principal].
// Implementations own password storage and hashing policy entirely.
//
// Authenticate must return [ErrInvalidCredentials] for both "no such
// user" and "wrong password" so the two are indistinguishable to
// callers; any other error is treated as an identity-provider outage.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (Principal, error)
}

// AuthResult is returned by [Engine.Login] and [Engine.Refresh].
type AuthResult struct {
	AccessToken   string
	RefreshToken  string
	Authenticated bool
}

// IntrospectionResult is returned by [Engine.Introspect]. It reports
// liveness only; the causes of invalidity are deliberately collapsed.
type IntrospectionResult struct {
	Valid bool
}

// HealthStatus is an on-demand backend health result.
type HealthStatus struct {
	StoreAvailable bool
	StoreLatency   time.Duration
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit
// dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter or histogram bucket in the
// in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	MetricLoginSuccess       = internalmetrics.MetricLoginSuccess
	MetricLoginFailure       = internalmetrics.MetricLoginFailure
	MetricLoginRateLimited   = internalmetrics.MetricLoginRateLimited
	MetricRefreshSuccess     = internalmetrics.MetricRefreshSuccess
	MetricRefreshFailure     = internalmetrics.MetricRefreshFailure
	MetricReplayDetected     = internalmetrics.MetricReplayDetected
	MetricRefreshRateLimited = internalmetrics.MetricRefreshRateLimited
	MetricLogout             = internalmetrics.MetricLogout
	MetricTokenRevoked       = internalmetrics.MetricTokenRevoked
	MetricIntrospectValid    = internalmetrics.MetricIntrospectValid
	MetricIntrospectInvalid  = internalmetrics.MetricIntrospectInvalid
	MetricIntrospectLatency  = internalmetrics.MetricIntrospectLatency
)

// Metrics holds atomic counters and optional latency histograms.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}

package sessionauth

import (
	"context"
	"log"

	internalaudit "github.com/examly/sessionauth/internal/audit"
	internalmetrics "github.com/examly/sessionauth/internal/metrics"
	"github.com/examly/sessionauth/internal/rate"
	"github.com/examly/sessionauth/store"
	"github.com/examly/sessionauth/token"
)

// Engine is the session-token lifecycle manager. It is immutable after
// [Builder.Build] and safe for concurrent use.
type Engine struct {
	config   Config
	codec    *token.Codec
	store    store.Store
	limiter  *rate.Limiter
	identity IdentityProvider
	audit    *internalaudit.Dispatcher
	metrics  *internalmetrics.Metrics
}

// Close releases engine-owned resources: the audit dispatcher goroutine
// is stopped after draining buffered events. The store and Redis client
// are caller-owned and untouched.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// MetricsSnapshot returns a point-in-time copy of all recorded metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// Health pings the session store and reports reachability and latency.
func (e *Engine) Health(ctx context.Context) HealthStatus {
	if e == nil || e.store == nil {
		return HealthStatus{}
	}
	latency, err := e.store.Ping(ctx)
	return HealthStatus{
		StoreAvailable: err == nil,
		StoreLatency:   latency,
	}
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}

func (e *Engine) warnf(format string, args ...any) {
	log.Printf(format, args...)
}

func (e *Engine) ready() bool {
	return e != nil && e.codec != nil && e.store != nil
}

// loginThrottle returns the limiter for the login path, or nil when
// login throttling is not configured.
func (e *Engine) loginThrottle() *rate.Limiter {
	if e.limiter == nil {
		return nil
	}
	if !e.config.RateLimit.EnableLoginThrottle && !e.config.RateLimit.EnableIPThrottle {
		return nil
	}
	return e.limiter
}

// refreshThrottle returns the limiter for the refresh path, or nil when
// refresh throttling is not configured.
func (e *Engine) refreshThrottle() *rate.Limiter {
	if e.limiter == nil || !e.config.RateLimit.EnableRefreshThrottle {
		return nil
	}
	return e.limiter
}

package internaldefs

import (
	"github.com/examly/sessionauth/internal/metrics"
)

// CounterDef binds a metric slot to its stable exported name.
type CounterDef struct {
	ID   metrics.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram slot to its stable exported name.
type HistogramDef struct {
	ID   metrics.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter. Order is the exposition
// order; names never change once released.
var CounterDefs = []CounterDef{
	{ID: metrics.MetricLoginSuccess, Name: "sessionauth_login_success_total", Help: "Successful login attempts."},
	{ID: metrics.MetricLoginFailure, Name: "sessionauth_login_failure_total", Help: "Failed login attempts."},
	{ID: metrics.MetricLoginRateLimited, Name: "sessionauth_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: metrics.MetricRefreshSuccess, Name: "sessionauth_refresh_success_total", Help: "Successful refresh rotations."},
	{ID: metrics.MetricRefreshFailure, Name: "sessionauth_refresh_failure_total", Help: "Failed refresh attempts."},
	{ID: metrics.MetricReplayDetected, Name: "sessionauth_replay_detected_total", Help: "Detected refresh token reuses."},
	{ID: metrics.MetricRefreshRateLimited, Name: "sessionauth_refresh_rate_limited_total", Help: "Rate-limited refresh attempts."},
	{ID: metrics.MetricLogout, Name: "sessionauth_logout_total", Help: "Logout operations."},
	{ID: metrics.MetricTokenRevoked, Name: "sessionauth_token_revoked_total", Help: "Revocation markers written."},
	{ID: metrics.MetricIntrospectValid, Name: "sessionauth_introspect_valid_total", Help: "Introspections that reported a live token."},
	{ID: metrics.MetricIntrospectInvalid, Name: "sessionauth_introspect_invalid_total", Help: "Introspections that reported an invalid token."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: metrics.MetricIntrospectLatency, Name: "sessionauth_introspect_latency_seconds", Help: "Introspection latency histogram."},
}

// HistogramBounds are the upper bounds rendered as Prometheus le labels.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds as OTel-safe instrument name
// suffixes, index-aligned with HistogramBounds.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count; a nil slice yields all zeros.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms require; the last entry is the total count.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}

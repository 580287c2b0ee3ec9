// Package prometheus renders sessionauth metrics in Prometheus text
// exposition format.
//
// [NewExporter] accepts a [sessionauth.Engine] and exposes an
// [net/http.Handler] that renders every counter and histogram. Counter
// names are prefixed sessionauth_*_total; the single histogram is
// sessionauth_introspect_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount
//     the Handler.
//   - Mutate engine state.
package prometheus

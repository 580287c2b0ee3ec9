// Package flows contains the orchestration logic for the session-token
// lifecycle: login, introspection, logout, and refresh-with-rotation.
//
// Each flow is a Run* function over a Deps struct of injected
// capabilities plus a failure-kind enum. The root package owns mapping
// failure kinds to its sentinel errors, metrics, and audit events; flows
// stay free of root types so they can be exercised in isolation.
package flows

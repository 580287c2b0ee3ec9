// Package audit implements asynchronous audit event dispatch for
// sessionauth.
//
// Events are emitted by the engine on security-relevant transitions
// (login, refresh, replay detection, logout) and forwarded to a
// caller-provided Sink by a single dispatcher goroutine, so a slow sink
// never blocks the request path.
//
// # Architecture boundaries
//
// This package owns the event model, the sink implementations, and the
// buffering dispatcher. Which operations emit which events is decided at
// the root.
package audit

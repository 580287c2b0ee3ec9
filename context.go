package sessionauth

import "context"

type contextKey int

const clientIPKey contextKey = iota

// WithClientIP attaches the caller's remote address to the context so
// login throttling and audit events can record it. The engine never
// derives the IP itself; the transport layer owns that decision.
func WithClientIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, clientIPKey, ip)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

package auth

import "context"

type contextKey int

const requestInfoKey contextKey = iota

// RequestInfo describes the invocation being authorized. It is used for
// logging only and never influences the decision.
type RequestInfo struct {
	RequestID string
	MethodARN string
}

// WithRequestInfo returns a new context carrying info.
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

// RequestInfoFromContext returns the RequestInfo in ctx, if any.
func RequestInfoFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey).(RequestInfo)
	return info, ok
}

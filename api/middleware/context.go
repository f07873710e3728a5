package middleware

import "context"

type (
	userKey   struct{}
	accessKey struct{}
	traceKey  struct{}
)

// trace is shared by every layer of one request. RequestID installs it and
// inner middleware fill it in, so outer layers can read what was resolved
// below them after the handler returns.
type trace struct {
	requestID string
	userID    string
}

func traceFrom(ctx context.Context) *trace {
	t, _ := ctx.Value(traceKey{}).(*trace)
	return t
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(userKey{}).(string)
	return v
}

// AccessIDFromContext is the jti of the token that authenticated the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(accessKey{}).(string)
	return v
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if t := traceFrom(ctx); t != nil {
		return t.requestID
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if t := traceFrom(ctx); t != nil {
		t.userID = userID
	}
	return context.WithValue(ctx, userKey{}, userID)
}

func withAccessID(ctx context.Context, accessID string) context.Context {
	return context.WithValue(ctx, accessKey{}, accessID)
}

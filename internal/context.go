package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextPrincipalKey ctxKey = "principal_name"

// PrincipalNameFromContext returns the username of the authenticated caller,
// or "" for anonymous requests.
func PrincipalNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if name, ok := ctx.Value(ContextPrincipalKey).(string); ok {
		return name
	}
	return ""
}

func ContextWithPrincipalName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, name)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}

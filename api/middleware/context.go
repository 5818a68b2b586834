package middleware

import "context"

type contextKey string

const (
	ctxOperatorEmail contextKey = "operator_email"
	ctxSessionID     contextKey = "session_id"
)

// OperatorFromContext returns the authenticated operator's email.
func OperatorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxOperatorEmail).(string); ok {
		return v
	}
	return ""
}

// SessionIDFromContext returns the jti of the authenticated session.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithOperator injects the operator identity, for tests and downstream handlers.
func WithOperator(ctx context.Context, email, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxOperatorEmail, email)
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

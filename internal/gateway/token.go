package gateway

import "context"

type tokenKey struct{}

// WithToken stores the bearer token for every upstream call made under ctx.
// The session middleware sets it once per page request; call bundles never
// see token handling.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	if v := ctx.Value(tokenKey{}); v != nil {
		if t, ok := v.(string); ok {
			return t
		}
	}
	return ""
}

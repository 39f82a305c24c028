package auth

import (
	"context"

	"github.com/labstack/echo/v4"
)

type contextKey int

const ctxKeyAuthToken contextKey = iota

// WithAuthToken returns a context carrying the delegated session token.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyAuthToken, token)
}

// AuthTokenFromContext returns the delegated session token, or an empty
// string for unauthenticated requests.
func AuthTokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(ctxKeyAuthToken).(string)
	if !ok {
		return ""
	}

	return token
}

// AuthTokenFromEchoContext returns the delegated session token bound to the
// request, or an empty string for unauthenticated requests.
func AuthTokenFromEchoContext(c echo.Context) string {
	return AuthTokenFromContext(c.Request().Context())
}

package http

import (
	"context"
	"errors"

	"rental-pricing-backend/internal/security"
)

type contextKey int

const (
	claimsKey contextKey = iota
	requestIDKey
)

var errNoUser = errors.New("user is not authenticated")

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetUserIDFromContext returns the id of the authenticated user.
func GetUserIDFromContext(ctx context.Context) (int32, error) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	if !ok || claims == nil {
		return 0, errNoUser
	}
	return claims.UserID, nil
}

// RequestIDFromContext returns the request id assigned by the middleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

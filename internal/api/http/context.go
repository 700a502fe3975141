package http

import (
	"context"

	"rentledger-backend/internal/domain"
)

type contextKey string

const userIDKey contextKey = "user_id"

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// userIDFrom extracts the authenticated user id set by the auth
// middleware.
func userIDFrom(ctx context.Context) (string, error) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

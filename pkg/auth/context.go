package auth

import (
	"context"
	"errors"
)

// UserContext is the authenticated caller identity carried in the request
// context.
type UserContext struct {
	UserID string
	Email  string
}

type contextKey string

const userContextKey contextKey = "auth_user"

// WithUser attaches the authenticated user to the context
func WithUser(ctx context.Context, user UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the authenticated user from the context
func GetUserFromContext(ctx context.Context) (UserContext, error) {
	user, ok := ctx.Value(userContextKey).(UserContext)
	if !ok || user.UserID == "" {
		return UserContext{}, errors.New("no authenticated user in context")
	}
	return user, nil
}

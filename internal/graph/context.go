package graph

import (
	"context"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
)

type contextKey int

const userContextKey contextKey = iota

// WithUser stores the resolved caller identity on the request context
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser returns the authenticated caller, or nil when the request
// is anonymous
func CurrentUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

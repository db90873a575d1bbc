package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
)

// UserContext holds the authenticated actor for one request. The role is
// loaded from the user store, never taken from the token payload.
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Role        domain.Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// IsAdmin checks if the actor holds the admin role
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// IsExecutive checks if the actor sits in the top visibility tier and sees
// the whole organization
func (u *UserContext) IsExecutive() bool {
	switch u.Role {
	case domain.RoleAdmin, domain.RolePresident, domain.RoleGM, domain.RoleVP:
		return true
	}
	return false
}

// CanReview checks if the actor's role is high enough to review activities.
// Scope containment is checked separately against the resolved scope.
func (u *UserContext) CanReview() bool {
	return u.Role.Rank() >= domain.RoleTeamlead.Rank()
}

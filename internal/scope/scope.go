// Package scope computes and carries the organizational visibility of an
// actor. Every read is filtered by a resolved ScopeSet and every mutation is
// checked against one; no other layer re-derives who may see what.
package scope

import (
	"context"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
)

// ScopeSet is the resolved visibility of one actor: the teams, groups and
// salespeople they may observe, and the groups they may mutate. An actor is
// always part of their own scope. A set with no units beyond the actor is
// valid and simply yields no data.
type ScopeSet struct {
	ActorID   uuid.UUID
	Role      domain.Role
	AllAccess bool

	TeamIDs         []uuid.UUID
	GroupIDs        []uuid.UUID
	UserIDs         []uuid.UUID
	MutableGroupIDs []uuid.UUID
}

// ContainsUser reports whether the salesperson is visible in this scope
func (s *ScopeSet) ContainsUser(id uuid.UUID) bool {
	if s.AllAccess {
		return true
	}
	for _, u := range s.UserIDs {
		if u == id {
			return true
		}
	}
	return false
}

// ContainsGroup reports whether the group is visible in this scope
func (s *ScopeSet) ContainsGroup(id uuid.UUID) bool {
	if s.AllAccess {
		return true
	}
	for _, g := range s.GroupIDs {
		if g == id {
			return true
		}
	}
	return false
}

// ContainsTeam reports whether the team is visible in this scope
func (s *ScopeSet) ContainsTeam(id uuid.UUID) bool {
	if s.AllAccess {
		return true
	}
	for _, t := range s.TeamIDs {
		if t == id {
			return true
		}
	}
	return false
}

// CanMutateGroup reports whether activities owned inside the group may be
// changed by this actor
func (s *ScopeSet) CanMutateGroup(id uuid.UUID) bool {
	if s.AllAccess {
		return true
	}
	for _, g := range s.MutableGroupIDs {
		if g == id {
			return true
		}
	}
	return false
}

// CanMutateUser reports whether activities owned by the given salesperson may
// be changed by this actor. Salespeople may only change their own.
func (s *ScopeSet) CanMutateUser(ownerID uuid.UUID) bool {
	if s.AllAccess {
		return true
	}
	if s.Role == domain.RoleSalesperson {
		return ownerID == s.ActorID
	}
	return s.ContainsUser(ownerID)
}

// IsEmpty reports whether the scope sees nothing beyond the actor themselves
func (s *ScopeSet) IsEmpty() bool {
	return !s.AllAccess && len(s.GroupIDs) == 0 && len(s.TeamIDs) == 0 && len(s.UserIDs) <= 1
}

// Key identifies the scope for report snapshots and insight ordering. All
// top-tier actors share the organization-wide key.
func (s *ScopeSet) Key() string {
	if s.AllAccess {
		return "org"
	}
	return string(s.Role) + ":" + s.ActorID.String()
}

type contextKey string

const scopeContextKey contextKey = "scopeSet"

// WithContext attaches a resolved scope to the context
func WithContext(ctx context.Context, s *ScopeSet) context.Context {
	return context.WithValue(ctx, scopeContextKey, s)
}

// FromContext extracts the resolved scope from the context
func FromContext(ctx context.Context) (*ScopeSet, bool) {
	s, ok := ctx.Value(scopeContextKey).(*ScopeSet)
	return s, ok
}

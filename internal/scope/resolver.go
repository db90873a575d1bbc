package scope

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"go.uber.org/zap"
)

// GraphReader loads the slices of the org graph the resolver dispatches
// over. Implemented by the org repository.
type GraphReader interface {
	TeamsOwnedBy(ctx context.Context, userID uuid.UUID) ([]domain.Team, error)
	GroupsSupervisedBy(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	GroupsLedBy(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	GroupsInTeams(ctx context.Context, teamIDs []uuid.UUID) ([]domain.Group, error)
	MembersOfGroups(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Membership, error)
}

// Resolver computes ScopeSets from the org graph. It is the single
// authorization choke point for the whole API.
type Resolver struct {
	graph  GraphReader
	logger *zap.Logger
}

// NewResolver creates a new scope resolver
func NewResolver(graph GraphReader, logger *zap.Logger) *Resolver {
	return &Resolver{graph: graph, logger: logger}
}

// Resolve computes the actor's visibility. Dispatch is purely on role:
//
//   - admin, president, gm, vp: the entire organization, mutate everywhere
//   - avp, asm: owned teams and everything under them
//   - supervisor: groups reached through the supervisor edge
//   - teamlead: the same computation through the teamlead edge
//   - salesperson: themselves only
//
// An actor with no edges resolves to a scope containing only themselves,
// which downstream reads treat as "no data", never as an error.
func (r *Resolver) Resolve(ctx context.Context, actorID uuid.UUID, role domain.Role) (*ScopeSet, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("cannot resolve scope for unknown role %q", role)
	}

	s := &ScopeSet{ActorID: actorID, Role: role}

	switch role {
	case domain.RoleAdmin, domain.RolePresident, domain.RoleGM, domain.RoleVP:
		s.AllAccess = true
		return s, nil

	case domain.RoleAVP, domain.RoleASM:
		teams, err := r.graph.TeamsOwnedBy(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load owned teams: %w", err)
		}
		for _, t := range teams {
			s.TeamIDs = append(s.TeamIDs, t.ID)
		}
		groups, err := r.graph.GroupsInTeams(ctx, s.TeamIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load team groups: %w", err)
		}
		if err := r.fillFromGroups(ctx, s, groups, false); err != nil {
			return nil, err
		}

	case domain.RoleSupervisor:
		groups, err := r.graph.GroupsSupervisedBy(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load supervised groups: %w", err)
		}
		if err := r.fillFromGroups(ctx, s, groups, true); err != nil {
			return nil, err
		}

	case domain.RoleTeamlead:
		groups, err := r.graph.GroupsLedBy(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load led groups: %w", err)
		}
		if err := r.fillFromGroups(ctx, s, groups, true); err != nil {
			return nil, err
		}

	case domain.RoleSalesperson:
		// Self only; no teams or groups become visible.
	}

	// The actor always sees their own activities.
	s.UserIDs = appendUnique(s.UserIDs, actorID)

	sortIDs(s.TeamIDs)
	sortIDs(s.GroupIDs)
	sortIDs(s.UserIDs)
	sortIDs(s.MutableGroupIDs)

	r.logger.Debug("scope resolved",
		zap.String("actor_id", actorID.String()),
		zap.String("role", string(role)),
		zap.Int("teams", len(s.TeamIDs)),
		zap.Int("groups", len(s.GroupIDs)),
		zap.Int("users", len(s.UserIDs)),
	)

	return s, nil
}

// fillFromGroups adds the groups, their members, and the mutate permission
// to the scope. Supervisor and teamlead resolution share this path so the
// two edges can never drift apart. withTeams also surfaces the containing
// team ids, which team-owner roles already collected themselves.
func (r *Resolver) fillFromGroups(ctx context.Context, s *ScopeSet, groups []domain.Group, withTeams bool) error {
	groupIDs := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
		if withTeams {
			s.TeamIDs = appendUnique(s.TeamIDs, g.TeamID)
		}
	}
	s.GroupIDs = groupIDs
	s.MutableGroupIDs = append([]uuid.UUID(nil), groupIDs...)

	if len(groupIDs) == 0 {
		return nil
	}

	members, err := r.graph.MembersOfGroups(ctx, groupIDs)
	if err != nil {
		return fmt.Errorf("failed to load group members: %w", err)
	}
	for _, m := range members {
		s.UserIDs = appendUnique(s.UserIDs, m.UserID)
	}
	return nil
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}

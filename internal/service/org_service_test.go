package service_test

import (
	"testing"

	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrgService(f *serviceFixture) *service.OrgService {
	return service.NewOrgService(repository.NewOrgRepository(f.db), zap.NewNop())
}

func groupNames(groups []domain.GroupDTO) []string {
	names := make([]string, len(groups))
	for i := range groups {
		names[i] = groups[i].Name
	}
	return names
}

func TestOrgListGroups(t *testing.T) {
	f := setupFixture(t)
	svc := newOrgService(f)

	t.Run("admin sees every group", func(t *testing.T) {
		groups, err := svc.ListGroups(f.ctxFor(t, f.admin))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Beta"}, groupNames(groups))
	})

	t.Run("avp sees the groups of owned teams", func(t *testing.T) {
		groups, err := svc.ListGroups(f.ctxFor(t, f.avp))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Beta"}, groupNames(groups))
	})

	t.Run("teamlead sees only their own group", func(t *testing.T) {
		groups, err := svc.ListGroups(f.ctxFor(t, f.lead))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha"}, groupNames(groups))
	})

	t.Run("salesperson sees no groups", func(t *testing.T) {
		groups, err := svc.ListGroups(f.ctxFor(t, f.sp1))
		require.NoError(t, err)
		assert.Empty(t, groups)
	})
}

func TestOrgGetGroup(t *testing.T) {
	f := setupFixture(t)
	svc := newOrgService(f)

	t.Run("in-scope group resolves with members", func(t *testing.T) {
		group, err := svc.GetGroup(f.ctxFor(t, f.lead), f.groupAlpha.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", group.Name)
	})

	t.Run("out-of-scope group reads as not found", func(t *testing.T) {
		_, err := svc.GetGroup(f.ctxFor(t, f.lead), f.groupBeta.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

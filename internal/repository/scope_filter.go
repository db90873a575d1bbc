package repository

import (
	"context"
	"strings"

	"github.com/meridian-crm/monitor-api/internal/scope"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string    // The field to sort by (API field name)
	Order SortOrder // asc or desc
}

// DefaultSortConfig returns a default sort configuration (planned_start DESC)
func DefaultSortConfig() SortConfig {
	return SortConfig{
		Field: "plannedStart",
		Order: SortOrderDesc,
	}
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause builds the SQL ORDER BY clause from field mapping and sort config
// fieldMap maps API field names to database column names
// Returns the default sort if field is not in whitelist
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if config.Order == SortOrderAsc {
		order = "ASC"
	}

	return column + " " + order
}

// ApplyScopeFilter restricts a query to rows owned by salespeople inside the
// resolved scope. Top-tier scopes see everything and the query is returned
// unchanged. A request that somehow reaches a repository without a resolved
// scope matches nothing; visibility is never the default.
func ApplyScopeFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	return ApplyScopeFilterWithColumn(ctx, query, "owner_id")
}

// ApplyScopeFilterWithColumn applies the scope filter using a specific
// owner column name. Use this when the column needs table qualification.
func ApplyScopeFilterWithColumn(ctx context.Context, query *gorm.DB, columnName string) *gorm.DB {
	s, ok := scope.FromContext(ctx)
	if !ok {
		return query.Where("1 = 0")
	}
	if s.AllAccess {
		return query
	}
	if len(s.UserIDs) == 0 {
		return query.Where("1 = 0")
	}
	return query.Where(columnName+" IN ?", s.UserIDs)
}

// ApplyGroupScopeFilter restricts a query by group membership instead of
// ownership, for rows keyed by group_id
func ApplyGroupScopeFilter(ctx context.Context, query *gorm.DB, columnName string) *gorm.DB {
	s, ok := scope.FromContext(ctx)
	if !ok {
		return query.Where("1 = 0")
	}
	if s.AllAccess {
		return query
	}
	if len(s.GroupIDs) == 0 {
		return query.Where("1 = 0")
	}
	return query.Where(columnName+" IN ?", s.GroupIDs)
}

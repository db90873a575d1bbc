package service

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"go.uber.org/zap"
)

// ActivityLogService builds and queries activity log entries
type ActivityLogService struct {
	logRepo *repository.ActivityLogRepository
	logger  *zap.Logger
}

// NewActivityLogService creates a new activity log service
func NewActivityLogService(logRepo *repository.ActivityLogRepository, logger *zap.Logger) *ActivityLogService {
	return &ActivityLogService{
		logRepo: logRepo,
		logger:  logger,
	}
}

// LogEntry represents the input for creating an activity log entry
type LogEntry struct {
	Action     domain.LogAction
	ActivityID uuid.UUID
	OldValues  interface{}
	NewValues  interface{}
}

// BuildEntry constructs the persisted row from context and request. Mutation
// services persist the result inside the same transaction as the data write;
// read events persist it through Log.
func (s *ActivityLogService) BuildEntry(ctx context.Context, r *http.Request, entry LogEntry) *domain.ActivityLogEntry {
	row := &domain.ActivityLogEntry{
		ActivityID:  entry.ActivityID,
		Action:      entry.Action,
		PerformedAt: time.Now().UTC(),
	}

	// Extract actor info from context
	if userCtx, ok := auth.FromContext(ctx); ok && userCtx != nil {
		row.ActorID = userCtx.UserID
		row.ActorName = userCtx.DisplayName
	}

	// Extract request info
	if r != nil {
		row.SourceAddr = s.getClientIP(r)
		row.RequestID = r.Header.Get("X-Request-ID")
	}

	// Serialize old values (use "null" for JSONB compatibility when no value)
	if entry.OldValues != nil {
		if oldJSON, err := json.Marshal(entry.OldValues); err == nil {
			row.OldValues = string(oldJSON)
		} else {
			row.OldValues = "null"
		}
	} else {
		row.OldValues = "null"
	}

	// Serialize new values (use "null" for JSONB compatibility when no value)
	if entry.NewValues != nil {
		if newJSON, err := json.Marshal(entry.NewValues); err == nil {
			row.NewValues = string(newJSON)
		} else {
			row.NewValues = "null"
		}
	} else {
		row.NewValues = "null"
	}

	// Calculate the field delta when both sides exist
	if entry.OldValues != nil && entry.NewValues != nil {
		changes := s.calculateChanges(entry.OldValues, entry.NewValues)
		if changesJSON, err := json.Marshal(changes); err == nil {
			row.Changes = string(changesJSON)
		} else {
			row.Changes = "null"
		}
	} else {
		row.Changes = "null"
	}

	return row
}

// Log builds and persists an entry on its own. Only used for events that do
// not accompany a data mutation (viewed, downloaded, access_denied); mutation
// entries are written in the mutation's transaction instead.
func (s *ActivityLogService) Log(ctx context.Context, r *http.Request, entry LogEntry) error {
	row := s.BuildEntry(ctx, r, entry)

	if err := s.logRepo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create activity log entry",
			zap.String("action", string(entry.Action)),
			zap.String("activity_id", entry.ActivityID.String()),
			zap.Error(err))
		return err
	}

	return nil
}

// LogViewed records that the actor opened an activity's detail
func (s *ActivityLogService) LogViewed(ctx context.Context, r *http.Request, activityID uuid.UUID) error {
	return s.Log(ctx, r, LogEntry{
		Action:     domain.LogActionViewed,
		ActivityID: activityID,
	})
}

// LogDownloaded records that the actor exported an activity with its trail
func (s *ActivityLogService) LogDownloaded(ctx context.Context, r *http.Request, activityID uuid.UUID) error {
	return s.Log(ctx, r, LogEntry{
		Action:     domain.LogActionDownloaded,
		ActivityID: activityID,
	})
}

// LogAccessDenied records a rejected attempt on an activity route
func (s *ActivityLogService) LogAccessDenied(ctx context.Context, r *http.Request, activityID uuid.UUID) error {
	return s.Log(ctx, r, LogEntry{
		Action:     domain.LogActionAccessDenied,
		ActivityID: activityID,
	})
}

// LogQueryParams represents query parameters for listing log entries
type LogQueryParams struct {
	ActorID       *uuid.UUID
	Action        *domain.LogAction
	ActivityID    *uuid.UUID
	StartTime     *time.Time
	EndTime       *time.Time
	MutationsOnly bool
	Page          int
	PageSize      int
}

// List retrieves log entries with filters
func (s *ActivityLogService) List(ctx context.Context, params LogQueryParams) ([]domain.ActivityLogEntry, int64, error) {
	filter := &repository.ActivityLogFilter{
		ActorID:       params.ActorID,
		Action:        params.Action,
		ActivityID:    params.ActivityID,
		StartTime:     params.StartTime,
		EndTime:       params.EndTime,
		MutationsOnly: params.MutationsOnly,
	}

	return s.logRepo.List(ctx, filter, params.Page, params.PageSize)
}

// GetTrail retrieves the mutation trail of an activity, oldest first
func (s *ActivityLogService) GetTrail(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityLogEntry, error) {
	return s.logRepo.ListByActivity(ctx, activityID)
}

// GetStats returns per-action entry counts for a time range
func (s *ActivityLogService) GetStats(ctx context.Context, start, end time.Time) (map[domain.LogAction]int64, error) {
	return s.logRepo.CountByAction(ctx, start, end)
}

// calculateChanges determines what changed between old and new values
func (s *ActivityLogService) calculateChanges(oldValues, newValues interface{}) map[string]interface{} {
	changes := make(map[string]interface{})

	oldMap := s.toMap(oldValues)
	newMap := s.toMap(newValues)

	// Find modified and new fields
	for key, newVal := range newMap {
		if oldVal, exists := oldMap[key]; exists {
			if !reflect.DeepEqual(oldVal, newVal) {
				changes[key] = map[string]interface{}{
					"old": oldVal,
					"new": newVal,
				}
			}
		} else {
			changes[key] = map[string]interface{}{
				"old": nil,
				"new": newVal,
			}
		}
	}

	// Find deleted fields
	for key, oldVal := range oldMap {
		if _, exists := newMap[key]; !exists {
			changes[key] = map[string]interface{}{
				"old": oldVal,
				"new": nil,
			}
		}
	}

	return changes
}

// toMap converts an interface to a map for comparison
func (s *ActivityLogService) toMap(v interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	if v == nil {
		return result
	}

	// If already a map, return it
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}

	// Try to marshal and unmarshal to get a map
	data, err := json.Marshal(v)
	if err != nil {
		return result
	}

	_ = json.Unmarshal(data, &result)
	return result
}

// getClientIP extracts the client IP from the request
func (s *ActivityLogService) getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr (remove port)
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

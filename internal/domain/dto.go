package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	IsActive    bool      `json:"isActive"`
	LastLoginAt *string   `json:"lastLoginAt,omitempty"` // ISO 8601
}

type TeamDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	OwnerName string     `json:"ownerName,omitempty"`
	Groups    []GroupDTO `json:"groups,omitempty"`
}

type GroupDTO struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	TeamID         uuid.UUID   `json:"teamId"`
	TeamName       string      `json:"teamName,omitempty"`
	SupervisorID   *uuid.UUID  `json:"supervisorId,omitempty"`
	SupervisorName string      `json:"supervisorName,omitempty"`
	TeamleadID     *uuid.UUID  `json:"teamleadId,omitempty"`
	TeamleadName   string      `json:"teamleadName,omitempty"`
	Members        []MemberDTO `json:"members,omitempty"`
}

type MemberDTO struct {
	UserID       uuid.UUID `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	MonthlyQuota float64   `json:"monthlyQuota"`
	JoinedAt     string    `json:"joinedAt"` // ISO 8601
}

// ScopeDTO exposes an actor's resolved visibility for boundary layers
type ScopeDTO struct {
	ActorID   uuid.UUID   `json:"actorId"`
	Role      Role        `json:"role"`
	AllAccess bool        `json:"allAccess"`
	TeamIDs   []uuid.UUID `json:"teamIds"`
	GroupIDs  []uuid.UUID `json:"groupIds"`
	UserIDs   []uuid.UUID `json:"userIds"`
	CanMutate bool        `json:"canMutate"`
}

type ActivityDTO struct {
	ID               uuid.UUID      `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	Kind             ActivityKind   `json:"kind"`
	Status           ActivityStatus `json:"status"`
	Priority         Priority       `json:"priority"`
	OwnerID          uuid.UUID      `json:"ownerId"`
	OwnerName        string         `json:"ownerName,omitempty"`
	GroupID          *uuid.UUID     `json:"groupId,omitempty"`
	CustomerRef      string         `json:"customerRef,omitempty"`
	PlannedStart     string         `json:"plannedStart"` // ISO 8601
	PlannedEnd       string         `json:"plannedEnd"`   // ISO 8601
	ActualStart      *string        `json:"actualStart,omitempty"`
	ActualEnd        *string        `json:"actualEnd,omitempty"`
	Reviewed         bool           `json:"reviewed"`
	ReviewedByID     *uuid.UUID     `json:"reviewedById,omitempty"`
	ReviewedByName   string         `json:"reviewedByName,omitempty"`
	ReviewNotes      string         `json:"reviewNotes,omitempty"`
	ReviewedAt       *string        `json:"reviewedAt,omitempty"`
	FollowUpRequired bool           `json:"followUpRequired"`
	CreatedAt        string         `json:"createdAt"` // ISO 8601
	UpdatedAt        string         `json:"updatedAt"` // ISO 8601
}

type ActivityLogEntryDTO struct {
	ID          uuid.UUID `json:"id"`
	ActivityID  uuid.UUID `json:"activityId"`
	ActorID     uuid.UUID `json:"actorId"`
	ActorName   string    `json:"actorName,omitempty"`
	Action      LogAction `json:"action"`
	OldValues   string    `json:"oldValues,omitempty"`
	NewValues   string    `json:"newValues,omitempty"`
	Changes     string    `json:"changes,omitempty"`
	SourceAddr  string    `json:"sourceAddr,omitempty"`
	PerformedAt string    `json:"performedAt"` // ISO 8601
}

// ActivityWithTrailDTO is the download document: one activity plus its full log
type ActivityWithTrailDTO struct {
	Activity ActivityDTO           `json:"activity"`
	Trail    []ActivityLogEntryDTO `json:"trail"`
}

type ReportDTO struct {
	ScopeKey    string                  `json:"scopeKey"`
	PeriodStart string                  `json:"periodStart"` // ISO 8601
	PeriodEnd   string                  `json:"periodEnd"`   // ISO 8601
	GeneratedAt string                  `json:"generatedAt"` // ISO 8601
	Metrics     map[string]float64      `json:"metrics"`
	Members     []MemberMetricsDTO      `json:"members"`
	Groups      []GroupMetricsDTO       `json:"groups"`
	Funnel      []FunnelStageMetricsDTO `json:"funnel"`
}

type MemberMetricsDTO struct {
	UserID  uuid.UUID          `json:"userId"`
	Name    string             `json:"name"`
	Metrics map[string]float64 `json:"metrics"`
}

type GroupMetricsDTO struct {
	GroupID uuid.UUID          `json:"groupId"`
	Name    string             `json:"name"`
	Metrics map[string]float64 `json:"metrics"`
}

type FunnelStageMetricsDTO struct {
	Stage      FunnelStage `json:"stage"`
	Count      int         `json:"count"`
	Value      float64     `json:"value"`
	AvgAgeDays float64     `json:"avgAgeDays"`
	OldestDays int         `json:"oldestDays"`
	Band       AgingBand   `json:"band"`
}

type InsightDTO struct {
	Category InsightCategory    `json:"category"`
	Severity InsightSeverity    `json:"severity"`
	ScopeID  string             `json:"scopeId,omitempty"`
	Message  string             `json:"message"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

type ReminderDTO struct {
	ID         uuid.UUID    `json:"id"`
	ActivityID uuid.UUID    `json:"activityId"`
	Kind       ReminderKind `json:"kind"`
	OwnerID    uuid.UUID    `json:"ownerId"`
	Message    string       `json:"message,omitempty"`
	DueAt      string       `json:"dueAt"`     // ISO 8601
	CreatedAt  string       `json:"createdAt"` // ISO 8601
}

type ReportSnapshotDTO struct {
	ID              uuid.UUID `json:"id"`
	ScopeKey        string    `json:"scopeKey"`
	PeriodStart     string    `json:"periodStart"` // ISO 8601
	PeriodEnd       string    `json:"periodEnd"`   // ISO 8601
	GeneratedAt     string    `json:"generatedAt"` // ISO 8601
	RequestedByID   uuid.UUID `json:"requestedById"`
	RequestedByName string    `json:"requestedByName,omitempty"`
	StoragePath     string    `json:"storagePath,omitempty"`
	CreatedAt       string    `json:"createdAt"` // ISO 8601
}

// BulkItemOutcome classifies the result of one item in a bulk instruction
type BulkItemOutcome string

const (
	BulkOutcomeApplied           BulkItemOutcome = "applied"
	BulkOutcomeSkippedOutOfScope BulkItemOutcome = "skipped_out_of_scope"
	BulkOutcomeFailedInvalid     BulkItemOutcome = "failed_invalid_transition"
)

type BulkItemResultDTO struct {
	ActivityID uuid.UUID       `json:"activityId"`
	Outcome    BulkItemOutcome `json:"outcome"`
	Detail     string          `json:"detail,omitempty"`
}

type BulkResultDTO struct {
	Applied int                 `json:"applied"`
	Skipped int                 `json:"skipped"`
	Failed  int                 `json:"failed"`
	Items   []BulkItemResultDTO `json:"items"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request DTOs

type CreateActivityRequest struct {
	Title        string       `json:"title" validate:"required,max=200"`
	Description  string       `json:"description,omitempty"`
	Kind         ActivityKind `json:"kind" validate:"required,oneof=call meeting email proposal task demo follow_up research"`
	Priority     Priority     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	OwnerID      *uuid.UUID   `json:"ownerId,omitempty"` // defaults to the caller
	CustomerRef  string       `json:"customerRef,omitempty" validate:"max=200"`
	PlannedStart time.Time    `json:"plannedStart" validate:"required"`
	PlannedEnd   time.Time    `json:"plannedEnd" validate:"required"`
}

type UpdateActivityRequest struct {
	Title            string       `json:"title" validate:"required,max=200"`
	Description      string       `json:"description,omitempty"`
	Kind             ActivityKind `json:"kind" validate:"required,oneof=call meeting email proposal task demo follow_up research"`
	Priority         Priority     `json:"priority" validate:"required,oneof=low medium high urgent"`
	CustomerRef      string       `json:"customerRef,omitempty" validate:"max=200"`
	PlannedStart     time.Time    `json:"plannedStart" validate:"required"`
	PlannedEnd       time.Time    `json:"plannedEnd" validate:"required"`
	FollowUpRequired *bool        `json:"followUpRequired,omitempty"`
}

// CompleteActivityRequest carries the optional actual end timestamp; the
// server clock is used when it is omitted
type CompleteActivityRequest struct {
	ActualEnd *time.Time `json:"actualEnd,omitempty"`
}

type ReviewActivityRequest struct {
	Notes string `json:"notes" validate:"required,min=3,max=2000" example:"Good discovery call, follow up on pricing"`
}

// BulkActivityRequest applies one instruction to many activities: either a
// status transition or a review. Exactly one of status and reviewNotes must
// be present. Reopening is deliberately excluded; terminal activities are
// reopened one at a time.
type BulkActivityRequest struct {
	ActivityIDs []uuid.UUID     `json:"activityIds" validate:"required,min=1,max=200"`
	Status      *ActivityStatus `json:"status,omitempty" validate:"omitempty,oneof=in_progress completed cancelled postponed"`
	ReviewNotes *string         `json:"reviewNotes,omitempty" validate:"omitempty,min=3,max=2000"`
}

type CreateSnapshotRequest struct {
	Start string `json:"start" validate:"required" example:"2026-08-01"`
	End   string `json:"end" validate:"required" example:"2026-08-31"`
}

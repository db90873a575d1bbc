package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Role represents a position in the sales organization
type Role string

const (
	RoleSalesperson Role = "salesperson"
	RoleTeamlead    Role = "teamlead"
	RoleSupervisor  Role = "supervisor"
	RoleASM         Role = "asm"
	RoleAVP         Role = "avp"
	RoleVP          Role = "vp"
	RoleGM          Role = "gm"
	RolePresident   Role = "president"
	RoleAdmin       Role = "admin"
)

// roleRanks orders roles by breadth of visibility. Supervisor and ASM sit at
// the same level; the top tier all see the entire organization.
var roleRanks = map[Role]int{
	RoleSalesperson: 1,
	RoleTeamlead:    2,
	RoleSupervisor:  3,
	RoleASM:         3,
	RoleAVP:         4,
	RoleVP:          5,
	RoleGM:          5,
	RolePresident:   5,
	RoleAdmin:       5,
}

// IsValid checks if the Role is a valid enum value
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the role's position in the visibility order, 0 for unknown roles
func (r Role) Rank() int {
	return roleRanks[r]
}

// User represents a member of the sales organization
type User struct {
	BaseModel
	Email       string     `gorm:"type:varchar(255);not null;unique"`
	FirstName   string     `gorm:"type:varchar(100);column:first_name"`
	LastName    string     `gorm:"type:varchar(100);column:last_name"`
	DisplayName string     `gorm:"type:varchar(200);not null;column:name"`
	Role        Role       `gorm:"type:varchar(50);not null;index"`
	IsActive    bool       `gorm:"not null;default:true;column:is_active"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
}

// FullName returns the user's full name, or display name if first/last not set
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.DisplayName
}

// Team represents a collection of groups owned by an AVP or ASM
type Team struct {
	BaseModel
	Name    string     `gorm:"type:varchar(200);not null;index"`
	OwnerID *uuid.UUID `gorm:"type:uuid;index;column:owner_id"`
	Owner   *User      `gorm:"foreignKey:OwnerID"`
	Groups  []Group    `gorm:"foreignKey:TeamID"`
}

// Group represents a sales group. The supervisor and teamlead edges are
// independent relations; a group may have either, both, or neither.
type Group struct {
	BaseModel
	Name         string       `gorm:"type:varchar(200);not null;index"`
	TeamID       uuid.UUID    `gorm:"type:uuid;not null;index;column:team_id"`
	Team         *Team        `gorm:"foreignKey:TeamID"`
	SupervisorID *uuid.UUID   `gorm:"type:uuid;index;column:supervisor_id"`
	Supervisor   *User        `gorm:"foreignKey:SupervisorID"`
	TeamleadID   *uuid.UUID   `gorm:"type:uuid;index;column:teamlead_id"`
	Teamlead     *User        `gorm:"foreignKey:TeamleadID"`
	Memberships  []Membership `gorm:"foreignKey:GroupID"`
}

// Membership places a salesperson in exactly one group and carries the
// monthly revenue quota used as the pipeline coverage target.
type Membership struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id"`
	User         *User     `gorm:"foreignKey:UserID"`
	GroupID      uuid.UUID `gorm:"type:uuid;not null;index;column:group_id"`
	Group        *Group    `gorm:"foreignKey:GroupID"`
	MonthlyQuota float64   `gorm:"type:decimal(15,2);not null;default:0;column:monthly_quota"`
	JoinedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;column:joined_at"`
}

// ActivityKind represents the kind of sales activity
type ActivityKind string

const (
	ActivityKindCall     ActivityKind = "call"
	ActivityKindMeeting  ActivityKind = "meeting"
	ActivityKindEmail    ActivityKind = "email"
	ActivityKindProposal ActivityKind = "proposal"
	ActivityKindTask     ActivityKind = "task"
	ActivityKindDemo     ActivityKind = "demo"
	ActivityKindFollowUp ActivityKind = "follow_up"
	ActivityKindResearch ActivityKind = "research"
)

// IsValid checks if the ActivityKind is a valid enum value
func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityKindCall, ActivityKindMeeting, ActivityKindEmail, ActivityKindProposal,
		ActivityKindTask, ActivityKindDemo, ActivityKindFollowUp, ActivityKindResearch:
		return true
	}
	return false
}

// ActivityStatus represents the lifecycle state of an activity
type ActivityStatus string

const (
	ActivityStatusPlanned    ActivityStatus = "planned"
	ActivityStatusInProgress ActivityStatus = "in_progress"
	ActivityStatusCompleted  ActivityStatus = "completed"
	ActivityStatusCancelled  ActivityStatus = "cancelled"
	ActivityStatusPostponed  ActivityStatus = "postponed"
)

// IsValid checks if the ActivityStatus is a valid enum value
func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityStatusPlanned, ActivityStatusInProgress, ActivityStatusCompleted,
		ActivityStatusCancelled, ActivityStatusPostponed:
		return true
	}
	return false
}

// IsTerminal reports whether the status can only be left through a reopen
func (s ActivityStatus) IsTerminal() bool {
	switch s {
	case ActivityStatusCompleted, ActivityStatusCancelled, ActivityStatusPostponed:
		return true
	}
	return false
}

// Priority represents the urgency of an activity
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the Priority is a valid enum value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// SalesActivity represents a unit of work performed by a salesperson.
// The owner is immutable after creation; GroupID is denormalized from the
// owner's membership at creation time so scope queries avoid a join.
type SalesActivity struct {
	BaseModel
	Title            string         `gorm:"type:varchar(200);not null"`
	Description      string         `gorm:"type:text"`
	Kind             ActivityKind   `gorm:"type:varchar(50);not null;index"`
	Status           ActivityStatus `gorm:"type:varchar(50);not null;default:'planned';index"`
	Priority         Priority       `gorm:"type:varchar(50);not null;default:'medium'"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index;column:owner_id"`
	Owner            *User          `gorm:"foreignKey:OwnerID"`
	OwnerName        string         `gorm:"type:varchar(200);column:owner_name"`
	GroupID          *uuid.UUID     `gorm:"type:uuid;index;column:group_id"`
	Group            *Group         `gorm:"foreignKey:GroupID"`
	CustomerRef      string         `gorm:"type:varchar(200);column:customer_ref"`
	PlannedStart     time.Time      `gorm:"not null;column:planned_start"`
	PlannedEnd       time.Time      `gorm:"not null;index;column:planned_end"`
	ActualStart      *time.Time     `gorm:"column:actual_start"`
	ActualEnd        *time.Time     `gorm:"column:actual_end"`
	Reviewed         bool           `gorm:"not null;default:false;index"`
	ReviewedByID     *uuid.UUID     `gorm:"type:uuid;column:reviewed_by_id"`
	ReviewedByName   string         `gorm:"type:varchar(200);column:reviewed_by_name"`
	ReviewNotes      string         `gorm:"type:text;column:review_notes"`
	ReviewedAt       *time.Time     `gorm:"column:reviewed_at"`
	FollowUpRequired bool           `gorm:"not null;default:false;column:follow_up_required"`
}

// IsOverdue reports whether the activity's planned end has passed without it
// being completed or cancelled. Postponed activities still count as overdue.
func (a *SalesActivity) IsOverdue(now time.Time) bool {
	if a.Status == ActivityStatusCompleted || a.Status == ActivityStatusCancelled {
		return false
	}
	return a.PlannedEnd.Before(now)
}

// LogAction represents the type of activity log action
type LogAction string

const (
	LogActionCreated       LogAction = "created"
	LogActionUpdated       LogAction = "updated"
	LogActionStatusChanged LogAction = "status_changed"
	LogActionReviewed      LogAction = "reviewed"
	LogActionBulkUpdated   LogAction = "bulk_updated"
	LogActionViewed        LogAction = "viewed"
	LogActionDownloaded    LogAction = "downloaded"
	LogActionDeleted       LogAction = "deleted"
	LogActionAccessDenied  LogAction = "access_denied"
)

// AllLogActions lists every defined log action
var AllLogActions = []LogAction{
	LogActionCreated,
	LogActionUpdated,
	LogActionStatusChanged,
	LogActionReviewed,
	LogActionBulkUpdated,
	LogActionViewed,
	LogActionDownloaded,
	LogActionDeleted,
	LogActionAccessDenied,
}

// IsMutation reports whether the action changed activity data, as opposed to
// recording a read or a denied attempt
func (a LogAction) IsMutation() bool {
	switch a {
	case LogActionCreated, LogActionUpdated, LogActionStatusChanged,
		LogActionReviewed, LogActionBulkUpdated, LogActionDeleted:
		return true
	}
	return false
}

// ActivityLogEntry is an append-only record of one action against one
// activity. Entries are never updated or deleted.
type ActivityLogEntry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key"`
	ActivityID  uuid.UUID      `gorm:"type:uuid;not null;index;column:activity_id"`
	Activity    *SalesActivity `gorm:"foreignKey:ActivityID"`
	ActorID     uuid.UUID      `gorm:"type:uuid;not null;index;column:actor_id"`
	ActorName   string         `gorm:"type:varchar(200);column:actor_name"`
	Action      LogAction      `gorm:"type:varchar(50);not null;index"`
	OldValues   string         `gorm:"type:jsonb;column:old_values"`
	NewValues   string         `gorm:"type:jsonb;column:new_values"`
	Changes     string         `gorm:"type:jsonb"`
	SourceAddr  string         `gorm:"type:varchar(100);column:source_addr"`
	RequestID   string         `gorm:"type:varchar(100);column:request_id"`
	PerformedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;index;column:performed_at"`
}

// TableName overrides the default table name to match the migration
func (ActivityLogEntry) TableName() string {
	return "activity_log"
}

// BeforeCreate assigns an ID when the caller did not set one
func (e *ActivityLogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// FunnelStage represents the pipeline stage of a deal
type FunnelStage string

const (
	FunnelStageNewlyQuoted       FunnelStage = "newly_quoted"
	FunnelStageClosableThisMonth FunnelStage = "closable_this_month"
	FunnelStageProjectBased      FunnelStage = "project_based"
)

// IsValid checks if the FunnelStage is a valid enum value
func (f FunnelStage) IsValid() bool {
	switch f {
	case FunnelStageNewlyQuoted, FunnelStageClosableThisMonth, FunnelStageProjectBased:
		return true
	}
	return false
}

// DealOutcome represents whether a pipeline deal is still open or closed
type DealOutcome string

const (
	DealOutcomeOpen DealOutcome = "open"
	DealOutcomeWon  DealOutcome = "won"
	DealOutcomeLost DealOutcome = "lost"
)

// IsValid checks if the DealOutcome is a valid enum value
func (o DealOutcome) IsValid() bool {
	switch o {
	case DealOutcomeOpen, DealOutcomeWon, DealOutcomeLost:
		return true
	}
	return false
}

// Aging thresholds for funnel stage residence, in days
const (
	AgingMonitorDays   = 14
	AgingAttentionDays = 30
)

// AgingBand classifies how long a deal has sat in its funnel stage
type AgingBand string

const (
	AgingBandHealthy   AgingBand = "healthy"
	AgingBandMonitor   AgingBand = "monitor"
	AgingBandAttention AgingBand = "attention"
)

// StageAgeBand maps an age in days to its aging band. Under 14 days is
// healthy, 14 through 30 needs monitoring, over 30 needs attention. The age
// is fractional so an average just past a boundary lands in the right band.
func StageAgeBand(ageDays float64) AgingBand {
	switch {
	case ageDays < float64(AgingMonitorDays):
		return AgingBandHealthy
	case ageDays <= float64(AgingAttentionDays):
		return AgingBandMonitor
	default:
		return AgingBandAttention
	}
}

// PipelineRecord mirrors one deal from the pipeline warehouse. Records are
// read-only inputs to aggregation; the sync job is the only writer.
type PipelineRecord struct {
	BaseModel
	DealID         string      `gorm:"type:varchar(100);not null;uniqueIndex;column:deal_id"`
	Title          string      `gorm:"type:varchar(200)"`
	Stage          FunnelStage `gorm:"type:varchar(50);not null;index"`
	Outcome        DealOutcome `gorm:"type:varchar(50);not null;default:'open';index"`
	Value          float64     `gorm:"type:decimal(15,2);not null;default:0"`
	OwnerID        uuid.UUID   `gorm:"type:uuid;not null;index;column:owner_id"`
	GroupID        *uuid.UUID  `gorm:"type:uuid;index;column:group_id"`
	StageEnteredAt time.Time   `gorm:"not null;column:stage_entered_at"`
	ClosedAt       *time.Time  `gorm:"column:closed_at"`
}

// AgeDays returns whole days since the record entered its current stage
func (p *PipelineRecord) AgeDays(now time.Time) int {
	if now.Before(p.StageEnteredAt) {
		return 0
	}
	return int(now.Sub(p.StageEnteredAt).Hours() / 24)
}

// ReminderKind represents the condition that raised a reminder
type ReminderKind string

const (
	ReminderKindUpcoming     ReminderKind = "upcoming"
	ReminderKindOverdue      ReminderKind = "overdue"
	ReminderKindFollowUp     ReminderKind = "follow_up"
	ReminderKindReviewNeeded ReminderKind = "review_needed"
)

// Reminder marks an activity matching a reminder condition. One row per
// (activity, kind); delivery is an external concern.
type Reminder struct {
	BaseModel
	ActivityID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_reminders_activity_kind;column:activity_id"`
	Activity   *SalesActivity `gorm:"foreignKey:ActivityID"`
	Kind       ReminderKind   `gorm:"type:varchar(50);not null;uniqueIndex:idx_reminders_activity_kind"`
	OwnerID    uuid.UUID      `gorm:"type:uuid;not null;index;column:owner_id"`
	GroupID    *uuid.UUID     `gorm:"type:uuid;index;column:group_id"`
	Message    string         `gorm:"type:varchar(500)"`
	DueAt      time.Time      `gorm:"not null;column:due_at"`
}

// ReportSnapshot persists one aggregation run for later retrieval. Metrics
// are stored as the JSON document the engine produced.
type ReportSnapshot struct {
	BaseModel
	ScopeKey        string    `gorm:"type:varchar(100);not null;index;column:scope_key"`
	PeriodStart     time.Time `gorm:"not null;column:period_start"`
	PeriodEnd       time.Time `gorm:"not null;column:period_end"`
	Metrics         string    `gorm:"type:jsonb"`
	GeneratedAt     time.Time `gorm:"not null;column:generated_at"`
	RequestedByID   uuid.UUID `gorm:"type:uuid;not null;index;column:requested_by_id"`
	RequestedByName string    `gorm:"type:varchar(200);column:requested_by_name"`
	StoragePath     string    `gorm:"type:varchar(500);column:storage_path"`
}

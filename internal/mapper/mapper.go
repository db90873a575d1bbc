package mapper

import (
	"github.com/meridian-crm/monitor-api/internal/domain"
)

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	dto := domain.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		IsActive:    user.IsActive,
	}

	if user.LastLoginAt != nil {
		lastLogin := user.LastLoginAt.Format("2006-01-02T15:04:05Z")
		dto.LastLoginAt = &lastLogin
	}

	return dto
}

// ToTeamDTO converts Team to TeamDTO
func ToTeamDTO(team *domain.Team) domain.TeamDTO {
	dto := domain.TeamDTO{
		ID:      team.ID,
		Name:    team.Name,
		OwnerID: team.OwnerID,
	}

	if team.Owner != nil {
		dto.OwnerName = team.Owner.DisplayName
	}

	if len(team.Groups) > 0 {
		dto.Groups = make([]domain.GroupDTO, len(team.Groups))
		for i, g := range team.Groups {
			dto.Groups[i] = ToGroupDTO(&g)
		}
	}

	return dto
}

// ToGroupDTO converts Group to GroupDTO
func ToGroupDTO(group *domain.Group) domain.GroupDTO {
	dto := domain.GroupDTO{
		ID:           group.ID,
		Name:         group.Name,
		TeamID:       group.TeamID,
		SupervisorID: group.SupervisorID,
		TeamleadID:   group.TeamleadID,
	}

	if group.Team != nil {
		dto.TeamName = group.Team.Name
	}
	if group.Supervisor != nil {
		dto.SupervisorName = group.Supervisor.DisplayName
	}
	if group.Teamlead != nil {
		dto.TeamleadName = group.Teamlead.DisplayName
	}

	if len(group.Memberships) > 0 {
		dto.Members = make([]domain.MemberDTO, len(group.Memberships))
		for i, m := range group.Memberships {
			dto.Members[i] = ToMemberDTO(&m)
		}
	}

	return dto
}

// ToMemberDTO converts Membership to MemberDTO
func ToMemberDTO(membership *domain.Membership) domain.MemberDTO {
	dto := domain.MemberDTO{
		UserID:       membership.UserID,
		MonthlyQuota: membership.MonthlyQuota,
		JoinedAt:     membership.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}

	if membership.User != nil {
		dto.Name = membership.User.DisplayName
		dto.Email = membership.User.Email
	}

	return dto
}

// ToActivityDTO converts SalesActivity to ActivityDTO
func ToActivityDTO(activity *domain.SalesActivity) domain.ActivityDTO {
	dto := domain.ActivityDTO{
		ID:               activity.ID,
		Title:            activity.Title,
		Description:      activity.Description,
		Kind:             activity.Kind,
		Status:           activity.Status,
		Priority:         activity.Priority,
		OwnerID:          activity.OwnerID,
		OwnerName:        activity.OwnerName,
		GroupID:          activity.GroupID,
		CustomerRef:      activity.CustomerRef,
		PlannedStart:     activity.PlannedStart.Format("2006-01-02T15:04:05Z"),
		PlannedEnd:       activity.PlannedEnd.Format("2006-01-02T15:04:05Z"),
		Reviewed:         activity.Reviewed,
		ReviewedByID:     activity.ReviewedByID,
		ReviewedByName:   activity.ReviewedByName,
		ReviewNotes:      activity.ReviewNotes,
		FollowUpRequired: activity.FollowUpRequired,
		CreatedAt:        activity.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:        activity.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if activity.ActualStart != nil {
		actualStart := activity.ActualStart.Format("2006-01-02T15:04:05Z")
		dto.ActualStart = &actualStart
	}
	if activity.ActualEnd != nil {
		actualEnd := activity.ActualEnd.Format("2006-01-02T15:04:05Z")
		dto.ActualEnd = &actualEnd
	}
	if activity.ReviewedAt != nil {
		reviewedAt := activity.ReviewedAt.Format("2006-01-02T15:04:05Z")
		dto.ReviewedAt = &reviewedAt
	}

	return dto
}

// ToActivityLogEntryDTO converts ActivityLogEntry to ActivityLogEntryDTO
func ToActivityLogEntryDTO(entry *domain.ActivityLogEntry) domain.ActivityLogEntryDTO {
	return domain.ActivityLogEntryDTO{
		ID:          entry.ID,
		ActivityID:  entry.ActivityID,
		ActorID:     entry.ActorID,
		ActorName:   entry.ActorName,
		Action:      entry.Action,
		OldValues:   entry.OldValues,
		NewValues:   entry.NewValues,
		Changes:     entry.Changes,
		SourceAddr:  entry.SourceAddr,
		PerformedAt: entry.PerformedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToReminderDTO converts Reminder to ReminderDTO
func ToReminderDTO(reminder *domain.Reminder) domain.ReminderDTO {
	return domain.ReminderDTO{
		ID:         reminder.ID,
		ActivityID: reminder.ActivityID,
		Kind:       reminder.Kind,
		OwnerID:    reminder.OwnerID,
		Message:    reminder.Message,
		DueAt:      reminder.DueAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt:  reminder.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToReportSnapshotDTO converts ReportSnapshot to ReportSnapshotDTO
func ToReportSnapshotDTO(snapshot *domain.ReportSnapshot) domain.ReportSnapshotDTO {
	return domain.ReportSnapshotDTO{
		ID:              snapshot.ID,
		ScopeKey:        snapshot.ScopeKey,
		PeriodStart:     snapshot.PeriodStart.Format("2006-01-02T15:04:05Z"),
		PeriodEnd:       snapshot.PeriodEnd.Format("2006-01-02T15:04:05Z"),
		GeneratedAt:     snapshot.GeneratedAt.Format("2006-01-02T15:04:05Z"),
		RequestedByID:   snapshot.RequestedByID,
		RequestedByName: snapshot.RequestedByName,
		StoragePath:     snapshot.StoragePath,
		CreatedAt:       snapshot.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToReportDTO converts AggregatedReport to ReportDTO
func ToReportDTO(report *domain.AggregatedReport) domain.ReportDTO {
	dto := domain.ReportDTO{
		ScopeKey:    report.ScopeKey,
		PeriodStart: report.Period.Start.Format("2006-01-02T15:04:05Z"),
		PeriodEnd:   report.Period.End.Format("2006-01-02T15:04:05Z"),
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z"),
		Metrics:     report.Metrics,
	}

	dto.Members = make([]domain.MemberMetricsDTO, len(report.Members))
	for i, m := range report.Members {
		dto.Members[i] = domain.MemberMetricsDTO{
			UserID:  m.UserID,
			Name:    m.Name,
			Metrics: m.Metrics,
		}
	}

	dto.Groups = make([]domain.GroupMetricsDTO, len(report.Groups))
	for i, g := range report.Groups {
		dto.Groups[i] = domain.GroupMetricsDTO{
			GroupID: g.GroupID,
			Name:    g.Name,
			Metrics: g.Metrics,
		}
	}

	dto.Funnel = make([]domain.FunnelStageMetricsDTO, len(report.Funnel))
	for i, f := range report.Funnel {
		dto.Funnel[i] = domain.FunnelStageMetricsDTO{
			Stage:      f.Stage,
			Count:      f.Count,
			Value:      f.Value,
			AvgAgeDays: f.AvgAgeDays,
			OldestDays: f.OldestDays,
			Band:       f.Band,
		}
	}

	return dto
}

// ToInsightDTO converts Insight to InsightDTO
func ToInsightDTO(insight *domain.Insight) domain.InsightDTO {
	return domain.InsightDTO{
		Category: insight.Category,
		Severity: insight.Severity,
		ScopeID:  insight.ScopeID,
		Message:  insight.Message,
		Metrics:  insight.Metrics,
	}
}

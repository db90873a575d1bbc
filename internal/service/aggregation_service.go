package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"go.uber.org/zap"
)

// AggregationService computes time-windowed reports over activities and
// pipeline records. Reports are pure reads: the same stored data, period and
// clock value always produce the same report, and empty data yields zeros
// rather than errors.
type AggregationService struct {
	activityRepo  *repository.ActivityRepository
	pipelineRepo  *repository.PipelineRepository
	orgRepo       *repository.OrgRepository
	userRepo      *repository.UserRepository
	defaultTarget float64
	logger        *zap.Logger
}

// NewAggregationService creates a new AggregationService instance. The
// default target backs the quota_target metric when no member quotas exist.
func NewAggregationService(
	activityRepo *repository.ActivityRepository,
	pipelineRepo *repository.PipelineRepository,
	orgRepo *repository.OrgRepository,
	userRepo *repository.UserRepository,
	defaultTarget float64,
	logger *zap.Logger,
) *AggregationService {
	return &AggregationService{
		activityRepo:  activityRepo,
		pipelineRepo:  pipelineRepo,
		orgRepo:       orgRepo,
		userRepo:      userRepo,
		defaultTarget: defaultTarget,
		logger:        logger,
	}
}

// BuildReport aggregates the caller's scope over the period. Activities are
// anchored to the period by planned start; revenue counts deals won inside
// the period while pipeline value reflects the open deals as of now. The
// clock is an explicit parameter so callers control what "overdue" means.
func (s *AggregationService) BuildReport(ctx context.Context, period domain.Period, now time.Time) (*domain.AggregatedReport, error) {
	sc, ok := scope.FromContext(ctx)
	if !ok {
		return nil, ErrPermissionDenied
	}
	if !period.IsValid() {
		return nil, fmt.Errorf("%w: period end must come after start", ErrInvalidPeriod)
	}
	now = now.UTC()

	activities, err := s.activityRepo.ListForPeriod(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	wonDeals, err := s.pipelineRepo.ListWonBetween(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load won deals: %w", err)
	}
	openDeals, err := s.pipelineRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load open deals: %w", err)
	}

	report := &domain.AggregatedReport{
		ScopeKey:    sc.Key(),
		Period:      period,
		GeneratedAt: now,
		Metrics:     activityMetrics(activities, now),
	}
	mergeDealMetrics(report.Metrics, wonDeals, openDeals)

	if err := s.addGrowthMetrics(ctx, report, period); err != nil {
		return nil, err
	}

	target, err := s.monthlyTarget(ctx, sc)
	if err != nil {
		return nil, err
	}
	report.Metrics[domain.MetricQuotaTarget] = target

	groups, memberships, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}

	report.Members, err = s.memberSlices(ctx, sc, memberships, activities, wonDeals, openDeals, now)
	if err != nil {
		return nil, err
	}
	report.Groups = groupSlices(groups, activities, wonDeals, openDeals, now)
	report.Funnel = funnelSlices(openDeals, now)

	s.logger.Debug("report built",
		zap.String("scope_key", report.ScopeKey),
		zap.String("period", period.String()),
		zap.Int("activities", len(activities)),
		zap.Int("won_deals", len(wonDeals)),
		zap.Int("open_deals", len(openDeals)))

	return report, nil
}

// addGrowthMetrics compares the window against the immediately preceding
// window of equal length. The growth keys stay absent when the prior value is
// zero; a percentage against nothing carries no information.
func (s *AggregationService) addGrowthMetrics(ctx context.Context, report *domain.AggregatedReport, period domain.Period) error {
	prev := period.Previous()

	prevActivities, err := s.activityRepo.ListForPeriod(ctx, prev.Start, prev.End)
	if err != nil {
		return fmt.Errorf("failed to load prior period activities: %w", err)
	}
	prevWon, err := s.pipelineRepo.ListWonBetween(ctx, prev.Start, prev.End)
	if err != nil {
		return fmt.Errorf("failed to load prior period deals: %w", err)
	}

	prevRevenue := dealValueSum(prevWon)
	if prevRevenue > 0 {
		growth := (report.Metrics[domain.MetricRevenue] - prevRevenue) / prevRevenue * 100
		report.Metrics[domain.MetricRevenueGrowthPct] = round2(growth)
	}

	var prevCompleted int
	for i := range prevActivities {
		if prevActivities[i].Status == domain.ActivityStatusCompleted {
			prevCompleted++
		}
	}
	if prevCompleted > 0 {
		growth := (report.Metrics[domain.MetricCompletedActivities] - float64(prevCompleted)) / float64(prevCompleted) * 100
		report.Metrics[domain.MetricCompletedGrowthPct] = round2(growth)
	}

	return nil
}

// monthlyTarget sums the monthly quotas of the scope's members, falling back
// to the configured default when no quotas are recorded
func (s *AggregationService) monthlyTarget(ctx context.Context, sc *scope.ScopeSet) (float64, error) {
	var (
		sum float64
		err error
	)
	if sc.AllAccess {
		sum, err = s.orgRepo.QuotaSumAll(ctx)
	} else {
		sum, err = s.orgRepo.QuotaSumByUsers(ctx, sc.UserIDs)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to sum member quotas: %w", err)
	}
	if sum <= 0 {
		return s.defaultTarget, nil
	}
	return round2(sum), nil
}

// roster loads the groups and memberships visible in the scope. AllAccess
// walks the whole organization.
func (s *AggregationService) roster(ctx context.Context) ([]domain.Group, []domain.Membership, error) {
	groups, err := s.orgRepo.ListGroups(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load scope groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, nil, nil
	}

	groupIDs := make([]uuid.UUID, len(groups))
	for i := range groups {
		groupIDs[i] = groups[i].ID
	}
	memberships, err := s.orgRepo.MembersOfGroups(ctx, groupIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load group members: %w", err)
	}
	return groups, memberships, nil
}

// memberSlices builds the per-salesperson breakdown. The roster covers the
// memberships of the visible groups plus the scope's explicit user list, so
// members without data in the period still appear with zero metrics.
func (s *AggregationService) memberSlices(ctx context.Context, sc *scope.ScopeSet, memberships []domain.Membership, activities []domain.SalesActivity, won, open []domain.PipelineRecord, now time.Time) ([]domain.MemberMetrics, error) {
	roster := make(map[uuid.UUID]bool)
	quotas := make(map[uuid.UUID]float64)
	for i := range memberships {
		roster[memberships[i].UserID] = true
		quotas[memberships[i].UserID] = memberships[i].MonthlyQuota
	}
	if !sc.AllAccess {
		for _, id := range sc.UserIDs {
			roster[id] = true
		}
	}
	if len(roster) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(roster))
	for id := range roster {
		ids = append(ids, id)
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load member users: %w", err)
	}

	actByOwner := make(map[uuid.UUID][]domain.SalesActivity)
	for _, a := range activities {
		actByOwner[a.OwnerID] = append(actByOwner[a.OwnerID], a)
	}
	wonByOwner := make(map[uuid.UUID][]domain.PipelineRecord)
	for _, d := range won {
		wonByOwner[d.OwnerID] = append(wonByOwner[d.OwnerID], d)
	}
	openByOwner := make(map[uuid.UUID][]domain.PipelineRecord)
	for _, d := range open {
		openByOwner[d.OwnerID] = append(openByOwner[d.OwnerID], d)
	}

	members := make([]domain.MemberMetrics, 0, len(users))
	for i := range users {
		u := &users[i]
		metrics := activityMetrics(actByOwner[u.ID], now)
		mergeDealMetrics(metrics, wonByOwner[u.ID], openByOwner[u.ID])
		if q := quotas[u.ID]; q > 0 {
			metrics[domain.MetricQuotaTarget] = q
		}
		members = append(members, domain.MemberMetrics{
			UserID:  u.ID,
			Name:    u.FullName(),
			Metrics: metrics,
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Name != members[j].Name {
			return members[i].Name < members[j].Name
		}
		return members[i].UserID.String() < members[j].UserID.String()
	})
	return members, nil
}

// groupSlices builds the per-group breakdown from the denormalized group id
// on activities and pipeline records
func groupSlices(groups []domain.Group, activities []domain.SalesActivity, won, open []domain.PipelineRecord, now time.Time) []domain.GroupMetrics {
	if len(groups) == 0 {
		return nil
	}

	actByGroup := make(map[uuid.UUID][]domain.SalesActivity)
	for _, a := range activities {
		if a.GroupID != nil {
			actByGroup[*a.GroupID] = append(actByGroup[*a.GroupID], a)
		}
	}
	wonByGroup := make(map[uuid.UUID][]domain.PipelineRecord)
	for _, d := range won {
		if d.GroupID != nil {
			wonByGroup[*d.GroupID] = append(wonByGroup[*d.GroupID], d)
		}
	}
	openByGroup := make(map[uuid.UUID][]domain.PipelineRecord)
	for _, d := range open {
		if d.GroupID != nil {
			openByGroup[*d.GroupID] = append(openByGroup[*d.GroupID], d)
		}
	}

	out := make([]domain.GroupMetrics, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		metrics := activityMetrics(actByGroup[g.ID], now)
		mergeDealMetrics(metrics, wonByGroup[g.ID], openByGroup[g.ID])
		out = append(out, domain.GroupMetrics{
			GroupID: g.ID,
			Name:    g.Name,
			Metrics: metrics,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].GroupID.String() < out[j].GroupID.String()
	})
	return out
}

// funnelSlices summarizes the open deals per funnel stage. Every stage
// appears even when empty so consumers render a stable funnel.
func funnelSlices(open []domain.PipelineRecord, now time.Time) []domain.FunnelStageMetrics {
	stages := []domain.FunnelStage{
		domain.FunnelStageNewlyQuoted,
		domain.FunnelStageClosableThisMonth,
		domain.FunnelStageProjectBased,
	}

	byStage := make(map[domain.FunnelStage][]domain.PipelineRecord)
	for _, rec := range open {
		byStage[rec.Stage] = append(byStage[rec.Stage], rec)
	}

	out := make([]domain.FunnelStageMetrics, 0, len(stages))
	for _, stage := range stages {
		records := byStage[stage]
		m := domain.FunnelStageMetrics{Stage: stage}

		var totalAge int
		for i := range records {
			rec := &records[i]
			m.Count++
			m.Value += rec.Value
			age := rec.AgeDays(now)
			totalAge += age
			if age > m.OldestDays {
				m.OldestDays = age
			}
		}
		m.Value = round2(m.Value)
		if m.Count > 0 {
			m.AvgAgeDays = round2(float64(totalAge) / float64(m.Count))
		}
		m.Band = domain.StageAgeBand(m.AvgAgeDays)

		out = append(out, m)
	}
	return out
}

// activityMetrics computes the activity counters over one fetched window
func activityMetrics(activities []domain.SalesActivity, now time.Time) map[string]float64 {
	var completed, overdue int
	for i := range activities {
		a := &activities[i]
		if a.Status == domain.ActivityStatusCompleted {
			completed++
		}
		if isOverdue(a, now) {
			overdue++
		}
	}

	total := len(activities)
	m := map[string]float64{
		domain.MetricTotalActivities:     float64(total),
		domain.MetricCompletedActivities: float64(completed),
		domain.MetricOverdueActivities:   float64(overdue),
		domain.MetricCompletionRatePct:   0,
	}
	if total > 0 {
		m[domain.MetricCompletionRatePct] = round2(float64(completed) / float64(total) * 100)
	}
	return m
}

// isOverdue reports whether an open activity has passed its planned end
func isOverdue(a *domain.SalesActivity, now time.Time) bool {
	if a.Status == domain.ActivityStatusCompleted || a.Status == domain.ActivityStatusCancelled {
		return false
	}
	return a.PlannedEnd.Before(now)
}

// mergeDealMetrics folds the pipeline numbers into an activity metric map
func mergeDealMetrics(m map[string]float64, won, open []domain.PipelineRecord) {
	revenue := dealValueSum(won)
	m[domain.MetricRevenue] = round2(revenue)
	m[domain.MetricWonDeals] = float64(len(won))
	m[domain.MetricPipelineValue] = round2(dealValueSum(open))
	m[domain.MetricOpenDeals] = float64(len(open))
	m[domain.MetricAvgDealSize] = 0
	if len(won) > 0 {
		m[domain.MetricAvgDealSize] = round2(revenue / float64(len(won)))
	}
}

func dealValueSum(records []domain.PipelineRecord) float64 {
	var sum float64
	for i := range records {
		sum += records[i].Value
	}
	return sum
}

// round2 keeps report numbers at cent precision
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests anchor every window to August 2026 so the numbers never depend on
// the wall clock.
var (
	august     = domain.NewPeriod(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	augustNow  = time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)
	defaultTgt = 50000.0
)

func planWindow(start, end time.Time) func(*domain.SalesActivity) {
	return func(a *domain.SalesActivity) {
		a.PlannedStart = start
		a.PlannedEnd = end
	}
}

func augustDay(day, hour int) time.Time {
	return time.Date(2026, time.August, day, hour, 0, 0, 0, time.UTC)
}

func julyDay(day int) time.Time {
	return time.Date(2026, time.July, day, 12, 0, 0, 0, time.UTC)
}

func TestBuildReport_EmptyDataYieldsZeros(t *testing.T) {
	f := setupFixture(t)
	svc := f.aggregationService(defaultTgt)

	report, err := svc.BuildReport(f.ctxFor(t, f.admin), august, augustNow)
	require.NoError(t, err)

	assert.Equal(t, "org", report.ScopeKey)
	assert.Zero(t, report.Metrics[domain.MetricTotalActivities])
	assert.Zero(t, report.Metrics[domain.MetricCompletedActivities])
	assert.Zero(t, report.Metrics[domain.MetricOverdueActivities])
	assert.Zero(t, report.Metrics[domain.MetricCompletionRatePct])
	assert.Zero(t, report.Metrics[domain.MetricRevenue])
	assert.Zero(t, report.Metrics[domain.MetricPipelineValue])
	assert.Zero(t, report.Metrics[domain.MetricAvgDealSize])

	_, ok := report.Metrics[domain.MetricRevenueGrowthPct]
	assert.False(t, ok, "growth against an empty prior period stays absent")
	_, ok = report.Metrics[domain.MetricCompletedGrowthPct]
	assert.False(t, ok)

	// The fixture quotas sum to 37000; the default target stays unused
	assert.Equal(t, 37000.0, report.Metrics[domain.MetricQuotaTarget])

	// Members without data still appear, with zero metrics, name-ordered
	require.Len(t, report.Members, 3)
	assert.Equal(t, f.sp2.ID, report.Members[0].UserID)
	assert.Equal(t, f.sp3.ID, report.Members[1].UserID)
	assert.Equal(t, f.sp1.ID, report.Members[2].UserID)
	assert.Zero(t, report.Members[0].Metrics[domain.MetricTotalActivities])
	assert.Equal(t, 15000.0, report.Members[0].Metrics[domain.MetricQuotaTarget])

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "Alpha", report.Groups[0].Name)
	assert.Equal(t, "Beta", report.Groups[1].Name)

	// All three funnel stages render even when empty
	require.Len(t, report.Funnel, 3)
	for _, stage := range report.Funnel {
		assert.Zero(t, stage.Count)
		assert.Equal(t, domain.AgingBandHealthy, stage.Band)
	}
}

func TestBuildReport_CountsRatesAndGrowth(t *testing.T) {
	f := setupFixture(t)
	svc := f.aggregationService(defaultTgt)

	// August activities inside lead's scope
	f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, planWindow(augustDay(10, 9), augustDay(10, 10)))
	f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned, planWindow(augustDay(18, 9), augustDay(20, 10))) // past planned end, still open
	f.seedActivity(t, f.sp2, domain.ActivityStatusInProgress, planWindow(augustDay(12, 9), augustDay(30, 10)))
	f.seedActivity(t, f.sp2, domain.ActivityStatusCancelled, planWindow(augustDay(5, 9), augustDay(15, 10)))

	// Outside the scope or the window
	f.seedActivity(t, f.sp3, domain.ActivityStatusCompleted, planWindow(augustDay(11, 9), augustDay(11, 10)))
	f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, planWindow(julyDay(20), julyDay(21)))
	f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, planWindow(julyDay(22), julyDay(23)))

	// Deals: 5000 won in August, 2000 won in July, two open
	closedAug := augustDay(12, 14)
	closedJul := julyDay(10)
	f.seedDeal(t, f.sp1, domain.FunnelStageClosableThisMonth, domain.DealOutcomeWon, 5000, augustDay(1, 0), &closedAug)
	f.seedDeal(t, f.sp1, domain.FunnelStageClosableThisMonth, domain.DealOutcomeWon, 2000, julyDay(1), &closedJul)
	f.seedDeal(t, f.sp2, domain.FunnelStageNewlyQuoted, domain.DealOutcomeOpen, 3000, augustDay(18, 12), nil)
	f.seedDeal(t, f.sp1, domain.FunnelStageClosableThisMonth, domain.DealOutcomeOpen, 4000, time.Date(2026, time.July, 31, 12, 0, 0, 0, time.UTC), nil)
	closedOther := augustDay(13, 9)
	f.seedDeal(t, f.sp3, domain.FunnelStageNewlyQuoted, domain.DealOutcomeWon, 9000, augustDay(2, 0), &closedOther) // out of scope

	report, err := svc.BuildReport(f.ctxFor(t, f.lead), august, augustNow)
	require.NoError(t, err)

	assert.Equal(t, "teamlead:"+f.lead.ID.String(), report.ScopeKey)

	assert.Equal(t, 4.0, report.Metrics[domain.MetricTotalActivities])
	assert.Equal(t, 1.0, report.Metrics[domain.MetricCompletedActivities])
	assert.Equal(t, 1.0, report.Metrics[domain.MetricOverdueActivities], "cancelled past-due work is not overdue")
	assert.Equal(t, 25.0, report.Metrics[domain.MetricCompletionRatePct])

	assert.Equal(t, 5000.0, report.Metrics[domain.MetricRevenue])
	assert.Equal(t, 1.0, report.Metrics[domain.MetricWonDeals])
	assert.Equal(t, 7000.0, report.Metrics[domain.MetricPipelineValue])
	assert.Equal(t, 2.0, report.Metrics[domain.MetricOpenDeals])
	assert.Equal(t, 5000.0, report.Metrics[domain.MetricAvgDealSize])

	// July: revenue 2000 -> 5000, completed 2 -> 1
	assert.Equal(t, 150.0, report.Metrics[domain.MetricRevenueGrowthPct])
	assert.Equal(t, -50.0, report.Metrics[domain.MetricCompletedGrowthPct])

	// Quotas of sp1 and sp2; the teamlead carries none
	assert.Equal(t, 25000.0, report.Metrics[domain.MetricQuotaTarget])

	// Member breakdown, name-ordered: Lena Lund, Mia Moen, Per Berg
	require.Len(t, report.Members, 3)
	lena, mia, per := report.Members[0], report.Members[1], report.Members[2]

	assert.Equal(t, f.lead.ID, lena.UserID)
	assert.Zero(t, lena.Metrics[domain.MetricTotalActivities])

	assert.Equal(t, f.sp2.ID, mia.UserID)
	assert.Equal(t, 2.0, mia.Metrics[domain.MetricTotalActivities])
	assert.Zero(t, mia.Metrics[domain.MetricCompletedActivities])
	assert.Equal(t, 3000.0, mia.Metrics[domain.MetricPipelineValue])

	assert.Equal(t, f.sp1.ID, per.UserID)
	assert.Equal(t, 2.0, per.Metrics[domain.MetricTotalActivities])
	assert.Equal(t, 1.0, per.Metrics[domain.MetricCompletedActivities])
	assert.Equal(t, 1.0, per.Metrics[domain.MetricOverdueActivities])
	assert.Equal(t, 50.0, per.Metrics[domain.MetricCompletionRatePct])
	assert.Equal(t, 5000.0, per.Metrics[domain.MetricRevenue])
	assert.Equal(t, 10000.0, per.Metrics[domain.MetricQuotaTarget])

	// Group breakdown covers only the visible group
	require.Len(t, report.Groups, 1)
	alpha := report.Groups[0]
	assert.Equal(t, f.groupAlpha.ID, alpha.GroupID)
	assert.Equal(t, 4.0, alpha.Metrics[domain.MetricTotalActivities])
	assert.Equal(t, 5000.0, alpha.Metrics[domain.MetricRevenue])
	assert.Equal(t, 7000.0, alpha.Metrics[domain.MetricPipelineValue])

	// Funnel slices with aging bands
	require.Len(t, report.Funnel, 3)
	newly := report.Funnel[0]
	assert.Equal(t, domain.FunnelStageNewlyQuoted, newly.Stage)
	assert.Equal(t, 1, newly.Count)
	assert.Equal(t, 3000.0, newly.Value)
	assert.Equal(t, 7.0, newly.AvgAgeDays)
	assert.Equal(t, 7, newly.OldestDays)
	assert.Equal(t, domain.AgingBandHealthy, newly.Band)

	closable := report.Funnel[1]
	assert.Equal(t, domain.FunnelStageClosableThisMonth, closable.Stage)
	assert.Equal(t, 1, closable.Count)
	assert.Equal(t, 4000.0, closable.Value)
	assert.Equal(t, 25.0, closable.AvgAgeDays)
	assert.Equal(t, domain.AgingBandMonitor, closable.Band)

	project := report.Funnel[2]
	assert.Equal(t, domain.FunnelStageProjectBased, project.Stage)
	assert.Zero(t, project.Count)
}

func TestBuildReport_FunnelBandAtBoundary(t *testing.T) {
	f := setupFixture(t)
	svc := f.aggregationService(defaultTgt)

	// Ages 30 and 31 days: the 30.5-day average has crossed the attention
	// boundary even though neither whole-day age alone says so clearly.
	f.seedDeal(t, f.sp1, domain.FunnelStageNewlyQuoted, domain.DealOutcomeOpen, 1000, augustNow.AddDate(0, 0, -30), nil)
	f.seedDeal(t, f.sp1, domain.FunnelStageNewlyQuoted, domain.DealOutcomeOpen, 2000, augustNow.AddDate(0, 0, -31), nil)

	report, err := svc.BuildReport(f.ctxFor(t, f.lead), august, augustNow)
	require.NoError(t, err)

	require.Len(t, report.Funnel, 3)
	newly := report.Funnel[0]
	assert.Equal(t, domain.FunnelStageNewlyQuoted, newly.Stage)
	assert.Equal(t, 30.5, newly.AvgAgeDays)
	assert.Equal(t, 31, newly.OldestDays)
	assert.Equal(t, domain.AgingBandAttention, newly.Band)
}

func TestBuildReport_SalespersonSeesOnlyThemselves(t *testing.T) {
	f := setupFixture(t)
	svc := f.aggregationService(defaultTgt)

	f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, planWindow(augustDay(10, 9), augustDay(10, 10)))
	f.seedActivity(t, f.sp2, domain.ActivityStatusCompleted, planWindow(augustDay(11, 9), augustDay(11, 10)))

	report, err := svc.BuildReport(f.ctxFor(t, f.sp1), august, augustNow)
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Metrics[domain.MetricTotalActivities])
	assert.Equal(t, 100.0, report.Metrics[domain.MetricCompletionRatePct])

	require.Len(t, report.Members, 1)
	assert.Equal(t, f.sp1.ID, report.Members[0].UserID)
	assert.Empty(t, report.Groups, "a salesperson's report has no group breakdown")
}

func TestBuildReport_InvalidInput(t *testing.T) {
	f := setupFixture(t)
	svc := f.aggregationService(defaultTgt)

	t.Run("period end before start", func(t *testing.T) {
		backwards := domain.NewPeriod(august.End, august.Start)
		_, err := svc.BuildReport(f.ctxFor(t, f.admin), backwards, augustNow)
		assert.ErrorIs(t, err, service.ErrInvalidPeriod)
	})

	t.Run("missing scope", func(t *testing.T) {
		_, err := svc.BuildReport(context.Background(), august, augustNow)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestBuildReport_QuotaFallsBackToDefault(t *testing.T) {
	f := setupFixture(t)
	svc := f.aggregationService(defaultTgt)

	orphan := f.newUser(t, "Solo Lead", "solo@example.com", domain.RoleTeamlead)
	report, err := svc.BuildReport(f.ctxFor(t, orphan), august, augustNow)
	require.NoError(t, err)

	assert.Equal(t, defaultTgt, report.Metrics[domain.MetricQuotaTarget])
}

func TestBuildReport_Reproducible(t *testing.T) {
	f := setupFixture(t)
	svc := f.aggregationService(defaultTgt)

	f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, planWindow(augustDay(10, 9), augustDay(10, 10)))
	closed := augustDay(12, 14)
	f.seedDeal(t, f.sp1, domain.FunnelStageNewlyQuoted, domain.DealOutcomeWon, 1234.56, augustDay(1, 0), &closed)

	ctx := f.ctxFor(t, f.avp)
	first, err := svc.BuildReport(ctx, august, augustNow)
	require.NoError(t, err)
	second, err := svc.BuildReport(ctx, august, augustNow)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same data, period and clock must reproduce the report")
}

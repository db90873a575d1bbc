package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/config"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInsightService() *service.InsightService {
	return service.NewInsightService(config.InsightsConfig{
		GrowthAlertThresholdPct:  0,
		PipelineCoverageMultiple: 2,
		DefaultMonthlyTarget:     50000,
		DisparityRatio:           3,
		PerformanceGapRatio:      0.5,
	}, zap.NewNop())
}

func healthyFunnel() []domain.FunnelStageMetrics {
	return []domain.FunnelStageMetrics{
		{Stage: domain.FunnelStageNewlyQuoted, Count: 2, Value: 5000, AvgAgeDays: 4, OldestDays: 6, Band: domain.AgingBandHealthy},
		{Stage: domain.FunnelStageClosableThisMonth, Count: 1, Value: 8000, AvgAgeDays: 10, OldestDays: 10, Band: domain.AgingBandHealthy},
		{Stage: domain.FunnelStageProjectBased, Count: 0, Band: domain.AgingBandHealthy},
	}
}

// healthyReport passes every rule family: growing revenue, ample pipeline
// coverage, fresh funnel, and no member or group spread.
func healthyReport() *domain.AggregatedReport {
	return &domain.AggregatedReport{
		ScopeKey:    "org",
		Period:      august,
		GeneratedAt: augustNow,
		Metrics: map[string]float64{
			domain.MetricRevenue:          20000,
			domain.MetricPipelineValue:    40000,
			domain.MetricQuotaTarget:      10000,
			domain.MetricRevenueGrowthPct: 5,
		},
		Funnel: healthyFunnel(),
	}
}

func TestDerive_HealthyReportYieldsNothing(t *testing.T) {
	svc := newInsightService()
	assert.Empty(t, svc.Derive(healthyReport()))
}

func TestDerive_GrowthAlert(t *testing.T) {
	svc := newInsightService()

	t.Run("decline below the threshold warns", func(t *testing.T) {
		report := healthyReport()
		report.Metrics[domain.MetricRevenueGrowthPct] = -10

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightGrowthAlert, insights[0].Category)
		assert.Equal(t, domain.SeverityWarning, insights[0].Severity)
		assert.Equal(t, "org", insights[0].ScopeID)
		assert.Contains(t, insights[0].Message, "-10.0%")
	})

	t.Run("steep decline escalates to critical", func(t *testing.T) {
		report := healthyReport()
		report.Metrics[domain.MetricRevenueGrowthPct] = -30

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.SeverityCritical, insights[0].Severity)
	})

	t.Run("no prior data never alerts", func(t *testing.T) {
		report := healthyReport()
		delete(report.Metrics, domain.MetricRevenueGrowthPct)
		report.Metrics[domain.MetricRevenue] = 0

		assert.Empty(t, svc.Derive(report))
	})
}

func TestDerive_PipelineCoverage(t *testing.T) {
	svc := newInsightService()

	// Target 10000 at a 2x multiple requires 20000 in open pipeline
	t.Run("thin pipeline warns", func(t *testing.T) {
		report := healthyReport()
		report.Metrics[domain.MetricPipelineValue] = 15000

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightPipelineCoverage, insights[0].Category)
		assert.Equal(t, domain.SeverityWarning, insights[0].Severity)
		assert.Equal(t, 1.5, insights[0].Metrics["coverage_multiple"])
	})

	t.Run("pipeline under half the requirement is critical", func(t *testing.T) {
		report := healthyReport()
		report.Metrics[domain.MetricPipelineValue] = 8000

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.SeverityCritical, insights[0].Severity)
	})

	t.Run("meeting the requirement exactly stays quiet", func(t *testing.T) {
		report := healthyReport()
		report.Metrics[domain.MetricPipelineValue] = 20000

		assert.Empty(t, svc.Derive(report))
	})

	t.Run("a zero target disables the rule", func(t *testing.T) {
		report := healthyReport()
		report.Metrics[domain.MetricQuotaTarget] = 0
		report.Metrics[domain.MetricPipelineValue] = 0

		assert.Empty(t, svc.Derive(report))
	})
}

func TestDerive_FunnelAging(t *testing.T) {
	svc := newInsightService()

	t.Run("attention band warns", func(t *testing.T) {
		report := healthyReport()
		report.Funnel[1] = domain.FunnelStageMetrics{
			Stage: domain.FunnelStageClosableThisMonth, Count: 3, Value: 12000,
			AvgAgeDays: 35, OldestDays: 44, Band: domain.AgingBandAttention,
		}

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightFunnelAging, insights[0].Category)
		assert.Equal(t, domain.SeverityWarning, insights[0].Severity)
		assert.Equal(t, string(domain.FunnelStageClosableThisMonth), insights[0].ScopeID)
		assert.Equal(t, 44.0, insights[0].Metrics["oldest_days"])
	})

	t.Run("deals stuck past twice the attention threshold are critical", func(t *testing.T) {
		report := healthyReport()
		report.Funnel[2] = domain.FunnelStageMetrics{
			Stage: domain.FunnelStageProjectBased, Count: 1, Value: 30000,
			AvgAgeDays: 70, OldestDays: 70, Band: domain.AgingBandAttention,
		}

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.SeverityCritical, insights[0].Severity)
	})

	t.Run("monitor band stays quiet", func(t *testing.T) {
		report := healthyReport()
		report.Funnel[0].Band = domain.AgingBandMonitor
		report.Funnel[0].AvgAgeDays = 20

		assert.Empty(t, svc.Derive(report))
	})
}

func TestDerive_PerformanceGap(t *testing.T) {
	svc := newInsightService()

	member := func(name string, revenue float64) domain.MemberMetrics {
		return domain.MemberMetrics{
			UserID:  uuid.New(),
			Name:    name,
			Metrics: map[string]float64{domain.MetricRevenue: revenue},
		}
	}

	t.Run("member far below the scope average is flagged", func(t *testing.T) {
		report := healthyReport()
		straggler := member("Ola Aas", 500)
		report.Members = []domain.MemberMetrics{member("Per Berg", 10000), member("Mia Moen", 9000), straggler}

		// Average 6500, cutoff 3250
		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightPerformanceGap, insights[0].Category)
		assert.Equal(t, straggler.UserID.String(), insights[0].ScopeID)
		assert.Contains(t, insights[0].Message, "Ola Aas")
	})

	t.Run("a single member has no average to compare against", func(t *testing.T) {
		report := healthyReport()
		report.Members = []domain.MemberMetrics{member("Per Berg", 0)}

		assert.Empty(t, svc.Derive(report))
	})

	t.Run("a scope with no revenue at all stays quiet", func(t *testing.T) {
		report := healthyReport()
		report.Members = []domain.MemberMetrics{member("Per Berg", 0), member("Mia Moen", 0)}

		assert.Empty(t, svc.Derive(report))
	})
}

func TestDerive_GroupDisparity(t *testing.T) {
	svc := newInsightService()

	group := func(name string, revenue float64) domain.GroupMetrics {
		return domain.GroupMetrics{
			GroupID: uuid.New(),
			Name:    name,
			Metrics: map[string]float64{domain.MetricRevenue: revenue},
		}
	}

	t.Run("wide spread between sibling groups warns", func(t *testing.T) {
		report := healthyReport()
		report.Groups = []domain.GroupMetrics{group("Alpha", 9000), group("Beta", 2000)}

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightGroupDisparity, insights[0].Category)
		assert.Contains(t, insights[0].Message, "Alpha")
		assert.Contains(t, insights[0].Message, "Beta")
		assert.Equal(t, 4.5, insights[0].Metrics["revenue_ratio"])
	})

	t.Run("a group with zero revenue next to a producing one is flagged", func(t *testing.T) {
		report := healthyReport()
		report.Groups = []domain.GroupMetrics{group("Alpha", 9000), group("Beta", 0)}

		insights := svc.Derive(report)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightGroupDisparity, insights[0].Category)
		_, hasRatio := insights[0].Metrics["revenue_ratio"]
		assert.False(t, hasRatio, "no ratio against a zero bottom")
	})

	t.Run("spread at the ratio exactly stays quiet", func(t *testing.T) {
		report := healthyReport()
		report.Groups = []domain.GroupMetrics{group("Alpha", 9000), group("Beta", 3000)}

		assert.Empty(t, svc.Derive(report))
	})

	t.Run("single group has no siblings to compare", func(t *testing.T) {
		report := healthyReport()
		report.Groups = []domain.GroupMetrics{group("Alpha", 9000)}

		assert.Empty(t, svc.Derive(report))
	})
}

func TestDerive_Ordering(t *testing.T) {
	svc := newInsightService()

	report := healthyReport()
	report.Metrics[domain.MetricRevenueGrowthPct] = -40  // critical growth alert
	report.Metrics[domain.MetricPipelineValue] = 15000   // coverage warning
	report.Funnel[1] = domain.FunnelStageMetrics{        // aging warning
		Stage: domain.FunnelStageClosableThisMonth, Count: 2, Value: 9000,
		AvgAgeDays: 33, OldestDays: 40, Band: domain.AgingBandAttention,
	}
	report.Groups = []domain.GroupMetrics{ // disparity warning
		{GroupID: uuid.New(), Name: "Alpha", Metrics: map[string]float64{domain.MetricRevenue: 9000}},
		{GroupID: uuid.New(), Name: "Beta", Metrics: map[string]float64{domain.MetricRevenue: 1000}},
	}

	insights := svc.Derive(report)
	require.Len(t, insights, 4)

	// Most severe first, then category name breaks the tie
	assert.Equal(t, domain.SeverityCritical, insights[0].Severity)
	assert.Equal(t, domain.InsightGrowthAlert, insights[0].Category)
	assert.Equal(t, domain.InsightFunnelAging, insights[1].Category)
	assert.Equal(t, domain.InsightGroupDisparity, insights[2].Category)
	assert.Equal(t, domain.InsightPipelineCoverage, insights[3].Category)

	// Same report, same order
	again := svc.Derive(report)
	assert.Equal(t, insights, again)
}

package service

import (
	"fmt"
	"sort"

	"github.com/meridian-crm/monitor-api/internal/config"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"go.uber.org/zap"
)

// InsightService derives recommendations from an aggregated report. Each rule
// family is independent and threshold-driven; derivation is pure and the same
// report always yields the same ordered list.
type InsightService struct {
	cfg    config.InsightsConfig
	logger *zap.Logger
}

// NewInsightService creates a new InsightService instance
func NewInsightService(cfg config.InsightsConfig, logger *zap.Logger) *InsightService {
	return &InsightService{
		cfg:    cfg,
		logger: logger,
	}
}

// Derive evaluates all rule families over one report and orders the results
// most severe first, ties broken by category name then scope identifier. An
// empty result is a valid outcome.
func (s *InsightService) Derive(report *domain.AggregatedReport) []domain.Insight {
	insights := make([]domain.Insight, 0)
	insights = append(insights, s.growthAlerts(report)...)
	insights = append(insights, s.pipelineCoverage(report)...)
	insights = append(insights, s.funnelAging(report)...)
	insights = append(insights, s.performanceGaps(report)...)
	insights = append(insights, s.groupDisparity(report)...)

	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Severity.Rank() != insights[j].Severity.Rank() {
			return insights[i].Severity.Rank() > insights[j].Severity.Rank()
		}
		if insights[i].Category != insights[j].Category {
			return insights[i].Category < insights[j].Category
		}
		return insights[i].ScopeID < insights[j].ScopeID
	})

	return insights
}

// growthAlerts flags revenue decline against the preceding period. An absent
// growth metric means there was no prior data, which never alerts.
func (s *InsightService) growthAlerts(report *domain.AggregatedReport) []domain.Insight {
	growth, ok := report.Metrics[domain.MetricRevenueGrowthPct]
	if !ok || growth >= s.cfg.GrowthAlertThresholdPct {
		return nil
	}

	severity := domain.SeverityWarning
	if growth <= s.cfg.GrowthAlertThresholdPct-25 {
		severity = domain.SeverityCritical
	}

	return []domain.Insight{{
		Category: domain.InsightGrowthAlert,
		Severity: severity,
		ScopeID:  report.ScopeKey,
		Message:  fmt.Sprintf("revenue growth of %.1f%% fell below the %.1f%% threshold", growth, s.cfg.GrowthAlertThresholdPct),
		Metrics: map[string]float64{
			domain.MetricRevenueGrowthPct: growth,
			domain.MetricRevenue:          report.Metrics[domain.MetricRevenue],
		},
	}}
}

// pipelineCoverage checks the open pipeline against the monthly revenue
// target. A zero target disables the rule.
func (s *InsightService) pipelineCoverage(report *domain.AggregatedReport) []domain.Insight {
	target := report.Metrics[domain.MetricQuotaTarget]
	if target <= 0 || s.cfg.PipelineCoverageMultiple <= 0 {
		return nil
	}

	pipeline := report.Metrics[domain.MetricPipelineValue]
	required := target * s.cfg.PipelineCoverageMultiple
	if pipeline >= required {
		return nil
	}

	severity := domain.SeverityWarning
	if pipeline < required/2 {
		severity = domain.SeverityCritical
	}

	coverage := pipeline / target
	return []domain.Insight{{
		Category: domain.InsightPipelineCoverage,
		Severity: severity,
		ScopeID:  report.ScopeKey,
		Message:  fmt.Sprintf("open pipeline covers %.1fx the monthly target, %.1fx is required", coverage, s.cfg.PipelineCoverageMultiple),
		Metrics: map[string]float64{
			domain.MetricPipelineValue: pipeline,
			domain.MetricQuotaTarget:   target,
			"coverage_multiple":        round2(coverage),
		},
	}}
}

// funnelAging flags funnel stages whose average age reached the attention band
func (s *InsightService) funnelAging(report *domain.AggregatedReport) []domain.Insight {
	var insights []domain.Insight
	for _, stage := range report.Funnel {
		if stage.Band != domain.AgingBandAttention {
			continue
		}

		severity := domain.SeverityWarning
		if stage.OldestDays > 2*domain.AgingAttentionDays {
			severity = domain.SeverityCritical
		}

		insights = append(insights, domain.Insight{
			Category: domain.InsightFunnelAging,
			Severity: severity,
			ScopeID:  string(stage.Stage),
			Message: fmt.Sprintf("%d deals in %s average %.0f days in stage, the oldest is %d days old",
				stage.Count, stage.Stage, stage.AvgAgeDays, stage.OldestDays),
			Metrics: map[string]float64{
				"avg_age_days": stage.AvgAgeDays,
				"oldest_days":  float64(stage.OldestDays),
				"stage_count":  float64(stage.Count),
				"stage_value":  stage.Value,
			},
		})
	}
	return insights
}

// performanceGaps flags members whose revenue sits far below the scope
// average. At least two members are needed for an average to mean anything.
func (s *InsightService) performanceGaps(report *domain.AggregatedReport) []domain.Insight {
	if len(report.Members) < 2 || s.cfg.PerformanceGapRatio <= 0 {
		return nil
	}

	var total float64
	for _, m := range report.Members {
		total += m.Metrics[domain.MetricRevenue]
	}
	avg := total / float64(len(report.Members))
	if avg <= 0 {
		return nil
	}
	cutoff := avg * s.cfg.PerformanceGapRatio

	var insights []domain.Insight
	for _, m := range report.Members {
		revenue := m.Metrics[domain.MetricRevenue]
		if revenue >= cutoff {
			continue
		}
		insights = append(insights, domain.Insight{
			Category: domain.InsightPerformanceGap,
			Severity: domain.SeverityWarning,
			ScopeID:  m.UserID.String(),
			Message:  fmt.Sprintf("%s booked %.0f in revenue against a scope average of %.0f", m.Name, revenue, avg),
			Metrics: map[string]float64{
				domain.MetricRevenue: revenue,
				"scope_avg_revenue":  round2(avg),
			},
		})
	}
	return insights
}

// groupDisparity compares the revenue spread across sibling groups
func (s *InsightService) groupDisparity(report *domain.AggregatedReport) []domain.Insight {
	if len(report.Groups) < 2 || s.cfg.DisparityRatio <= 0 {
		return nil
	}

	top, bottom := report.Groups[0], report.Groups[0]
	for _, g := range report.Groups[1:] {
		if g.Metrics[domain.MetricRevenue] > top.Metrics[domain.MetricRevenue] {
			top = g
		}
		if g.Metrics[domain.MetricRevenue] < bottom.Metrics[domain.MetricRevenue] {
			bottom = g
		}
	}

	topRev := top.Metrics[domain.MetricRevenue]
	bottomRev := bottom.Metrics[domain.MetricRevenue]
	if topRev <= 0 {
		return nil
	}
	// A zero bottom with a non-zero top exceeds any ratio
	if bottomRev > 0 && topRev/bottomRev <= s.cfg.DisparityRatio {
		return nil
	}

	metrics := map[string]float64{
		"top_revenue":    topRev,
		"bottom_revenue": bottomRev,
	}
	if bottomRev > 0 {
		metrics["revenue_ratio"] = round2(topRev / bottomRev)
	}

	return []domain.Insight{{
		Category: domain.InsightGroupDisparity,
		Severity: domain.SeverityWarning,
		ScopeID:  report.ScopeKey,
		Message: fmt.Sprintf("revenue spread between %s (%.0f) and %s (%.0f) exceeds the %.1fx ratio",
			top.Name, topRev, bottom.Name, bottomRev, s.cfg.DisparityRatio),
		Metrics: metrics,
	}}
}

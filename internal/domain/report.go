package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Period is a half-open time window [Start, End). All aggregation windows use
// this form so adjacent periods never overlap.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a period and normalizes both bounds to UTC
func NewPeriod(start, end time.Time) Period {
	return Period{Start: start.UTC(), End: end.UTC()}
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Duration returns the length of the period
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Previous returns the immediately preceding period of equal length
func (p Period) Previous() Period {
	return Period{Start: p.Start.Add(-p.Duration()), End: p.Start}
}

// IsValid reports whether the period has positive length
func (p Period) IsValid() bool {
	return p.End.After(p.Start)
}

// String renders the period for scope keys and log fields
func (p Period) String() string {
	return fmt.Sprintf("%s/%s", p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
}

// Metric names produced by the aggregation engine. Growth metrics are absent
// from the map when the preceding period has no data to compare against.
const (
	MetricTotalActivities     = "total_activities"
	MetricCompletedActivities = "completed_activities"
	MetricOverdueActivities   = "overdue_activities"
	MetricCompletionRatePct   = "completion_rate_pct"
	MetricRevenue             = "revenue"
	MetricPipelineValue       = "pipeline_value"
	MetricAvgDealSize         = "avg_deal_size"
	MetricWonDeals            = "won_deals"
	MetricOpenDeals           = "open_deals"
	MetricRevenueGrowthPct    = "revenue_growth_pct"
	MetricCompletedGrowthPct  = "completed_growth_pct"
	MetricQuotaTarget         = "quota_target"
)

// AggregatedReport is the output of one aggregation run. Given the same
// stored data, period, and clock value it is reproducible bit for bit.
type AggregatedReport struct {
	ScopeKey    string
	Period      Period
	GeneratedAt time.Time
	Metrics     map[string]float64
	Members     []MemberMetrics
	Groups      []GroupMetrics
	Funnel      []FunnelStageMetrics
}

// MemberMetrics holds the per-salesperson slice of a report
type MemberMetrics struct {
	UserID  uuid.UUID
	Name    string
	Metrics map[string]float64
}

// GroupMetrics holds the per-group slice of a report
type GroupMetrics struct {
	GroupID uuid.UUID
	Name    string
	Metrics map[string]float64
}

// FunnelStageMetrics summarizes the open deals sitting in one funnel stage
type FunnelStageMetrics struct {
	Stage      FunnelStage
	Count      int
	Value      float64
	AvgAgeDays float64
	OldestDays int
	Band       AgingBand
}

// InsightCategory represents the rule family that produced an insight
type InsightCategory string

const (
	InsightGrowthAlert      InsightCategory = "growth_alert"
	InsightPipelineCoverage InsightCategory = "pipeline_coverage"
	InsightFunnelAging      InsightCategory = "funnel_aging"
	InsightPerformanceGap   InsightCategory = "performance_gap"
	InsightGroupDisparity   InsightCategory = "group_disparity"
)

// InsightSeverity orders insights for presentation
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityCritical InsightSeverity = "critical"
)

var severityRanks = map[InsightSeverity]int{
	SeverityInfo:     1,
	SeverityWarning:  2,
	SeverityCritical: 3,
}

// Rank returns the severity's sort weight, higher is more severe
func (s InsightSeverity) Rank() int {
	return severityRanks[s]
}

// Insight is a derived recommendation. Insights are ephemeral; they are
// recomputed from a report on demand and never stored.
type Insight struct {
	Category InsightCategory
	Severity InsightSeverity
	ScopeID  string
	Message  string
	Metrics  map[string]float64
}

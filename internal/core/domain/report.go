package domain

import "time"

// HealthFilter narrows a report by grade. HealthFilterNone selects
// projects that have no status row in range, regardless of grade.
const HealthFilterNone = "none"

// ReportFilters is the optional filter set for report generation.
// IncludeNoStatus is true by default at the API boundary (see
// DefaultReportFilters); callers constructing a zero value exclude
// projects without a status row in range.
type ReportFilters struct {
	ClientIDs       []string   `json:"client_ids,omitempty"`
	HealthStatus    string     `json:"health_status,omitempty"`
	DateFrom        *time.Time `json:"date_from,omitempty"`
	DateTo          *time.Time `json:"date_to,omitempty"`
	IncludeNoStatus bool       `json:"include_no_status"`
}

// DefaultReportFilters is the filter set a request without explicit
// filters gets: everything, including projects without a status.
func DefaultReportFilters() ReportFilters {
	return ReportFilters{IncludeNoStatus: true}
}

// HealthMetric is the derived, non-persisted health view of one
// project. LastUpdated is nil when the project has no status row in
// the filtered range.
type HealthMetric struct {
	ProjectID    string     `json:"project_id"`
	ProjectName  string     `json:"project_name"`
	ClientName   string     `json:"client_name"`
	HealthStatus Health     `json:"health_status"`
	HealthLabel  string     `json:"health_label"`
	IsOnScope    *bool      `json:"is_on_scope"`
	IsOnTime     *bool      `json:"is_on_time"`
	IsOnBudget   *bool      `json:"is_on_budget"`
	NextDelivery *string    `json:"next_delivery"`
	Risks        *string    `json:"risks"`
	LastUpdated  *time.Time `json:"last_updated"`
	GreenCount   int        `json:"green_count"`
}

type OverallHealthMetrics struct {
	TotalProjects           int     `json:"total_projects"`
	HealthyProjects         int     `json:"healthy_projects"`
	AtRiskProjects          int     `json:"at_risk_projects"`
	CriticalProjects        int     `json:"critical_projects"`
	NoStatusProjects        int     `json:"no_status_projects"`
	OverallHealthPercentage float64 `json:"overall_health_percentage"`
	ScopeCompliance         float64 `json:"scope_compliance"`
	TimeCompliance          float64 `json:"time_compliance"`
	BudgetCompliance        float64 `json:"budget_compliance"`
}

type ClientHealthSummary struct {
	ClientID         string  `json:"client_id"`
	ClientName       string  `json:"client_name"`
	TotalProjects    int     `json:"total_projects"`
	HealthyProjects  int     `json:"healthy_projects"`
	AtRiskProjects   int     `json:"at_risk_projects"`
	CriticalProjects int     `json:"critical_projects"`
	NoStatusProjects int     `json:"no_status_projects"`
	HealthPercentage float64 `json:"health_percentage"`
}

type UpcomingDelivery struct {
	ProjectID    string    `json:"project_id"`
	ProjectName  string    `json:"project_name"`
	ClientName   string    `json:"client_name"`
	NextDelivery string    `json:"next_delivery"`
	HealthStatus Health    `json:"health_status"`
	LastUpdated  time.Time `json:"last_updated"`
}

type ProjectHealthReport struct {
	GeneratedAt        time.Time             `json:"generated_at"`
	GeneratedBy        string                `json:"generated_by,omitempty"`
	OverallMetrics     OverallHealthMetrics  `json:"overall_metrics"`
	ProjectMetrics     []HealthMetric        `json:"project_metrics"`
	ClientSummaries    []ClientHealthSummary `json:"client_summaries"`
	UpcomingDeliveries []UpcomingDelivery    `json:"upcoming_deliveries"`
	ProjectsAtRisk     []HealthMetric        `json:"projects_at_risk"`
	CriticalProjects   []HealthMetric        `json:"critical_projects"`
}

// Validate rejects filter values the engine does not understand.
func (f ReportFilters) Validate() error {
	switch f.HealthStatus {
	case "", string(HealthGreen), string(HealthYellow), string(HealthRed), HealthFilterNone:
	default:
		return WrapError(ErrInvalidInput, "report filters", errInvalidHealthFilter)
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return WrapError(ErrInvalidInput, "report filters", errInvertedDateRange)
	}
	return nil
}

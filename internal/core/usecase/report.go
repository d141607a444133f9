package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"deliverypulse/internal/core/domain"
	"deliverypulse/internal/core/ports"
)

// ReportUseCase is the health aggregation engine. It is read-only and
// side-effect-free: it reflects whatever status history is committed at
// query time, with no snapshot across its queries.
type ReportUseCase struct {
	projects ports.ProjectRepository
	clients  ports.ClientRepository
	statuses ports.StatusRepository
	logger   *slog.Logger
}

func NewReportUseCase(
	projects ports.ProjectRepository,
	clients ports.ClientRepository,
	statuses ports.StatusRepository,
	logger *slog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		projects: projects,
		clients:  clients,
		statuses: statuses,
		logger:   logger,
	}
}

func (uc *ReportUseCase) Generate(ctx context.Context, filters domain.ReportFilters, requestedBy string) (*domain.ProjectHealthReport, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	uc.logger.Info("generating project health report", "requested_by", requestedBy)

	metrics, err := uc.collectMetrics(ctx, filters)
	if err != nil {
		return nil, err
	}

	clientIDByName, err := uc.clientIDIndex(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.ProjectHealthReport{
		GeneratedAt:        time.Now().UTC(),
		GeneratedBy:        requestedBy,
		OverallMetrics:     overallMetrics(metrics),
		ProjectMetrics:     metrics,
		ClientSummaries:    clientSummaries(metrics, clientIDByName),
		UpcomingDeliveries: upcomingDeliveries(metrics),
		ProjectsAtRisk:     filterByHealth(metrics, domain.HealthYellow),
		CriticalProjects:   filterByHealth(metrics, domain.HealthRed),
	}
	return report, nil
}

// collectMetrics walks every (optionally client-filtered) project,
// picks its latest status row inside the date range and grades it.
func (uc *ReportUseCase) collectMetrics(ctx context.Context, filters domain.ReportFilters) ([]domain.HealthMetric, error) {
	projects, err := uc.projects.List(ctx, filters.ClientIDs)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	metrics := make([]domain.HealthMetric, 0, len(projects))
	for _, project := range projects {
		latest, err := uc.statuses.LatestInRange(ctx, project.ID, filters.DateFrom, filters.DateTo)
		if err != nil {
			return nil, fmt.Errorf("latest status for project %s: %w", project.ID, err)
		}

		if latest == nil && !filters.IncludeNoStatus {
			continue
		}

		var fields domain.StatusFields
		var lastUpdated *time.Time
		if latest != nil {
			fields = latest.StatusFields
			ts := latest.UpdatedAt
			lastUpdated = &ts
		}

		health := domain.ClassifyHealth(fields)
		if !matchesHealthFilter(filters.HealthStatus, health, lastUpdated) {
			continue
		}

		metrics = append(metrics, domain.HealthMetric{
			ProjectID:    project.ID,
			ProjectName:  project.Name,
			ClientName:   project.ClientName,
			HealthStatus: health,
			HealthLabel:  domain.HealthLabel(health),
			IsOnScope:    fields.IsOnScope,
			IsOnTime:     fields.IsOnTime,
			IsOnBudget:   fields.IsOnBudget,
			NextDelivery: fields.NextDelivery,
			Risks:        fields.Risks,
			LastUpdated:  lastUpdated,
			GreenCount:   domain.GreenCount(fields),
		})
	}
	return metrics, nil
}

// matchesHealthFilter applies the grade filter. "none" selects projects
// without a status row in range by timestamp presence, not by grade: a
// no-status project grades red like an all-nil row, and the two are
// deliberately kept distinguishable only through LastUpdated.
func matchesHealthFilter(filter string, health domain.Health, lastUpdated *time.Time) bool {
	switch filter {
	case "":
		return true
	case domain.HealthFilterNone:
		return lastUpdated == nil
	default:
		return string(health) == filter
	}
}

func overallMetrics(metrics []domain.HealthMetric) domain.OverallHealthMetrics {
	out := domain.OverallHealthMetrics{TotalProjects: len(metrics)}

	scopeTrue, timeTrue, budgetTrue := 0, 0, 0
	for _, m := range metrics {
		switch m.HealthStatus {
		case domain.HealthGreen:
			out.HealthyProjects++
		case domain.HealthYellow:
			out.AtRiskProjects++
		case domain.HealthRed:
			out.CriticalProjects++
		}
		if m.LastUpdated == nil {
			out.NoStatusProjects++
		}
		if m.IsOnScope != nil && *m.IsOnScope {
			scopeTrue++
		}
		if m.IsOnTime != nil && *m.IsOnTime {
			timeTrue++
		}
		if m.IsOnBudget != nil && *m.IsOnBudget {
			budgetTrue++
		}
	}

	out.OverallHealthPercentage = percentage(out.HealthyProjects, out.TotalProjects)
	out.ScopeCompliance = percentage(scopeTrue, out.TotalProjects)
	out.TimeCompliance = percentage(timeTrue, out.TotalProjects)
	out.BudgetCompliance = percentage(budgetTrue, out.TotalProjects)
	return out
}

func clientSummaries(metrics []domain.HealthMetric, clientIDByName map[string]string) []domain.ClientHealthSummary {
	byName := make(map[string]*domain.ClientHealthSummary)
	for _, m := range metrics {
		summary, ok := byName[m.ClientName]
		if !ok {
			summary = &domain.ClientHealthSummary{
				ClientID:   clientIDByName[m.ClientName],
				ClientName: m.ClientName,
			}
			byName[m.ClientName] = summary
		}

		summary.TotalProjects++
		switch m.HealthStatus {
		case domain.HealthGreen:
			summary.HealthyProjects++
		case domain.HealthYellow:
			summary.AtRiskProjects++
		case domain.HealthRed:
			summary.CriticalProjects++
		}
		if m.LastUpdated == nil {
			summary.NoStatusProjects++
		}
	}

	summaries := make([]domain.ClientHealthSummary, 0, len(byName))
	for _, summary := range byName {
		summary.HealthPercentage = percentage(summary.HealthyProjects, summary.TotalProjects)
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ClientName < summaries[j].ClientName
	})
	return summaries
}

func upcomingDeliveries(metrics []domain.HealthMetric) []domain.UpcomingDelivery {
	deliveries := make([]domain.UpcomingDelivery, 0)
	for _, m := range metrics {
		if m.NextDelivery == nil || *m.NextDelivery == "" {
			continue
		}
		lastUpdated := time.Now().UTC()
		if m.LastUpdated != nil {
			lastUpdated = *m.LastUpdated
		}
		deliveries = append(deliveries, domain.UpcomingDelivery{
			ProjectID:    m.ProjectID,
			ProjectName:  m.ProjectName,
			ClientName:   m.ClientName,
			NextDelivery: *m.NextDelivery,
			HealthStatus: m.HealthStatus,
			LastUpdated:  lastUpdated,
		})
	}
	// Most recently updated first; ties keep accumulation order.
	sort.SliceStable(deliveries, func(i, j int) bool {
		return deliveries[i].LastUpdated.After(deliveries[j].LastUpdated)
	})
	return deliveries
}

func filterByHealth(metrics []domain.HealthMetric, health domain.Health) []domain.HealthMetric {
	out := make([]domain.HealthMetric, 0)
	for _, m := range metrics {
		if m.HealthStatus == health {
			out = append(out, m)
		}
	}
	return out
}

func (uc *ReportUseCase) clientIDIndex(ctx context.Context) (map[string]string, error) {
	clients, err := uc.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	index := make(map[string]string, len(clients))
	for _, client := range clients {
		index[client.Name] = client.ID
	}
	return index, nil
}

// percentage rounds to two decimals; an empty denominator yields 0.0,
// never a division error.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"deliverypulse/internal/core/domain"
)

const (
	sheetOverview   = "Overview"
	sheetProjects   = "Projects"
	sheetClients    = "Clients"
	sheetDeliveries = "Deliveries"
)

// Exporter renders a health report as an XLSX workbook with one sheet
// per report section.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Export(report *domain.ProjectHealthReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetOverview)
	for _, sheet := range []string{sheetProjects, sheetClients, sheetDeliveries} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	if err := writeOverview(f, report); err != nil {
		return nil, err
	}
	if err := writeProjects(f, report.ProjectMetrics); err != nil {
		return nil, err
	}
	if err := writeClients(f, report.ClientSummaries); err != nil {
		return nil, err
	}
	if err := writeDeliveries(f, report.UpcomingDeliveries); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOverview(f *excelize.File, report *domain.ProjectHealthReport) error {
	m := report.OverallMetrics
	rows := [][]any{
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{"Generated By", report.GeneratedBy},
		{"Total Projects", m.TotalProjects},
		{"Healthy Projects", m.HealthyProjects},
		{"At Risk Projects", m.AtRiskProjects},
		{"Critical Projects", m.CriticalProjects},
		{"No Status Projects", m.NoStatusProjects},
		{"Overall Health %", m.OverallHealthPercentage},
		{"Scope Compliance %", m.ScopeCompliance},
		{"Time Compliance %", m.TimeCompliance},
		{"Budget Compliance %", m.BudgetCompliance},
	}
	return writeRows(f, sheetOverview, rows)
}

func writeProjects(f *excelize.File, metrics []domain.HealthMetric) error {
	rows := [][]any{{
		"Project", "Client", "Health", "On Scope", "On Time", "On Budget",
		"Next Delivery", "Risks", "Last Updated",
	}}
	for _, metric := range metrics {
		rows = append(rows, []any{
			metric.ProjectName,
			metric.ClientName,
			metric.HealthLabel,
			triStateCell(metric.IsOnScope),
			triStateCell(metric.IsOnTime),
			triStateCell(metric.IsOnBudget),
			textCell(metric.NextDelivery),
			textCell(metric.Risks),
			timeCell(metric.LastUpdated),
		})
	}
	return writeRows(f, sheetProjects, rows)
}

func writeClients(f *excelize.File, summaries []domain.ClientHealthSummary) error {
	rows := [][]any{{
		"Client", "Projects", "Healthy", "At Risk", "Critical", "No Status", "Health %",
	}}
	for _, summary := range summaries {
		rows = append(rows, []any{
			summary.ClientName,
			summary.TotalProjects,
			summary.HealthyProjects,
			summary.AtRiskProjects,
			summary.CriticalProjects,
			summary.NoStatusProjects,
			summary.HealthPercentage,
		})
	}
	return writeRows(f, sheetClients, rows)
}

func writeDeliveries(f *excelize.File, deliveries []domain.UpcomingDelivery) error {
	rows := [][]any{{"Project", "Client", "Next Delivery", "Health", "Last Updated"}}
	for _, delivery := range deliveries {
		rows = append(rows, []any{
			delivery.ProjectName,
			delivery.ClientName,
			delivery.NextDelivery,
			string(delivery.HealthStatus),
			delivery.LastUpdated.Format(time.RFC3339),
		})
	}
	return writeRows(f, sheetDeliveries, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", idx+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}

func triStateCell(v *bool) string {
	if v == nil {
		return "unknown"
	}
	if *v {
		return "yes"
	}
	return "no"
}

func textCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func timeCell(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}

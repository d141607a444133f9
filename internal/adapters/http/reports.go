package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"deliverypulse/internal/core/domain"
)

func (rt *Router) generateReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	// Seed defaults before decoding so an omitted include_no_status
	// keeps no-status projects in the report.
	filters := domain.DefaultReportFilters()
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
			writeError(w, domain.WrapError(domain.ErrInvalidInput, "decode report filters", err))
			return
		}
	}

	start := time.Now()
	report, err := rt.reports.Generate(r.Context(), filters, requestUser(r))
	if rt.metrics != nil {
		count := 0
		if report != nil {
			count = len(report.ProjectMetrics)
		}
		rt.metrics.RecordReport(rt.service, count, time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) exportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	filters, err := reportFiltersFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	report, err := rt.reports.Generate(r.Context(), filters, requestUser(r))
	if rt.metrics != nil {
		count := 0
		if report != nil {
			count = len(report.ProjectMetrics)
		}
		rt.metrics.RecordReport(rt.service, count, time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	workbook, err := rt.exporter.Export(report)
	if err != nil {
		writeError(w, fmt.Errorf("export report: %w", err))
		return
	}

	filename := "project-health-" + report.GeneratedAt.Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func reportFiltersFromQuery(r *http.Request) (domain.ReportFilters, error) {
	filters := domain.DefaultReportFilters()
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("client_ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filters.ClientIDs = append(filters.ClientIDs, id)
			}
		}
	}
	filters.HealthStatus = strings.TrimSpace(query.Get("health_status"))

	if raw := strings.TrimSpace(query.Get("date_from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, domain.WrapError(domain.ErrInvalidInput, "parse date_from", err)
		}
		filters.DateFrom = &from
	}
	if raw := strings.TrimSpace(query.Get("date_to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, domain.WrapError(domain.ErrInvalidInput, "parse date_to", err)
		}
		filters.DateTo = &to
	}
	if raw := strings.TrimSpace(query.Get("include_no_status")); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, domain.WrapError(domain.ErrInvalidInput, "parse include_no_status", err)
		}
		filters.IncludeNoStatus = include
	}
	return filters, nil
}

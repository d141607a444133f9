package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"deliverypulse/internal/core/domain"
	"deliverypulse/internal/core/ports"
	"deliverypulse/internal/observability/metrics"
)

// ReportExporter renders a generated report as a downloadable workbook.
type ReportExporter interface {
	Export(report *domain.ProjectHealthReport) ([]byte, error)
}

type Router struct {
	ingestor       ports.TranscriptionIngestor
	reports        ports.ReportGenerator
	clients        ports.ClientRepository
	projects       ports.ProjectRepository
	transcriptions ports.TranscriptionRepository
	statuses       ports.StatusRepository
	storage        ports.ObjectStorage
	exporter       ReportExporter
	metrics        *metrics.HTTPServerMetrics
	logger         *slog.Logger
	service        string
}

type RouterDeps struct {
	Ingestor       ports.TranscriptionIngestor
	Reports        ports.ReportGenerator
	Clients        ports.ClientRepository
	Projects       ports.ProjectRepository
	Transcriptions ports.TranscriptionRepository
	Statuses       ports.StatusRepository
	Storage        ports.ObjectStorage
	Exporter       ReportExporter
	Metrics        *metrics.HTTPServerMetrics
	Logger         *slog.Logger
	Service        string
}

func NewRouter(deps RouterDeps) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	service := deps.Service
	if service == "" {
		service = "api"
	}
	return &Router{
		ingestor:       deps.Ingestor,
		reports:        deps.Reports,
		clients:        deps.Clients,
		projects:       deps.Projects,
		transcriptions: deps.Transcriptions,
		statuses:       deps.Statuses,
		storage:        deps.Storage,
		exporter:       deps.Exporter,
		metrics:        deps.Metrics,
		logger:         logger,
		service:        service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/clients", rt.clientsCollection)
	mux.HandleFunc("/v1/clients/", rt.clientByID)
	mux.HandleFunc("/v1/projects", rt.projectsCollection)
	mux.HandleFunc("/v1/projects/", rt.projectSubtree)
	mux.HandleFunc("/v1/transcriptions", rt.uploadTranscription)
	mux.HandleFunc("/v1/transcriptions/", rt.transcriptionByID)
	mux.HandleFunc("/v1/reports", rt.generateReport)
	mux.HandleFunc("/v1/reports/export", rt.exportReport)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = accessLogMiddleware(rt.logger, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

package ports

import (
	"context"

	"deliverypulse/internal/core/domain"
)

// TranscriptionIngestor is the inbound contract for upload
// orchestration.
type TranscriptionIngestor interface {
	Upload(ctx context.Context, projectID, filename string, content []byte, uploadedBy string) (*domain.Transcription, error)
}

// TranscriptionProcessor is the inbound contract for the asynchronous
// extraction leg of the pipeline.
type TranscriptionProcessor interface {
	ProcessByID(ctx context.Context, transcriptionID string) error
}

// ReportGenerator produces project health reports from persisted
// status history.
type ReportGenerator interface {
	Generate(ctx context.Context, filters domain.ReportFilters, requestedBy string) (*domain.ProjectHealthReport, error)
}

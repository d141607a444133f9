package ports

import (
	"context"
	"time"

	"deliverypulse/internal/core/domain"
)

// ClientRepository persists consulting clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository persists projects and serves the joined
// project+client read shape used by the pipeline and reports.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetWithClient(ctx context.Context, id string) (*domain.ProjectWithClient, error)
	List(ctx context.Context, clientIDs []string) ([]domain.ProjectWithClient, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// TranscriptionRepository persists uploaded transcription rows. A row
// is mutated exactly once, by SetRawText, when the pipeline obtains the
// extracted text.
type TranscriptionRepository interface {
	Create(ctx context.Context, tr *domain.Transcription) error
	GetByID(ctx context.Context, id string) (*domain.Transcription, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Transcription, error)
	SetRawText(ctx context.Context, id, rawText string, processedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// StatusRepository persists immutable project status rows.
type StatusRepository interface {
	Create(ctx context.Context, status *domain.ProjectStatus) error
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectStatus, error)
	// LatestInRange returns the most recent status row for a project
	// whose timestamp falls inside the optional [from, to] window, or
	// nil when no row matches.
	LatestInRange(ctx context.Context, projectID string, from, to *time.Time) (*domain.ProjectStatus, error)
}

// ObjectStorage stores uploaded source files under opaque paths.
type ObjectStorage interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, data []byte, suggestedName, projectID string) (string, error)
	Delete(ctx context.Context, path string) error
}

// MessageQueue hands audio/video transcriptions off to the worker.
type MessageQueue interface {
	PublishTranscriptionUploaded(ctx context.Context, transcriptionID string) error
	SubscribeTranscriptionUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// SpeechToText transcribes an audio or video payload. One attempt per
// call; callers never retry.
type SpeechToText interface {
	Transcribe(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// StatusExtractor asks the language model for the five status fields.
// The returned mapping is parsed but untrusted; it must pass through
// domain.NormalizeExtracted before persistence.
type StatusExtractor interface {
	ExtractStatus(ctx context.Context, text, projectName, clientName string) (map[string]any, error)
}

// ContentExtractor turns a stored file into raw text.
type ContentExtractor interface {
	Transcribe(ctx context.Context, path, filename string) (string, error)
	ReadText(ctx context.Context, path, filename string) (string, error)
}

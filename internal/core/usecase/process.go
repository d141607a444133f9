package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"deliverypulse/internal/core/domain"
	"deliverypulse/internal/core/ports"
)

// fallbackClientName stands in when a project row arrives without its
// client loaded. The schema's non-null client_id makes this a
// should-not-happen path.
const fallbackClientName = "Unknown"

// ProcessTranscriptionUseCase is the back half of the pipeline:
// extract raw text, persist it, derive status fields through the
// language model and insert one immutable status row. Every
// external-service failure degrades to "no result, log, stop" with a
// single attempt; only persistence errors propagate to the caller.
type ProcessTranscriptionUseCase struct {
	projects    ports.ProjectRepository
	transcripts ports.TranscriptionRepository
	statuses    ports.StatusRepository
	extractor   ports.ContentExtractor
	llm         ports.StatusExtractor
	logger      *slog.Logger
}

func NewProcessTranscriptionUseCase(
	projects ports.ProjectRepository,
	transcripts ports.TranscriptionRepository,
	statuses ports.StatusRepository,
	extractor ports.ContentExtractor,
	llm ports.StatusExtractor,
	logger *slog.Logger,
) *ProcessTranscriptionUseCase {
	return &ProcessTranscriptionUseCase{
		projects:    projects,
		transcripts: transcripts,
		statuses:    statuses,
		extractor:   extractor,
		llm:         llm,
		logger:      logger,
	}
}

func (uc *ProcessTranscriptionUseCase) ProcessByID(ctx context.Context, transcriptionID string) error {
	tr, err := uc.transcripts.GetByID(ctx, transcriptionID)
	if err != nil {
		return fmt.Errorf("fetch transcription: %w", err)
	}
	if tr.Processed() {
		uc.logger.Info("transcription already processed", "transcription_id", tr.ID)
		return nil
	}

	rawText, ok := uc.extractText(ctx, tr)
	if !ok {
		return nil
	}

	processedAt := time.Now().UTC()
	if err := uc.transcripts.SetRawText(ctx, tr.ID, rawText, processedAt); err != nil {
		return fmt.Errorf("persist raw text: %w", err)
	}

	fields, ok := uc.deriveStatus(ctx, tr, rawText)
	if !ok {
		return nil
	}

	// The status is attributed to the original uploader, not the
	// pipeline identity.
	status := &domain.ProjectStatus{
		ID:           uuid.NewString(),
		ProjectID:    tr.ProjectID,
		StatusFields: fields,
		UpdatedBy:    tr.CreatedBy,
	}
	if err := uc.statuses.Create(ctx, status); err != nil {
		return fmt.Errorf("create project status: %w", err)
	}

	uc.logger.Info("status derived from transcription",
		"transcription_id", tr.ID, "project_id", tr.ProjectID)
	return nil
}

func (uc *ProcessTranscriptionUseCase) extractText(ctx context.Context, tr *domain.Transcription) (string, bool) {
	var (
		text string
		err  error
	)
	switch tr.FileKind {
	case domain.KindAudio, domain.KindVideo:
		text, err = uc.extractor.Transcribe(ctx, tr.FilePath, tr.FileName)
	case domain.KindText:
		text, err = uc.extractor.ReadText(ctx, tr.FilePath, tr.FileName)
	default:
		uc.logger.Info("no extraction for unknown file kind", "transcription_id", tr.ID)
		return "", false
	}
	if err != nil {
		uc.logger.Error("text extraction failed",
			"transcription_id", tr.ID, "file_kind", tr.FileKind, "error", err)
		return "", false
	}
	if text == "" {
		uc.logger.Warn("extraction produced no text", "transcription_id", tr.ID)
		return "", false
	}
	return text, true
}

func (uc *ProcessTranscriptionUseCase) deriveStatus(ctx context.Context, tr *domain.Transcription, rawText string) (domain.StatusFields, bool) {
	project, err := uc.projects.GetWithClient(ctx, tr.ProjectID)
	if err != nil {
		uc.logger.Error("project lookup failed", "transcription_id", tr.ID, "error", err)
		return domain.StatusFields{}, false
	}

	clientName := project.ClientName
	if clientName == "" {
		clientName = fallbackClientName
	}

	raw, err := uc.llm.ExtractStatus(ctx, rawText, project.Name, clientName)
	if err != nil {
		uc.logger.Error("status extraction failed",
			"transcription_id", tr.ID, "project_id", tr.ProjectID, "error", err)
		return domain.StatusFields{}, false
	}

	return domain.NormalizeExtracted(raw), true
}

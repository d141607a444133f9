package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"deliverypulse/internal/core/domain"
	"deliverypulse/internal/core/ports"
)

// UploadTranscriptionUseCase is the front half of the pipeline: persist
// the uploaded file, create the transcription row, then either extract
// synchronously (text) or hand off to the worker queue (audio/video).
type UploadTranscriptionUseCase struct {
	projects      ports.ProjectRepository
	transcripts   ports.TranscriptionRepository
	storage       ports.ObjectStorage
	queue         ports.MessageQueue
	processor     ports.TranscriptionProcessor
	maxUploadSize int64
	logger        *slog.Logger
}

func NewUploadTranscriptionUseCase(
	projects ports.ProjectRepository,
	transcripts ports.TranscriptionRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	processor ports.TranscriptionProcessor,
	maxUploadSize int64,
	logger *slog.Logger,
) *UploadTranscriptionUseCase {
	return &UploadTranscriptionUseCase{
		projects:      projects,
		transcripts:   transcripts,
		storage:       storage,
		queue:         queue,
		processor:     processor,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (uc *UploadTranscriptionUseCase) Upload(
	ctx context.Context,
	projectID, filename string,
	content []byte,
	uploadedBy string,
) (*domain.Transcription, error) {
	if filename == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload transcription", errors.New("filename is required"))
	}
	if uc.maxUploadSize > 0 && int64(len(content)) > uc.maxUploadSize {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload transcription",
			fmt.Errorf("file size %d exceeds limit %d", len(content), uc.maxUploadSize))
	}

	if _, err := uc.projects.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("verify project: %w", err)
	}

	path, err := uc.storage.Write(ctx, content, filename, projectID)
	if err != nil {
		return nil, fmt.Errorf("store uploaded file: %w", err)
	}

	tr := &domain.Transcription{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		FilePath:  path,
		FileName:  filename,
		FileKind:  domain.KindForFilename(filename),
		FileSize:  int64(len(content)),
		CreatedBy: uploadedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.transcripts.Create(ctx, tr); err != nil {
		return nil, fmt.Errorf("create transcription: %w", err)
	}

	switch tr.FileKind {
	case domain.KindText:
		// Text extraction is cheap and deterministic, so the caller is
		// shown the final state in the same request. Pipeline failures
		// still degrade to an unprocessed row, never an upload error.
		if err := uc.processor.ProcessByID(ctx, tr.ID); err != nil {
			uc.logger.Error("synchronous processing failed",
				"transcription_id", tr.ID, "error", err)
		}
		refreshed, err := uc.transcripts.GetByID(ctx, tr.ID)
		if err == nil {
			return refreshed, nil
		}
		uc.logger.Warn("reload after synchronous processing failed",
			"transcription_id", tr.ID, "error", err)
	case domain.KindAudio, domain.KindVideo:
		if err := uc.queue.PublishTranscriptionUploaded(ctx, tr.ID); err != nil {
			return nil, fmt.Errorf("publish transcription event: %w", err)
		}
	default:
		// Unknown kinds stay unprocessed permanently; that is a valid
		// terminal state, not an error.
		uc.logger.Info("transcription kind unknown, skipping extraction",
			"transcription_id", tr.ID, "file_name", filename)
	}

	return tr, nil
}

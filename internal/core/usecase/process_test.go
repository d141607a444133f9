package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"deliverypulse/internal/core/domain"
)

func seedProject(repo *projectRepoFake, id, name, clientID, clientName string) {
	if repo.projects == nil {
		repo.projects = make(map[string]*domain.ProjectWithClient)
	}
	repo.projects[id] = &domain.ProjectWithClient{
		Project: domain.Project{
			ID:       id,
			Name:     name,
			ClientID: clientID,
		},
		ClientName: clientName,
	}
}

func seedTranscription(repo *transcriptionRepoFake, id, projectID string, kind domain.FileKind, createdBy string) {
	repo.rows[id] = &domain.Transcription{
		ID:        id,
		ProjectID: projectID,
		FilePath:  projectID + "/" + id + ".bin",
		FileName:  "upload." + string(kind),
		FileKind:  kind,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
}

func TestProcessAudioCreatesStatusAttributedToUploader(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	seedTranscription(transcripts, "t-1", "p-1", domain.KindAudio, "user-7")
	statuses := &statusRepoFake{}
	extractor := &contentExtractorFake{transcribeText: "we are on budget but behind schedule"}
	llm := &llmFake{raw: map[string]any{
		"is_on_scope":  true,
		"is_on_time":   false,
		"is_on_budget": "yes",
		"risks":        "integration partner is late",
	}}

	uc := NewProcessTranscriptionUseCase(projects, transcripts, statuses, extractor, llm, testLogger())
	if err := uc.ProcessByID(context.Background(), "t-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	if extractor.transcribed != 1 || extractor.read != 0 {
		t.Fatalf("expected speech path, got transcribed=%d read=%d", extractor.transcribed, extractor.read)
	}
	if llm.projectName != "Apollo" || llm.clientName != "Acme" {
		t.Fatalf("llm context = %q/%q", llm.projectName, llm.clientName)
	}

	tr, _ := transcripts.GetByID(context.Background(), "t-1")
	if tr.RawText == nil || *tr.RawText != "we are on budget but behind schedule" {
		t.Fatalf("raw text not persisted: %v", tr.RawText)
	}
	if tr.ProcessedAt == nil {
		t.Fatalf("processed_at not persisted")
	}

	if len(statuses.created) != 1 {
		t.Fatalf("expected 1 status row, got %d", len(statuses.created))
	}
	status := statuses.created[0]
	if status.UpdatedBy != "user-7" {
		t.Fatalf("status attributed to %q, want uploader user-7", status.UpdatedBy)
	}
	if status.IsOnScope == nil || !*status.IsOnScope {
		t.Fatalf("is_on_scope = %v", status.IsOnScope)
	}
	if status.IsOnBudget == nil || !*status.IsOnBudget {
		t.Fatalf("is_on_budget string coercion failed: %v", status.IsOnBudget)
	}
	if status.IsOnTime == nil || *status.IsOnTime {
		t.Fatalf("is_on_time = %v", status.IsOnTime)
	}
}

func TestProcessTextUsesReadPath(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	seedTranscription(transcripts, "t-1", "p-1", domain.KindText, "user-1")
	statuses := &statusRepoFake{}
	extractor := &contentExtractorFake{readText: "meeting notes"}
	llm := &llmFake{raw: map[string]any{"is_on_scope": true}}

	uc := NewProcessTranscriptionUseCase(projects, transcripts, statuses, extractor, llm, testLogger())
	if err := uc.ProcessByID(context.Background(), "t-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if extractor.read != 1 || extractor.transcribed != 0 {
		t.Fatalf("expected read path, got transcribed=%d read=%d", extractor.transcribed, extractor.read)
	}
	if len(statuses.created) != 1 {
		t.Fatalf("expected 1 status row, got %d", len(statuses.created))
	}
}

func TestProcessExtractionFailureLeavesRowUntouched(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	seedTranscription(transcripts, "t-1", "p-1", domain.KindAudio, "user-1")
	statuses := &statusRepoFake{}
	extractor := &contentExtractorFake{transcribeErr: errors.New("speech service unavailable")}
	llm := &llmFake{}

	uc := NewProcessTranscriptionUseCase(projects, transcripts, statuses, extractor, llm, testLogger())
	if err := uc.ProcessByID(context.Background(), "t-1"); err != nil {
		t.Fatalf("external failures must be absorbed, got %v", err)
	}

	tr, _ := transcripts.GetByID(context.Background(), "t-1")
	if tr.RawText != nil || tr.ProcessedAt != nil {
		t.Fatalf("row must stay unprocessed after extraction failure")
	}
	if llm.calls != 0 {
		t.Fatalf("llm must not be called without text")
	}
	if len(statuses.created) != 0 {
		t.Fatalf("no status row may exist after failure")
	}
}

func TestProcessLLMFailureKeepsRawTextButNoStatus(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	seedTranscription(transcripts, "t-1", "p-1", domain.KindText, "user-1")
	statuses := &statusRepoFake{}
	extractor := &contentExtractorFake{readText: "notes"}
	llm := &llmFake{err: errors.New("malformed completion")}

	uc := NewProcessTranscriptionUseCase(projects, transcripts, statuses, extractor, llm, testLogger())
	if err := uc.ProcessByID(context.Background(), "t-1"); err != nil {
		t.Fatalf("llm failure must be absorbed, got %v", err)
	}

	tr, _ := transcripts.GetByID(context.Background(), "t-1")
	if tr.RawText == nil {
		t.Fatalf("raw text must persist even when status derivation fails")
	}
	if len(statuses.created) != 0 {
		t.Fatalf("status insert must be all-or-nothing")
	}
}

func TestProcessUnknownKindIsTerminal(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	seedTranscription(transcripts, "t-1", "p-1", domain.KindUnknown, "user-1")
	statuses := &statusRepoFake{}
	extractor := &contentExtractorFake{}
	llm := &llmFake{}

	uc := NewProcessTranscriptionUseCase(projects, transcripts, statuses, extractor, llm, testLogger())
	if err := uc.ProcessByID(context.Background(), "t-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if extractor.transcribed != 0 || extractor.read != 0 || llm.calls != 0 {
		t.Fatalf("unknown kind must not trigger any extraction")
	}
}

func TestProcessPersistenceErrorPropagates(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	seedTranscription(transcripts, "t-1", "p-1", domain.KindText, "user-1")
	transcripts.setErr = errors.New("connection reset")
	statuses := &statusRepoFake{}
	extractor := &contentExtractorFake{readText: "notes"}

	uc := NewProcessTranscriptionUseCase(projects, transcripts, statuses, extractor, &llmFake{}, testLogger())
	if err := uc.ProcessByID(context.Background(), "t-1"); err == nil {
		t.Fatalf("persistence errors must propagate")
	}
}

func TestProcessFallsBackToPlaceholderClientName(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "")
	transcripts := newTranscriptionRepoFake()
	seedTranscription(transcripts, "t-1", "p-1", domain.KindText, "user-1")
	extractor := &contentExtractorFake{readText: "notes"}
	llm := &llmFake{raw: map[string]any{}}

	uc := NewProcessTranscriptionUseCase(projects, transcripts, &statusRepoFake{}, extractor, llm, testLogger())
	if err := uc.ProcessByID(context.Background(), "t-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if llm.clientName != "Unknown" {
		t.Fatalf("client name = %q, want placeholder", llm.clientName)
	}
}

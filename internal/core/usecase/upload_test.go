package usecase

import (
	"bytes"
	"context"
	"testing"

	"deliverypulse/internal/core/domain"
)

func newUploadFixture() (*UploadTranscriptionUseCase, *transcriptionRepoFake, *queueFake, *processorFake) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	queue := &queueFake{}
	processor := &processorFake{}
	uc := NewUploadTranscriptionUseCase(projects, transcripts, newStorageFake(), queue, processor, 1<<20, testLogger())
	return uc, transcripts, queue, processor
}

func TestUploadTextProcessesSynchronously(t *testing.T) {
	uc, transcripts, queue, processor := newUploadFixture()

	tr, err := uc.Upload(context.Background(), "p-1", "notes.txt", []byte("weekly notes"), "user-1")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if tr.FileKind != domain.KindText {
		t.Fatalf("file kind = %q", tr.FileKind)
	}
	if len(processor.processed) != 1 || processor.processed[0] != tr.ID {
		t.Fatalf("text upload must process in-request, got %v", processor.processed)
	}
	if len(queue.published) != 0 {
		t.Fatalf("text upload must not publish to the queue")
	}
	if _, ok := transcripts.rows[tr.ID]; !ok {
		t.Fatalf("transcription row not created")
	}
}

func TestUploadAudioDefersToQueue(t *testing.T) {
	uc, _, queue, processor := newUploadFixture()

	tr, err := uc.Upload(context.Background(), "p-1", "standup.webm", bytes.Repeat([]byte{1}, 64), "user-1")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	// .webm resolves to audio by table order.
	if tr.FileKind != domain.KindAudio {
		t.Fatalf("file kind = %q, want audio", tr.FileKind)
	}
	if tr.RawText != nil {
		t.Fatalf("caller must see raw text still unset")
	}
	if len(queue.published) != 1 || queue.published[0] != tr.ID {
		t.Fatalf("audio upload must publish, got %v", queue.published)
	}
	if len(processor.processed) != 0 {
		t.Fatalf("audio upload must not process in-request")
	}
}

func TestUploadUnknownKindIsAcceptedAndTerminal(t *testing.T) {
	uc, _, queue, processor := newUploadFixture()

	tr, err := uc.Upload(context.Background(), "p-1", "archive.zip", []byte{1, 2, 3}, "user-1")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if tr.FileKind != domain.KindUnknown {
		t.Fatalf("file kind = %q", tr.FileKind)
	}
	if len(queue.published) != 0 || len(processor.processed) != 0 {
		t.Fatalf("unknown kind must not trigger any extraction")
	}
}

func TestUploadRejectsUnknownProject(t *testing.T) {
	uc, _, _, _ := newUploadFixture()

	_, err := uc.Upload(context.Background(), "missing", "notes.txt", []byte("x"), "user-1")
	if err == nil || !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	uc := NewUploadTranscriptionUseCase(projects, newTranscriptionRepoFake(), newStorageFake(), &queueFake{}, &processorFake{}, 8, testLogger())

	_, err := uc.Upload(context.Background(), "p-1", "notes.txt", bytes.Repeat([]byte{1}, 9), "user-1")
	if err == nil || !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
}

func TestUploadSurvivesSynchronousProcessingFailure(t *testing.T) {
	projects := &projectRepoFake{}
	seedProject(projects, "p-1", "Apollo", "c-1", "Acme")
	transcripts := newTranscriptionRepoFake()
	processor := &processorFake{err: context.DeadlineExceeded}
	uc := NewUploadTranscriptionUseCase(projects, transcripts, newStorageFake(), &queueFake{}, processor, 1<<20, testLogger())

	tr, err := uc.Upload(context.Background(), "p-1", "notes.txt", []byte("x"), "user-1")
	if err != nil {
		t.Fatalf("pipeline failure must not break the upload, got %v", err)
	}
	if tr == nil {
		t.Fatalf("expected transcription despite processing failure")
	}
}

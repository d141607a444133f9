package usecase

import (
	"context"
	"log/slog"
	"time"

	"deliverypulse/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

type projectRepoFake struct {
	projects map[string]*domain.ProjectWithClient
	listErr  error
}

func (f *projectRepoFake) Create(context.Context, *domain.Project) error { return nil }
func (f *projectRepoFake) Update(context.Context, *domain.Project) error { return nil }
func (f *projectRepoFake) Delete(context.Context, string) error          { return nil }

func (f *projectRepoFake) GetByID(_ context.Context, id string) (*domain.Project, error) {
	pw, ok := f.projects[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get project", domain.ErrNotFound)
	}
	project := pw.Project
	return &project, nil
}

func (f *projectRepoFake) GetWithClient(_ context.Context, id string) (*domain.ProjectWithClient, error) {
	pw, ok := f.projects[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get project", domain.ErrNotFound)
	}
	out := *pw
	return &out, nil
}

func (f *projectRepoFake) List(_ context.Context, clientIDs []string) ([]domain.ProjectWithClient, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	allowed := make(map[string]struct{}, len(clientIDs))
	for _, id := range clientIDs {
		allowed[id] = struct{}{}
	}
	out := make([]domain.ProjectWithClient, 0, len(f.projects))
	for _, pw := range f.projects {
		if len(allowed) > 0 {
			if _, ok := allowed[pw.ClientID]; !ok {
				continue
			}
		}
		out = append(out, *pw)
	}
	return out, nil
}

type clientRepoFake struct {
	clients []domain.Client
}

func (f *clientRepoFake) Create(context.Context, *domain.Client) error { return nil }
func (f *clientRepoFake) Update(context.Context, *domain.Client) error { return nil }
func (f *clientRepoFake) Delete(context.Context, string) error         { return nil }

func (f *clientRepoFake) GetByID(_ context.Context, id string) (*domain.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get client", domain.ErrNotFound)
}

func (f *clientRepoFake) List(context.Context) ([]domain.Client, error) {
	return f.clients, nil
}

type transcriptionRepoFake struct {
	rows      map[string]*domain.Transcription
	createErr error
	setErr    error
}

func newTranscriptionRepoFake() *transcriptionRepoFake {
	return &transcriptionRepoFake{rows: make(map[string]*domain.Transcription)}
}

func (f *transcriptionRepoFake) Create(_ context.Context, tr *domain.Transcription) error {
	if f.createErr != nil {
		return f.createErr
	}
	copyTr := *tr
	f.rows[tr.ID] = &copyTr
	return nil
}

func (f *transcriptionRepoFake) GetByID(_ context.Context, id string) (*domain.Transcription, error) {
	tr, ok := f.rows[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get transcription", domain.ErrNotFound)
	}
	copyTr := *tr
	return &copyTr, nil
}

func (f *transcriptionRepoFake) ListByProject(_ context.Context, projectID string) ([]domain.Transcription, error) {
	out := make([]domain.Transcription, 0)
	for _, tr := range f.rows {
		if projectID == "" || tr.ProjectID == projectID {
			out = append(out, *tr)
		}
	}
	return out, nil
}

func (f *transcriptionRepoFake) SetRawText(_ context.Context, id, rawText string, processedAt time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	tr, ok := f.rows[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "set raw text", domain.ErrNotFound)
	}
	tr.RawText = &rawText
	tr.ProcessedAt = &processedAt
	return nil
}

func (f *transcriptionRepoFake) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

type statusRepoFake struct {
	created   []domain.ProjectStatus
	latest    map[string]*domain.ProjectStatus
	createErr error
}

func (f *statusRepoFake) Create(_ context.Context, status *domain.ProjectStatus) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *status)
	return nil
}

func (f *statusRepoFake) ListByProject(_ context.Context, projectID string) ([]domain.ProjectStatus, error) {
	out := make([]domain.ProjectStatus, 0)
	for _, s := range f.created {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *statusRepoFake) LatestInRange(_ context.Context, projectID string, from, to *time.Time) (*domain.ProjectStatus, error) {
	status, ok := f.latest[projectID]
	if !ok || status == nil {
		return nil, nil
	}
	if from != nil && status.UpdatedAt.Before(*from) {
		return nil, nil
	}
	if to != nil && status.UpdatedAt.After(*to) {
		return nil, nil
	}
	copyStatus := *status
	return &copyStatus, nil
}

type storageFake struct {
	files    map[string][]byte
	writeErr error
}

func newStorageFake() *storageFake {
	return &storageFake{files: make(map[string][]byte)}
}

func (f *storageFake) Read(_ context.Context, path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "read file", domain.ErrNotFound)
	}
	return data, nil
}

func (f *storageFake) Write(_ context.Context, data []byte, suggestedName, projectID string) (string, error) {
	if f.writeErr != nil {
		return "", f.writeErr
	}
	path := projectID + "/" + suggestedName
	f.files[path] = data
	return path, nil
}

func (f *storageFake) Delete(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

type queueFake struct {
	published  []string
	publishErr error
}

func (f *queueFake) PublishTranscriptionUploaded(_ context.Context, id string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, id)
	return nil
}

func (f *queueFake) SubscribeTranscriptionUploaded(context.Context, func(context.Context, string) error) error {
	return nil
}

type contentExtractorFake struct {
	transcribeText string
	transcribeErr  error
	readText       string
	readErr        error
	transcribed    int
	read           int
}

func (f *contentExtractorFake) Transcribe(context.Context, string, string) (string, error) {
	f.transcribed++
	if f.transcribeErr != nil {
		return "", f.transcribeErr
	}
	return f.transcribeText, nil
}

func (f *contentExtractorFake) ReadText(context.Context, string, string) (string, error) {
	f.read++
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.readText, nil
}

type llmFake struct {
	raw         map[string]any
	err         error
	projectName string
	clientName  string
	calls       int
}

func (f *llmFake) ExtractStatus(_ context.Context, _, projectName, clientName string) (map[string]any, error) {
	f.calls++
	f.projectName = projectName
	f.clientName = clientName
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

type processorFake struct {
	processed []string
	err       error
}

func (f *processorFake) ProcessByID(_ context.Context, id string) error {
	f.processed = append(f.processed, id)
	return f.err
}

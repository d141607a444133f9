package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deliverypulse/internal/config"
	"deliverypulse/internal/core/ports"
	"deliverypulse/internal/core/usecase"
	"deliverypulse/internal/infrastructure/extractor/transcript"
	"deliverypulse/internal/infrastructure/llm/openai"
	"deliverypulse/internal/infrastructure/queue/nats"
	"deliverypulse/internal/infrastructure/repository/postgres"
	"deliverypulse/internal/infrastructure/resilience"
	"deliverypulse/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue          ports.MessageQueue
	Clients        ports.ClientRepository
	Projects       ports.ProjectRepository
	Transcriptions ports.TranscriptionRepository
	Statuses       ports.StatusRepository
	Storage        ports.ObjectStorage

	UploadUC  ports.TranscriptionIngestor
	ProcessUC ports.TranscriptionProcessor
	ReportUC  ports.ReportGenerator

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	clients := postgres.NewClientRepository(db)
	projects := postgres.NewProjectRepository(db)
	transcriptions := postgres.NewTranscriptionRepository(db)
	statuses := postgres.NewStatusRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig(), logger),
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	aiClient := openai.New(openai.Config{
		BaseURL:         cfg.OpenAIBaseURL,
		APIKey:          cfg.OpenAIAPIKey,
		ChatModel:       cfg.OpenAIChatModel,
		TranscribeModel: cfg.OpenAITranscribeModel,
		RequestTimeout:  time.Duration(cfg.OpenAITimeoutSeconds) * time.Second,
		RequestsPerMin:  cfg.OpenAIRequestsPerMin,
	})
	extractor := transcript.NewExtractor(storage, aiClient)

	processUC := usecase.NewProcessTranscriptionUseCase(projects, transcriptions, statuses, extractor, aiClient, logger)
	uploadUC := usecase.NewUploadTranscriptionUseCase(projects, transcriptions, storage, queue, processUC, cfg.MaxUploadSizeBytes(), logger)
	reportUC := usecase.NewReportUseCase(projects, clients, statuses, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:          queue,
		Clients:        clients,
		Projects:       projects,
		Transcriptions: transcriptions,
		Statuses:       statuses,
		Storage:        storage,

		UploadUC:  uploadUC,
		ProcessUC: processUC,
		ReportUC:  reportUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

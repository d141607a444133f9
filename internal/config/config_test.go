package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NATSSubject != "transcriptions.uploaded" {
		t.Fatalf("default subject = %q", cfg.NATSSubject)
	}
	if cfg.OpenAIChatModel != "gpt-4o-mini" {
		t.Fatalf("default chat model = %q", cfg.OpenAIChatModel)
	}
	if cfg.MaxUploadSizeBytes() != 100<<20 {
		t.Fatalf("default upload limit = %d", cfg.MaxUploadSizeBytes())
	}
}

func TestLoadFileLayerThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("api_port: \"9999\"\nopenai_chat_model: gpt-4o\nmax_upload_size_mb: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "8081")
	t.Setenv("OPENAI_CHAT_MODEL", "")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "8081" {
		t.Fatalf("env must win over file, got %q", cfg.APIPort)
	}
	if cfg.OpenAIChatModel != "gpt-4o" {
		t.Fatalf("file layer not applied, got %q", cfg.OpenAIChatModel)
	}
	if cfg.MaxUploadSizeMB != 10 {
		t.Fatalf("file layer upload limit = %d", cfg.MaxUploadSizeMB)
	}
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadIgnoresMalformedIntegers(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OPENAI_REQUESTS_PER_MIN", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAIRequestsPerMin != 60 {
		t.Fatalf("malformed int must keep default, got %d", cfg.OpenAIRequestsPerMin)
	}
}

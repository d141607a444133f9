package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"deliverypulse/internal/core/domain"
)

// Storage keeps uploaded files on the local filesystem under
// <base>/<project-id>/<uuid><ext>. The returned path is relative to the
// base directory and opaque to callers.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, filepath.Clean(path)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.WrapError(domain.ErrNotFound, "read file", err)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (s *Storage) Write(_ context.Context, data []byte, suggestedName, projectID string) (string, error) {
	dir := filepath.Join(s.basePath, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create project dir: %w", err)
	}

	name := uuid.NewString() + sanitizeExt(suggestedName)
	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return filepath.Join(projectID, name), nil
}

// Delete tolerates already-absent files.
func (s *Storage) Delete(_ context.Context, path string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.Clean(path)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

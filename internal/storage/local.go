package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes photos under a directory on disk and serves them
// through the HTTP server. For development and tests; production runs
// on S3Storage.
type LocalStorage struct {
	baseURL string
	dir     string
}

func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{baseURL: cfg.BaseURL, dir: cfg.UploadDir}, nil
}

func (l *LocalStorage) Upload(ctx context.Context, key, contentType string, data io.Reader, size int64) (string, error) {
	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create dirs for %q: %w", key, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("write %q: %w", key, err)
	}
	return l.baseURL + "/files/" + key, nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Dir returns the root the HTTP server should expose at /files/.
func (l *LocalStorage) Dir() string {
	return l.dir
}

package storage

import (
	"context"
	"io"
)

// Storage is the blob backend for contact photos. Upload returns the
// URL the stored object is reachable at.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, data io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// Config selects and parameterizes a storage backend.
type Config struct {
	Type      string `yaml:"type"` // "s3" or "local"
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
	BaseURL   string `yaml:"base_url"`   // local: server URL photos are served from
	UploadDir string `yaml:"upload_dir"` // local: directory files are written to
}

package blobstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the blob-store capability listing photos are uploaded
// through. Implementations may fail transiently; callers treat any
// failure as an upstream fault.
type Store interface {
	// Upload persists data under the given folder and returns the public
	// URL at which the blob is served.
	Upload(data []byte, filename, folder string) (string, error)
}

// FilesystemStore stores blobs on local disk and serves them from a
// base URL. Blob names are generated, so uploads never collide; the
// original filename only contributes its extension.
type FilesystemStore struct {
	baseDir string
	baseURL string
}

// Config holds filesystem blob store settings.
type Config struct {
	BaseDir string
	BaseURL string
}

// NewFilesystemStore creates a FilesystemStore rooted at cfg.BaseDir.
func NewFilesystemStore(cfg Config) (*FilesystemStore, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob base directory %s: %w", cfg.BaseDir, err)
	}
	return &FilesystemStore{
		baseDir: cfg.BaseDir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Upload writes data to <baseDir>/<folder>/<uuid><ext> and returns
// <baseURL>/<folder>/<uuid><ext>.
func (s *FilesystemStore) Upload(data []byte, filename, folder string) (string, error) {
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob folder %s: %w", folder, err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", path, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, folder, name), nil
}

package storage

import (
	"io"
)

// Storage abstracts blob storage for avatar files.
type Storage interface {
	// Save writes content under the relative path and returns the stored path.
	Save(path string, content io.Reader) (string, error)
	// Delete removes the blob at the relative path. Missing blobs are not an error.
	Delete(path string) error
	// URL returns the public URL for a stored path.
	URL(path string) string
}

// Config selects and configures a backend.
type Config struct {
	BasePath string
	BaseURL  string
}

// NewStorage builds the storage backend. Only the local filesystem backend
// exists today; the interface leaves room for an object-store backend.
func NewStorage(cfg Config) (Storage, error) {
	return newLocalStorage(cfg.BasePath, cfg.BaseURL)
}

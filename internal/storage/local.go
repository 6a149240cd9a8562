package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localStorage struct {
	basePath string
	baseURL  string
}

func newLocalStorage(basePath, baseURL string) (*localStorage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *localStorage) fullPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(s.basePath, clean)
	// Clean above pins the path under the storage root.
	if !strings.HasPrefix(full, filepath.Clean(s.basePath)) {
		return "", fmt.Errorf("invalid storage path: %s", path)
	}
	return full, nil
}

func (s *localStorage) Save(path string, content io.Reader) (string, error) {
	full, err := s.fullPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(full)
		return "", err
	}
	return path, nil
}

func (s *localStorage) Delete(path string) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *localStorage) URL(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path, "/")
}

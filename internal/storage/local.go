package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorageClient stores artifacts below a directory on disk
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates the base directory if needed
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if baseDir == "" {
		baseDir = "out"
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalStorageClient{baseDir: baseDir}, nil
}

// BaseDir returns the root directory
func (l *LocalStorageClient) BaseDir() string { return l.baseDir }

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// cleanPath normalizes p to a relative slash path that cannot climb above the root
func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// resolve maps a slash path to a file below baseDir
func (l *LocalStorageClient) resolve(p string) (string, error) {
	rel := cleanPath(p)
	if rel == "" {
		return "", fmt.Errorf("invalid artifact path %q", p)
	}
	return filepath.Join(l.baseDir, filepath.FromSlash(rel)), nil
}

// StoreFile writes data to folder/filename
func (l *LocalStorageClient) StoreFile(ctx context.Context, folder, filename string, data []byte) (string, error) {
	objectPath := cleanPath(path.Join(folder, filename))
	filePath, err := l.resolve(objectPath)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return objectPath, nil
}

// GetFile reads an artifact
func (l *LocalStorageClient) GetFile(ctx context.Context, p string) ([]byte, error) {
	filePath, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// FileExists checks if an artifact exists
func (l *LocalStorageClient) FileExists(ctx context.Context, p string) (bool, error) {
	filePath, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}
	return true, nil
}

// ListRenders lists stored renders, newest first
func (l *LocalStorageClient) ListRenders(ctx context.Context, limit int) ([]string, error) {
	root := filepath.Join(l.baseDir, RendersPrefix)

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && d.Name() == "index.html" {
			rel, err := filepath.Rel(l.baseDir, p)
			if err != nil {
				return err
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk renders directory: %w", err)
	}
	return newestFirst(paths, limit), nil
}

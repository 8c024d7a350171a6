package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// RendersPrefix is the top-level folder holding all renders
const RendersPrefix = "renders"

// GenerateRenderFolderPath generates a consistent folder path for one render
// Format: renders/YYYY/MM/DD/ChartRender-YYYY-MM-DD-HH-MM-SS
func GenerateRenderFolderPath(timestamp time.Time) string {
	ts := timestamp.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/ChartRender-%04d-%02d-%02d-%02d-%02d-%02d",
		RendersPrefix,
		ts.Year(), ts.Month(), ts.Day(),
		ts.Year(), ts.Month(), ts.Day(),
		ts.Hour(), ts.Minute(), ts.Second())
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css"
	case ".md":
		return "text/markdown"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// newestFirst sorts render index paths so the latest timestamp comes first
// and applies limit when positive
func newestFirst(paths []string, limit int) []string {
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}

// LatestRender returns the index.html path of the most recent render
func LatestRender(ctx context.Context, store ArtifactStore) (string, error) {
	renders, err := store.ListRenders(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(renders) == 0 {
		return "", fmt.Errorf("no renders found: %w", ErrNotFound)
	}
	return renders[0], nil
}

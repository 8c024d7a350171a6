package storage

import (
	"context"
	"fmt"
	"strings"

	"xjewelchart/internal/config"
)

// DeploymentMode selects the storage backend
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// NewArtifactStore creates a store for the configured STORAGE_MODE
func NewArtifactStore(ctx context.Context, cfg *config.Config) (ArtifactStore, error) {
	switch DeploymentMode(strings.ToLower(cfg.StorageMode)) {
	case DeploymentLocal, "":
		localClient, err := NewLocalStorageClient(cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", cfg.StorageMode)
	}
}

package reports

import (
	"context"
	"fmt"
	"sort"

	"xjewelchart/internal/logger"
	"xjewelchart/internal/storage"
)

// StorageOrchestrator stores generated files in an artifact store
type StorageOrchestrator struct {
	store storage.ArtifactStore
	log   *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(store storage.ArtifactStore) *StorageOrchestrator {
	return &StorageOrchestrator{
		store: store,
		log:   logger.Component("reports"),
	}
}

// StoreAllFiles stores every file of a render and returns the stored index
// path. index.html goes last so a listed render is always complete.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) (string, error) {
	names := make([]string, 0, len(files.Files))
	for name := range files.Files {
		if name != FileIndex {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := files.Files[FileIndex]; ok {
		names = append(names, FileIndex)
	}

	var indexPath string
	for _, name := range names {
		stored, err := so.store.StoreFile(ctx, files.FolderPath, name, files.Files[name])
		if err != nil {
			return "", fmt.Errorf("failed to store %s: %w", name, err)
		}
		if name == FileIndex {
			indexPath = stored
		}
	}

	so.log.Info("Render stored", map[string]interface{}{
		"folder": files.FolderPath,
		"files":  len(names),
	})
	return indexPath, nil
}

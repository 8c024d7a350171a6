package reports

import (
	"context"
	"fmt"
	"time"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/config"
	"xjewelchart/internal/dataset"
	"xjewelchart/internal/logger"
	"xjewelchart/internal/storage"
)

// Result summarizes one stored render
type Result struct {
	FolderPath  string    `json:"folderPath"`
	IndexPath   string    `json:"indexPath"`
	Files       int       `json:"files"`
	Points      int       `json:"points"`
	Prices      int       `json:"prices"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Generator runs the render pipeline: chart update, file generation, storage
type Generator struct {
	cfg          *config.Config
	files        *FileGenerator
	orchestrator *StorageOrchestrator
	now          func() time.Time
	log          *logger.Logger
}

// NewGenerator creates a generator storing into store
func NewGenerator(cfg *config.Config, store storage.ArtifactStore) *Generator {
	return &Generator{
		cfg:          cfg,
		files:        NewFileGenerator(cfg),
		orchestrator: NewStorageOrchestrator(store),
		now:          time.Now,
		log:          logger.Component("reports"),
	}
}

// Files returns the file generator
func (g *Generator) Files() *FileGenerator { return g.files }

// Generate renders ds and stores every artifact
func (g *Generator) Generate(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	start := g.now()

	chart := charts.New(g.cfg.ChartOptions())
	defer chart.Close()
	if err := chart.Update(ds.Points, ds.Prices, g.cfg.Viewport()); err != nil {
		return nil, fmt.Errorf("failed to build chart: %w", err)
	}

	files, err := g.files.GenerateAllFiles(ctx, chart, start)
	if err != nil {
		return nil, fmt.Errorf("failed to generate files: %w", err)
	}

	indexPath, err := g.orchestrator.StoreAllFiles(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("failed to store files: %w", err)
	}

	result := &Result{
		FolderPath:  files.FolderPath,
		IndexPath:   indexPath,
		Files:       len(files.Files),
		Points:      len(chart.Geometry().Points),
		Prices:      len(chart.Geometry().Prices),
		GeneratedAt: files.GeneratedAt,
	}
	g.log.Info("Render generated", map[string]interface{}{
		"folder":   result.FolderPath,
		"points":   result.Points,
		"duration": g.now().Sub(start).String(),
	})
	return result, nil
}

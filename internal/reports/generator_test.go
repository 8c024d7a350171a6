package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/config"
	"xjewelchart/internal/dataset"
	"xjewelchart/internal/models"
	"xjewelchart/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		ChartWidth:   600,
		ChartHeight:  320,
		MarginTop:    20,
		MarginRight:  20,
		MarginBottom: 20,
		MarginLeft:   65,
		PageTitle:    "Whale Watch",
		StorageMode:  "local",
	}
}

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	points, prices, err := dataset.Sample()
	require.NoError(t, err)
	return &dataset.Dataset{Points: points, Prices: prices, Source: "sample"}
}

func TestGenerateAllFiles(t *testing.T) {
	cfg := testConfig()
	ds := sampleDataset(t)

	chart := charts.New(cfg.ChartOptions())
	defer chart.Close()
	require.NoError(t, chart.Update(ds.Points, ds.Prices, cfg.Viewport()))

	now := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	files, err := NewFileGenerator(cfg).GenerateAllFiles(context.Background(), chart, now)
	require.NoError(t, err)

	assert.Equal(t, storage.GenerateRenderFolderPath(now), files.FolderPath)
	for _, name := range []string{FileIndex, FileSVG, FilePNG, FileInteractive, FilePoints, FileCaption} {
		assert.NotEmpty(t, files.Files[name], name)
	}

	assert.True(t, bytes.HasPrefix(files.Files[FilePNG], []byte("\x89PNG")))
	assert.Contains(t, string(files.Files[FileIndex]), "<svg")
	assert.Contains(t, string(files.Files[FileIndex]), "<strong>xJewel bank</strong>")
	assert.Equal(t, DefaultCaption, string(files.Files[FileCaption]))

	var doc struct {
		Points []models.ChartPoint `json:"points"`
		Prices []models.PricePoint `json:"prices"`
	}
	require.NoError(t, json.Unmarshal(files.Files[FilePoints], &doc))
	assert.Len(t, doc.Points, len(ds.Points))
	assert.NotEmpty(t, doc.Prices)
}

func TestGenerateAllFilesWithoutData(t *testing.T) {
	chart := charts.New(charts.DefaultOptions())
	defer chart.Close()

	_, err := NewFileGenerator(testConfig()).GenerateAllFiles(context.Background(), chart, time.Now())
	assert.True(t, errors.Is(err, charts.ErrEmptySeries))
}

func TestGeneratorStoresRender(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Caption = "custom *caption*"
	gen := NewGenerator(cfg, store)
	gen.now = func() time.Time { return time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC) }

	result, err := gen.Generate(ctx, sampleDataset(t))
	require.NoError(t, err)
	assert.Equal(t, result.FolderPath+"/"+FileIndex, result.IndexPath)
	assert.Equal(t, 120, result.Points)
	assert.Equal(t, 6, result.Files)

	latest, err := storage.LatestRender(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, result.IndexPath, latest)

	page, err := store.GetFile(ctx, result.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<em>caption</em>")

	svg, err := store.GetFile(ctx, result.FolderPath+"/"+FileSVG)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestGeneratorRejectsEmptyDataset(t *testing.T) {
	store, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	_, err = NewGenerator(testConfig(), store).Generate(context.Background(), &dataset.Dataset{})
	assert.True(t, errors.Is(err, charts.ErrEmptySeries))
}

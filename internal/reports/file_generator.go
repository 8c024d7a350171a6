package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/config"
	"xjewelchart/internal/logger"
	"xjewelchart/internal/models"
	"xjewelchart/internal/render"
	"xjewelchart/internal/storage"
)

// Artifact file names inside a render folder
const (
	FileIndex       = "index.html"
	FileSVG         = "chart.svg"
	FilePNG         = "chart.png"
	FileInteractive = "interactive.html"
	FilePoints      = "points.json"
	FileCaption     = "caption.md"
)

// DefaultCaption is used when CAPTION is empty
const DefaultCaption = "Jewel locked in the **xJewel bank** stacked on top of the circulating Jewel supply, one sample per day. " +
	"Hover a point to see the bank ratio for that day."

// GeneratedFiles contains all files generated for one render
type GeneratedFiles struct {
	FolderPath  string
	GeneratedAt time.Time
	Files       map[string][]byte
}

// pointsDocument is the layout of points.json
type pointsDocument struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Viewport    models.Viewport     `json:"viewport"`
	Points      []models.ChartPoint `json:"points"`
	Prices      []models.PricePoint `json:"prices,omitempty"`
}

// FileGenerator renders every artifact of a chart
type FileGenerator struct {
	cfg         *config.Config
	htmlBuilder *HTMLBuilder
	renderer    *render.SceneRenderer
	theme       render.Theme
	log         *logger.Logger
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(cfg *config.Config) *FileGenerator {
	theme := render.DefaultTheme()
	return &FileGenerator{
		cfg:         cfg,
		htmlBuilder: NewHTMLBuilder(),
		renderer:    render.New(theme),
		theme:       theme,
		log:         logger.Component("reports"),
	}
}

// GenerateAllFiles renders the chart's current scene to SVG and PNG, the
// ECharts page, the points dump and the HTML page tying them together.
func (fg *FileGenerator) GenerateAllFiles(ctx context.Context, chart *charts.Chart, now time.Time) (*GeneratedFiles, error) {
	scene := chart.Scene()
	if scene == nil {
		return nil, fmt.Errorf("chart has no data: %w", charts.ErrEmptySeries)
	}
	geometry := chart.Geometry()
	vp := chart.Bounds().Viewport

	files := &GeneratedFiles{
		FolderPath:  storage.GenerateRenderFolderPath(now),
		GeneratedAt: now.UTC(),
		Files:       make(map[string][]byte),
	}

	svg, err := fg.renderer.Bytes(scene, render.FormatSVG)
	if err != nil {
		return nil, fmt.Errorf("failed to render SVG: %w", err)
	}
	files.Files[FileSVG] = svg

	png, err := fg.renderer.Bytes(scene, render.FormatPNG)
	if err != nil {
		return nil, fmt.Errorf("failed to render PNG: %w", err)
	}
	files.Files[FilePNG] = png

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interactive, err := RenderInteractive(fg.cfg.PageTitle, vp, geometry.Points, geometry.Prices)
	if err != nil {
		// The static page is still useful without it
		fg.log.Warn("Failed to generate interactive chart", map[string]interface{}{"error": err.Error()})
	} else {
		files.Files[FileInteractive] = interactive
	}

	pointsJSON, err := json.MarshalIndent(pointsDocument{
		GeneratedAt: files.GeneratedAt,
		Viewport:    vp,
		Points:      geometry.Points,
		Prices:      geometry.Prices,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode points: %w", err)
	}
	files.Files[FilePoints] = pointsJSON

	caption := fg.cfg.Caption
	if caption == "" {
		caption = DefaultCaption
	}
	files.Files[FileCaption] = []byte(caption)

	page, err := fg.BuildPage(chart, svg, caption, files.Files[FileInteractive] != nil, now)
	if err != nil {
		return nil, err
	}
	files.Files[FileIndex] = []byte(page)

	fg.log.Debug("Generated render files", map[string]interface{}{
		"folder": files.FolderPath,
		"files":  len(files.Files),
		"points": len(geometry.Points),
	})
	return files, nil
}

// BuildPage renders the HTML page around an already rendered SVG. Links to
// chart.png and interactive.html are relative to the page.
func (fg *FileGenerator) BuildPage(chart *charts.Chart, svg []byte, caption string, interactive bool, now time.Time) (string, error) {
	captionHTML, err := fg.htmlBuilder.ConvertMarkdownToHTML(caption)
	if err != nil {
		return "", err
	}

	points := chart.Geometry().Points
	vp := chart.Bounds().Viewport
	data := PageData{
		Title:       fg.cfg.PageTitle,
		Caption:     captionHTML,
		SVG:         template.HTML(svg),
		Legend:      Legend(fg.theme),
		Width:       int(vp.Width),
		Height:      int(vp.Height),
		PointCount:  len(points),
		PNGURL:      FilePNG,
		GeneratedAt: now.UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     config.GetVersion(),
	}
	if len(points) > 0 {
		data.From = points[0].Time.Format("Jan 2, 2006")
		data.To = points[len(points)-1].Time.Format("Jan 2, 2006")
	}
	if interactive {
		data.InteractiveURL = FileInteractive
	}

	page, err := fg.htmlBuilder.BuildPage(data)
	if err != nil {
		return "", fmt.Errorf("failed to build page: %w", err)
	}
	return page, nil
}

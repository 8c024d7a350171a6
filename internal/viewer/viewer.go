package viewer

import (
	"bytes"
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/logger"
	"xjewelchart/internal/render"
)

// Viewer is a desktop window showing the chart with live hover
type Viewer struct {
	title string
	chart *charts.Chart
	theme render.Theme
	log   *logger.Logger
}

// New creates a viewer for an already updated chart
func New(title string, chart *charts.Chart) *Viewer {
	return &Viewer{
		title: title,
		chart: chart,
		theme: render.DefaultTheme(),
		log:   logger.Component("viewer"),
	}
}

// Content builds the chart image with the hover overlay stacked on top
func (v *Viewer) Content() (fyne.CanvasObject, *ChartOverlay, error) {
	scene := v.chart.SceneWith(charts.View{Phase: charts.PhaseIdle})
	if scene == nil {
		return nil, nil, fmt.Errorf("chart has no data: %w", charts.ErrEmptySeries)
	}
	png, err := render.New(v.theme).Bytes(scene, render.FormatPNG)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render chart: %w", err)
	}

	img := canvas.NewImageFromReader(bytes.NewReader(png), "chart.png")
	img.FillMode = canvas.ImageFillStretch
	img.SetMinSize(fyne.NewSize(float32(scene.Width), float32(scene.Height)))

	overlay := NewChartOverlay(v.chart, v.theme)
	return container.NewStack(img, overlay), overlay, nil
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
// Pointer samples are applied by a frame loop at the chart's frame rate.
func (v *Viewer) Run(ctx context.Context) error {
	a := app.NewWithID("io.xjewelchart.viewer")
	w := a.NewWindow(v.title)

	content, _, err := v.Content()
	if err != nil {
		return err
	}
	w.SetContent(content)
	w.SetFixedSize(true)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := charts.NewFrameLoop(v.chart.Controller(), v.chart.Options().FrameRate)
	go loop.Run(loopCtx)

	closed := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(a.Quit)
		case <-closed:
		}
	}()

	v.log.Info("viewer opened", map[string]interface{}{
		"points":     len(v.chart.Geometry().Points),
		"frame_rate": v.chart.Options().FrameRate,
	})
	w.ShowAndRun()
	close(closed)
	v.chart.Close()
	return nil
}

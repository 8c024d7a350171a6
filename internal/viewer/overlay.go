package viewer

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/models"
	"xjewelchart/internal/render"
)

// ChartOverlay sits on top of the chart image. It forwards pointer events to
// the chart's controller and draws the crosshair and tooltip from the views
// the controller publishes.
type ChartOverlay struct {
	widget.BaseWidget

	chart *charts.Chart
	vp    models.Viewport
	theme render.Theme

	mu   sync.Mutex
	view charts.View
}

// NewChartOverlay creates an overlay bound to chart's controller
func NewChartOverlay(chart *charts.Chart, theme render.Theme) *ChartOverlay {
	o := &ChartOverlay{
		chart: chart,
		vp:    chart.Bounds().Viewport,
		theme: theme,
	}
	o.ExtendBaseWidget(o)

	chart.Controller().OnChange(func(v charts.View) {
		fyne.Do(func() { o.SetView(v) })
	})
	return o
}

// SetView replaces the displayed view
func (o *ChartOverlay) SetView(v charts.View) {
	o.mu.Lock()
	o.view = v
	o.mu.Unlock()
	o.Refresh()
}

// View returns the displayed view
func (o *ChartOverlay) View() charts.View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// MouseIn starts pointer tracking
func (o *ChartOverlay) MouseIn(ev *desktop.MouseEvent) {
	o.chart.Controller().Enter()
	o.emit(ev)
}

// MouseMoved hands the sample to the controller; the frame loop applies it
func (o *ChartOverlay) MouseMoved(ev *desktop.MouseEvent) {
	o.emit(ev)
}

// MouseOut returns the controller to idle
func (o *ChartOverlay) MouseOut() {
	o.chart.Controller().Leave()
}

func (o *ChartOverlay) emit(ev *desktop.MouseEvent) {
	x, y := toChart(ev.Position, o.vp, o.Size())
	o.chart.Surface().Emit(models.PointerState{
		ScreenX: float64(ev.AbsolutePosition.X),
		ScreenY: float64(ev.AbsolutePosition.Y),
		LocalX:  x,
		LocalY:  y,
	})
}

var _ desktop.Hoverable = (*ChartOverlay)(nil)

func (o *ChartOverlay) CreateRenderer() fyne.WidgetRenderer {
	hover := o.theme.HoverLine.StrokeColor
	// transparent background keeps the whole area hoverable
	bg := canvas.NewRectangle(color.Transparent)
	lineH := canvas.NewLine(hover)
	lineH.StrokeWidth = 1
	lineV := canvas.NewLine(hover)
	lineV.StrokeWidth = 1

	panel := canvas.NewRectangle(o.theme.TooltipPanel.FillColor)
	panel.StrokeColor = o.theme.TooltipPanel.StrokeColor
	panel.StrokeWidth = 1
	panel.CornerRadius = 4
	label := widget.NewLabel("")

	return &overlayRenderer{
		o:     o,
		bg:    bg,
		lineH: lineH,
		lineV: lineV,
		panel: panel,
		label: label,
		objs:  []fyne.CanvasObject{bg, lineH, lineV, panel, label},
	}
}

type overlayRenderer struct {
	o            *ChartOverlay
	bg           *canvas.Rectangle
	lineH, lineV *canvas.Line
	panel        *canvas.Rectangle
	label        *widget.Label
	objs         []fyne.CanvasObject
}

func (r *overlayRenderer) Destroy() {}

func (r *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.o.vp.Width), float32(r.o.vp.Height))
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *overlayRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	l := computeLayout(r.o.View(), r.o.vp, size)

	if l.Crosshair {
		r.lineH.Position1, r.lineH.Position2 = l.HStart, l.HEnd
		r.lineV.Position1, r.lineV.Position2 = l.VStart, l.VEnd
		r.lineH.Show()
		r.lineV.Show()
	} else {
		r.lineH.Hide()
		r.lineV.Hide()
	}

	if !l.Tooltip {
		r.panel.Hide()
		r.label.Hide()
		return
	}
	r.label.SetText(l.Text)
	box := r.label.MinSize()
	pos := placeTooltip(l.Anchor, box, size)
	r.panel.Resize(box)
	r.panel.Move(pos)
	r.label.Resize(box)
	r.label.Move(pos)
	r.panel.Show()
	r.label.Show()
}

func (r *overlayRenderer) Refresh() {
	r.Layout(r.o.Size())
	for _, obj := range r.objs {
		obj.Refresh()
	}
}

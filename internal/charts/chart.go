package charts

import (
	"fmt"
	"sync"
	"time"

	"xjewelchart/internal/logger"
	"xjewelchart/internal/models"
)

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	Headroom  float64
	HitRadius float64
	FrameRate int
	TickCount int
}

// DefaultOptions returns headroom 1.15, hit radius 4, 60 frames per second
// and 10 ticks per axis
func DefaultOptions() Options {
	return Options{
		Headroom:  DefaultHeadroom,
		HitRadius: DefaultHitRadius,
		FrameRate: DefaultFrameRate,
		TickCount: 10,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Headroom <= 0 {
		o.Headroom = d.Headroom
	}
	if o.HitRadius <= 0 {
		o.HitRadius = d.HitRadius
	}
	if o.FrameRate <= 0 {
		o.FrameRate = d.FrameRate
	}
	if o.TickCount <= 0 {
		o.TickCount = d.TickCount
	}
	return o
}

// Chart owns the persistent scales and axes, the latest geometry and the
// pointer controller
type Chart struct {
	mu   sync.RWMutex
	opts Options

	scales    *ScaleCache
	xAxis     *Axis
	yAxis     *Axis
	priceAxis *Axis

	surface *Emitter
	ctrl    *Controller

	ready    bool
	bounds   Bounds
	geometry Geometry

	log *logger.Logger
}

// New creates a chart with its scales, axes and controller. Update must be
// called before Scene returns anything useful.
func New(opts Options) *Chart {
	opts = opts.withDefaults()
	scales := NewScaleCache()
	surface := NewEmitter()

	return &Chart{
		opts:      opts,
		scales:    scales,
		xAxis:     NewAxis(scales.Get(AxisTime, KindTime), OrientBottom, opts.TickCount),
		yAxis:     NewAxis(scales.Get(AxisValue, KindLinear), OrientLeft, opts.TickCount),
		priceAxis: NewAxis(scales.Get(AxisPrice, KindLinear), OrientRight, opts.TickCount),
		surface:   surface,
		ctrl:      NewController(surface, opts.HitRadius),
		log:       logger.Component("charts"),
	}
}

// Update recomputes points, domains, paths and axes from new input.
// The previous state is kept when raw is empty.
func (c *Chart) Update(raw []models.RawPoint, rawPrices []models.RawPricePoint, vp models.Viewport) error {
	points := Transform(raw)
	prices := TransformPrices(rawPrices)

	bounds, err := CalculateBounds(points, prices, vp, c.opts.Headroom)
	if err != nil {
		c.log.Warn("chart update rejected", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("update chart: %w", err)
	}

	c.mu.Lock()
	scales := Scales{
		Time:  c.scales.Update(AxisTime, KindTime, bounds.Time, bounds.X),
		Value: c.scales.Update(AxisValue, KindLinear, bounds.Value, bounds.Y),
	}
	if len(prices) > 0 {
		scales.Price = c.scales.Update(AxisPrice, KindLinear, bounds.Price, bounds.Y)
	}
	geometry := BuildGeometry(points, prices, scales, bounds)

	c.xAxis.Draw(vp.Height - vp.Margin.Bottom)
	c.yAxis.Draw(vp.Margin.Left)
	if scales.Price != nil {
		c.priceAxis.Draw(vp.Width - vp.Margin.Right)
	}

	c.bounds = bounds
	c.geometry = geometry
	c.ready = true
	c.mu.Unlock()

	c.ctrl.SetGeometry(geometry.Points, vp)

	c.log.Debug("chart updated", map[string]interface{}{
		"points":        len(points),
		"prices":        len(prices),
		"x_redraws":     c.xAxis.Redraws(),
		"y_redraws":     c.yAxis.Redraws(),
		"value_ceiling": bounds.Value.Min,
	})
	return nil
}

// Scene snapshots the current geometry, axes and pointer view. It returns
// nil before the first successful Update.
func (c *Chart) Scene() *Scene {
	return c.SceneWith(c.ctrl.View())
}

// SceneWith snapshots the current geometry and axes with view in place of
// the controller's own state.
func (c *Chart) SceneWith(view View) *Scene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ready {
		return nil
	}

	// The controller may still hold the previous points while Update is in
	// flight, so the tooltip is rebuilt from the geometry being snapshotted.
	tooltip, phase := view.Tooltip, view.Phase
	if tooltip != nil {
		if tooltip.Index >= 0 && tooltip.Index < len(c.geometry.Points) {
			t := *tooltip
			t.Rows = TooltipRows(c.geometry.Points[t.Index])
			tooltip = &t
		} else {
			tooltip, phase = nil, PhaseTracking
		}
	}

	vp := c.bounds.Viewport
	s := &Scene{
		Width:           vp.Width,
		Height:          vp.Height,
		Margin:          vp.Margin,
		BankArea:        c.geometry.BankPath,
		CirculatingArea: c.geometry.CirculatingPath,
		PriceLine:       c.geometry.PricePath,
		Markers:         buildMarkers(c.geometry.Points, c.opts.HitRadius),
		XAxis:           c.xAxis.Snapshot(),
		YAxis:           c.yAxis.Snapshot(),
		Phase:           phase,
		Crosshair:       view.Crosshair,
		Tooltip:         tooltip,
	}
	if c.geometry.PricePath != nil {
		s.PriceAxis = c.priceAxis.Snapshot()
	}
	return s
}

// Probe resolves the view a single pointer sample would produce, using a
// throwaway controller so the chart's own pointer state is untouched.
func (c *Chart) Probe(p models.PointerState) View {
	c.mu.RLock()
	points, vp, ready := c.geometry.Points, c.bounds.Viewport, c.ready
	c.mu.RUnlock()
	if !ready {
		return View{Phase: PhaseIdle}
	}

	surface := NewEmitter()
	ctrl := NewController(surface, c.opts.HitRadius)
	defer ctrl.Close()

	ctrl.SetGeometry(points, vp)
	ctrl.Enter()
	surface.Emit(p)
	ctrl.Tick()
	return ctrl.View()
}

// ValueAt maps a plot-local pointer position back to the date and value
// under it. ok is false before the first Update or outside the plot.
func (c *Chart) ValueAt(localX, localY float64) (date time.Time, value float64, ok bool) {
	c.mu.RLock()
	vp, ready := c.bounds.Viewport, c.ready
	c.mu.RUnlock()
	if !ready || !vp.XRange().Contains(localX) || !vp.YRange().Contains(localY) {
		return time.Time{}, 0, false
	}
	return c.scales.Get(AxisTime, KindTime).InvertTime(localX), c.scales.Get(AxisValue, KindLinear).Invert(localY), true
}

// Options returns the effective options
func (c *Chart) Options() Options { return c.opts }

// Controller returns the pointer controller
func (c *Chart) Controller() *Controller { return c.ctrl }

// Surface returns the emitter pointer moves are delivered through
func (c *Chart) Surface() *Emitter { return c.surface }

// Scales returns the persistent scales
func (c *Chart) Scales() Scales {
	return Scales{
		Time:  c.scales.Get(AxisTime, KindTime),
		Value: c.scales.Get(AxisValue, KindLinear),
		Price: c.scales.Get(AxisPrice, KindLinear),
	}
}

// XAxis returns the bottom time axis
func (c *Chart) XAxis() *Axis { return c.xAxis }

// YAxis returns the left value axis
func (c *Chart) YAxis() *Axis { return c.yAxis }

// Bounds returns the bounds of the last successful Update
func (c *Chart) Bounds() Bounds {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bounds
}

// Geometry returns the geometry of the last successful Update
func (c *Chart) Geometry() Geometry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.geometry
}

// Close tears down pointer tracking
func (c *Chart) Close() {
	c.ctrl.Close()
}

package charts

import (
	"context"
	"math"
	"sync"
	"time"

	"xjewelchart/internal/logger"
	"xjewelchart/internal/models"
)

// DefaultHitRadius is the radius of the data markers used for hover hit-testing
const DefaultHitRadius = 4.0

// DefaultFrameRate is the number of pointer updates applied per second
const DefaultFrameRate = 60

// Phase is the state of the pointer controller
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTracking
	PhaseHovering
)

func (p Phase) String() string {
	switch p {
	case PhaseTracking:
		return "tracking"
	case PhaseHovering:
		return "hovering"
	default:
		return "idle"
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// MoveListener receives raw pointer samples
type MoveListener func(models.PointerState)

// Surface delivers pointer moves to subscribed listeners. The returned
// function removes the listener.
type Surface interface {
	Subscribe(MoveListener) (unsubscribe func())
}

// Emitter is an in-process Surface
type Emitter struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]MoveListener
}

// NewEmitter creates an emitter with no listeners
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[int]MoveListener)}
}

// Subscribe registers l until the returned function is called
func (e *Emitter) Subscribe(l MoveListener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.listeners, id)
			e.mu.Unlock()
		})
	}
}

// Emit delivers p to every listener. Listeners run outside the emitter lock.
func (e *Emitter) Emit(p models.PointerState) {
	e.mu.Lock()
	ls := make([]MoveListener, 0, len(e.listeners))
	for _, l := range e.listeners {
		ls = append(ls, l)
	}
	e.mu.Unlock()

	for _, l := range ls {
		l(p)
	}
}

// Listeners returns the number of registered listeners
func (e *Emitter) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Crosshair is the pair of hover lines through the pointer
type Crosshair struct {
	Horizontal Line `json:"horizontal"`
	Vertical   Line `json:"vertical"`
}

// View is the resolved interaction state for one frame
type View struct {
	Phase     Phase                `json:"phase"`
	Pointer   *models.PointerState `json:"pointer,omitempty"`
	Crosshair *Crosshair           `json:"crosshair,omitempty"`
	Tooltip   *Tooltip             `json:"tooltip,omitempty"`
}

// Controller tracks the pointer over the plot. Moves are coalesced into a
// single pending slot and applied at most once per Tick.
type Controller struct {
	mu          sync.Mutex
	surface     Surface
	unsubscribe func()
	closed      bool

	phase   Phase
	pending *models.PointerState
	pointer *models.PointerState
	hovered int

	points    []models.ChartPoint
	viewport  models.Viewport
	hitRadius float64

	applied  int
	onChange func(View)
	log      *logger.Logger
}

// NewController creates an idle controller listening on surface while the
// pointer is inside it
func NewController(surface Surface, hitRadius float64) *Controller {
	if hitRadius <= 0 {
		hitRadius = DefaultHitRadius
	}
	return &Controller{
		surface:   surface,
		hovered:   -1,
		hitRadius: hitRadius,
		viewport:  models.DefaultViewport(),
		log:       logger.Component("pointer"),
	}
}

// OnChange registers fn to be called with the new view after every applied
// state change. fn runs without the controller lock held.
func (c *Controller) OnChange(fn func(View)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetGeometry replaces the points used for hit-testing and re-resolves the
// hovered point against them
func (c *Controller) SetGeometry(points []models.ChartPoint, vp models.Viewport) {
	c.mu.Lock()
	c.points = points
	c.viewport = vp
	changed := false
	if c.pointer != nil {
		changed = c.resolveHover()
	} else if c.hovered >= len(points) {
		c.hovered = -1
	}
	view, notify := c.viewLocked(), c.onChange
	c.mu.Unlock()

	if changed && notify != nil {
		notify(view)
	}
}

// Enter starts tracking and subscribes to pointer moves
func (c *Controller) Enter() {
	c.mu.Lock()
	if c.closed || c.unsubscribe != nil {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseTracking
	c.unsubscribe = c.surface.Subscribe(c.Move)
	view, notify := c.viewLocked(), c.onChange
	c.mu.Unlock()

	c.log.Debug("pointer entered")
	if notify != nil {
		notify(view)
	}
}

// Move stores p as the pending sample, replacing any sample not yet applied.
// Samples arriving while idle are dropped.
func (c *Controller) Move(p models.PointerState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseIdle {
		return
	}
	c.pending = &p
}

// Tick applies the pending sample, if any, and reports whether one was applied
func (c *Controller) Tick() bool {
	c.mu.Lock()
	if c.pending == nil || c.phase == PhaseIdle {
		c.mu.Unlock()
		return false
	}
	c.pointer = c.pending
	c.pending = nil
	c.applied++
	c.resolveHover()
	view, notify := c.viewLocked(), c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(view)
	}
	return true
}

// Leave returns to idle in one step, clearing pointer, hover and any
// pending sample, and unsubscribes from the surface
func (c *Controller) Leave() {
	c.mu.Lock()
	wasIdle := c.phase == PhaseIdle
	c.resetLocked()
	view, notify := c.viewLocked(), c.onChange
	c.mu.Unlock()

	if !wasIdle {
		c.log.Debug("pointer left")
		if notify != nil {
			notify(view)
		}
	}
}

// Close detaches the controller for good. Further Enter calls are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	c.resetLocked()
	c.closed = true
	c.onChange = nil
	c.mu.Unlock()
}

func (c *Controller) resetLocked() {
	c.phase = PhaseIdle
	c.pointer = nil
	c.pending = nil
	c.hovered = -1
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// resolveHover hit-tests the applied pointer against both markers of every
// point and picks the nearest within the hit radius
func (c *Controller) resolveHover() bool {
	prevPhase, prevHovered := c.phase, c.hovered
	c.hovered = -1
	if c.pointer != nil {
		best := math.Inf(1)
		for i, p := range c.points {
			for _, y := range [2]float64{p.CirculatingY, p.BankJewelY} {
				d := math.Hypot(c.pointer.LocalX-p.X, c.pointer.LocalY-y)
				if d <= c.hitRadius && d < best {
					best = d
					c.hovered = i
				}
			}
		}
	}
	if c.hovered >= 0 {
		c.phase = PhaseHovering
	} else {
		c.phase = PhaseTracking
	}
	return prevPhase != c.phase || prevHovered != c.hovered
}

// Phase returns the current state
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Hovered returns the hovered point, if any
func (c *Controller) Hovered() (models.ChartPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hovered < 0 || c.hovered >= len(c.points) {
		return models.ChartPoint{}, false
	}
	return c.points[c.hovered], true
}

// Applied counts the samples applied by Tick
func (c *Controller) Applied() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied
}

// View resolves the crosshair and tooltip for the current state
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	v := View{Phase: c.phase}
	if c.pointer == nil {
		return v
	}
	ptr := *c.pointer
	v.Pointer = &ptr

	vp := c.viewport
	if vp.XRange().Contains(ptr.LocalX) {
		v.Crosshair = &Crosshair{
			Horizontal: Line{X1: vp.Margin.Left, Y1: ptr.LocalY - 0.5, X2: vp.Width - vp.Margin.Right, Y2: ptr.LocalY - 0.5},
			Vertical:   Line{X1: ptr.LocalX - 0.5, Y1: vp.Margin.Top, X2: ptr.LocalX - 0.5, Y2: vp.Height - vp.Margin.Bottom},
		}
	}

	if c.phase == PhaseHovering && c.hovered >= 0 && c.hovered < len(c.points) {
		v.Tooltip = &Tooltip{
			X:     ptr.ScreenX,
			Y:     ptr.ScreenY,
			Index: c.hovered,
			Rows:  TooltipRows(c.points[c.hovered]),
		}
	}
	return v
}

// FrameLoop drives Controller.Tick at a fixed frame rate
type FrameLoop struct {
	ctrl     *Controller
	interval time.Duration
}

// NewFrameLoop creates a loop ticking rate times per second
func NewFrameLoop(ctrl *Controller, rate int) *FrameLoop {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return &FrameLoop{ctrl: ctrl, interval: time.Second / time.Duration(rate)}
}

// Interval returns the frame duration
func (f *FrameLoop) Interval() time.Duration { return f.interval }

// Run ticks until ctx is cancelled
func (f *FrameLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.ctrl.Tick()
		}
	}
}

package charts

import "sync"

// Orientation is the side of the plot an axis is drawn on
type Orientation int

const (
	OrientBottom Orientation = iota
	OrientLeft
	OrientRight
)

// TextAnchor aligns a label horizontally around its position
type TextAnchor int

const (
	AnchorMiddle TextAnchor = iota
	AnchorStart
	AnchorEnd
)

// Line is a straight segment in pixel space
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Label is positioned text in pixel space
type Label struct {
	Text   string
	X, Y   float64
	Anchor TextAnchor
}

// Group is the retained drawing an axis renders into. Coordinates are local
// to the group and shifted by OffsetX/OffsetY when drawn.
type Group struct {
	OffsetX, OffsetY float64
	Orientation      Orientation
	DomainLine       Line
	TickMarks        []Line
	Labels           []Label
}

// Clone returns a deep copy
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	c := *g
	c.TickMarks = append([]Line(nil), g.TickMarks...)
	c.Labels = append([]Label(nil), g.Labels...)
	return &c
}

const (
	tickSize    = 6
	tickPadding = 3
)

// Axis draws the ticks of one persistent Scale into a retained Group.
// Ticks are regenerated only when the scale's domain or range changed
// since the previous draw.
type Axis struct {
	mu        sync.Mutex
	scale     *Scale
	orient    Orientation
	tickCount int
	group     *Group
	deps      [4]float64
	drawn     bool
	redraws   int
}

// NewAxis binds an axis to scale
func NewAxis(scale *Scale, orient Orientation, tickCount int) *Axis {
	if tickCount <= 0 {
		tickCount = 10
	}
	return &Axis{
		scale:     scale,
		orient:    orient,
		tickCount: tickCount,
		group:     &Group{Orientation: orient},
	}
}

// Scale returns the scale the axis is bound to
func (a *Axis) Scale() *Scale { return a.scale }

// Draw positions the group at offset (y for a bottom axis, x otherwise) and
// regenerates its contents if the scale changed. It returns the retained group.
func (a *Axis) Draw(offset float64) *Group {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.orient == OrientBottom {
		a.group.OffsetX, a.group.OffsetY = 0, offset
	} else {
		a.group.OffsetX, a.group.OffsetY = offset, 0
	}

	deps := a.scale.Deps()
	if a.drawn && deps == a.deps {
		return a.group
	}
	a.deps = deps
	a.drawn = true
	a.redraws++
	a.regenerate()
	return a.group
}

// Redraws counts how many times the contents were regenerated
func (a *Axis) Redraws() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.redraws
}

// Snapshot returns a copy of the group as last drawn
func (a *Axis) Snapshot() *Group {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.group.Clone()
}

func (a *Axis) regenerate() {
	rng := a.scale.Range()
	ticks := a.scale.Ticks(a.tickCount)

	g := a.group
	g.TickMarks = g.TickMarks[:0]
	g.Labels = g.Labels[:0]

	switch a.orient {
	case OrientBottom:
		g.DomainLine = Line{X1: rng.Min, Y1: 0, X2: rng.Max, Y2: 0}
		for _, t := range ticks {
			x := a.scale.ToPixel(t.Value)
			g.TickMarks = append(g.TickMarks, Line{X1: x, Y1: 0, X2: x, Y2: tickSize})
			g.Labels = append(g.Labels, Label{Text: t.Label, X: x, Y: tickSize + tickPadding, Anchor: AnchorMiddle})
		}
	case OrientLeft, OrientRight:
		sign, anchor := -1.0, AnchorEnd
		if a.orient == OrientRight {
			sign, anchor = 1.0, AnchorStart
		}
		g.DomainLine = Line{X1: 0, Y1: rng.Min, X2: 0, Y2: rng.Max}
		for _, t := range ticks {
			y := a.scale.ToPixel(t.Value)
			g.TickMarks = append(g.TickMarks, Line{X1: sign * tickSize, Y1: y, X2: 0, Y2: y})
			g.Labels = append(g.Labels, Label{Text: t.Label, X: sign * (tickSize + tickPadding), Y: y, Anchor: anchor})
		}
	}
}

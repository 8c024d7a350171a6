package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/logger"
)

// Format is an output image format
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrUnsupportedFormat is returned for formats other than svg and png
var ErrUnsupportedFormat = errors.New("render: unsupported format")

// ParseFormat accepts "svg" or "png" in any case
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of f
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case FormatSVG:
		return chart.SVG, nil
	case FormatPNG:
		return chart.PNG, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}

const (
	tooltipOffset  = 12
	tooltipPadding = 8
	tooltipLine    = 16
)

// SceneRenderer draws chart scenes through the go-chart renderer back ends
type SceneRenderer struct {
	theme Theme
	log   *logger.Logger
}

// New creates a renderer with theme
func New(theme Theme) *SceneRenderer {
	return &SceneRenderer{theme: theme, log: logger.Component("render")}
}

// NewDefault creates a renderer with the default theme
func NewDefault() *SceneRenderer {
	return New(DefaultTheme())
}

// Bytes renders scene into memory
func (s *SceneRenderer) Bytes(scene *charts.Scene, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf, scene, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render draws scene back to front and writes the image to w. The tooltip
// is drawn at its anchor, so callers rendering a standalone image pass
// scenes whose screen and local coordinates coincide.
func (s *SceneRenderer) Render(w io.Writer, scene *charts.Scene, format Format) error {
	if scene == nil {
		return errors.New("render: nil scene")
	}
	provider, err := format.provider()
	if err != nil {
		return err
	}

	r, err := provider(int(scene.Width), int(scene.Height))
	if err != nil {
		return fmt.Errorf("failed to create %s renderer: %w", format, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	theme := s.theme
	for _, st := range []*chart.Style{&theme.Axis, &theme.TooltipText, &theme.TooltipKey} {
		st.Font = font
	}
	p := &painter{r: r, theme: theme}
	r.SetFont(font)

	p.background(scene)
	p.path(scene.BankArea, theme.BankArea)
	p.path(scene.CirculatingArea, theme.CirculatingArea)
	if scene.PriceLine != nil {
		p.path(scene.PriceLine, theme.PriceLine.GetStrokeOptions())
	}
	p.markers(scene.Markers)
	for _, g := range []*charts.Group{scene.XAxis, scene.YAxis, scene.PriceAxis} {
		p.axis(g)
	}
	if scene.Crosshair != nil {
		p.line(scene.Crosshair.Horizontal, 0, 0, theme.HoverLine)
		p.line(scene.Crosshair.Vertical, 0, 0, theme.HoverLine)
	}
	if scene.Tooltip != nil {
		p.tooltip(scene)
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	s.log.Debug("scene rendered", map[string]interface{}{
		"format":  string(format),
		"markers": len(scene.Markers),
		"phase":   scene.Phase.String(),
	})
	return nil
}

func px(v float64) int {
	return int(math.Round(v))
}

// painter draws one scene onto one renderer
type painter struct {
	r     chart.Renderer
	theme Theme
}

func (p *painter) background(scene *charts.Scene) {
	p.theme.Background.GetFillOptions().WriteDrawingOptionsToRenderer(p.r)
	w, h := px(scene.Width), px(scene.Height)
	p.r.MoveTo(0, 0)
	p.r.LineTo(w, 0)
	p.r.LineTo(w, h)
	p.r.LineTo(0, h)
	p.r.Close()
	p.r.Fill()
}

func (p *painter) path(path *charts.Path, style chart.Style) {
	if path.Len() == 0 {
		return
	}
	style.WriteDrawingOptionsToRenderer(p.r)
	for _, c := range path.Commands() {
		switch c.Op {
		case charts.OpMoveTo:
			p.r.MoveTo(px(c.X), px(c.Y))
		case charts.OpLineTo:
			p.r.LineTo(px(c.X), px(c.Y))
		case charts.OpClose:
			p.r.Close()
		}
	}
	switch {
	case style.ShouldDrawFill() && style.ShouldDrawStroke():
		p.r.FillStroke()
	case style.ShouldDrawFill():
		p.r.Fill()
	default:
		p.r.Stroke()
	}
}

func (p *painter) markers(markers []charts.Marker) {
	for _, m := range markers {
		style := p.theme.Marker
		if m.Series == charts.SeriesBank {
			style = p.theme.BankMarker
		}
		style.WriteDrawingOptionsToRenderer(p.r)
		p.r.Circle(m.R, px(m.X), px(m.Y))
		p.r.FillStroke()
	}
}

func (p *painter) line(l charts.Line, dx, dy float64, style chart.Style) {
	style.GetStrokeOptions().WriteDrawingOptionsToRenderer(p.r)
	p.r.MoveTo(px(l.X1+dx), px(l.Y1+dy))
	p.r.LineTo(px(l.X2+dx), px(l.Y2+dy))
	p.r.Stroke()
}

func (p *painter) axis(g *charts.Group) {
	if g == nil {
		return
	}
	style := p.theme.Axis
	p.line(g.DomainLine, g.OffsetX, g.OffsetY, style)
	for _, tm := range g.TickMarks {
		p.line(tm, g.OffsetX, g.OffsetY, style)
	}

	style.GetTextOptions().WriteTextOptionsToRenderer(p.r)
	for _, l := range g.Labels {
		box := p.r.MeasureText(l.Text)
		x := l.X + g.OffsetX
		y := l.Y + g.OffsetY
		switch l.Anchor {
		case charts.AnchorMiddle:
			x -= float64(box.Width()) / 2
		case charts.AnchorEnd:
			x -= float64(box.Width())
		}
		if g.Orientation == charts.OrientBottom {
			y += float64(box.Height())
		} else {
			y += float64(box.Height()) / 2
		}
		p.r.Text(l.Text, px(x), px(y))
	}
}

// tooltip draws the panel below and right of the anchor, flipping to the
// other side when it would leave the image
func (p *painter) tooltip(scene *charts.Scene) {
	tt := scene.Tooltip
	p.theme.TooltipText.GetTextOptions().WriteTextOptionsToRenderer(p.r)

	width := 0
	for _, row := range tt.Rows {
		if w := p.r.MeasureText(row.Key + ": " + row.Value).Width(); w > width {
			width = w
		}
	}
	boxW := float64(width + 2*tooltipPadding)
	boxH := float64(len(tt.Rows)*tooltipLine + 2*tooltipPadding)

	left := tt.X + tooltipOffset
	top := tt.Y + tooltipOffset
	if left+boxW > scene.Width {
		left = tt.X - tooltipOffset - boxW
	}
	if top+boxH > scene.Height {
		top = tt.Y - tooltipOffset - boxH
	}
	left = math.Max(0, left)
	top = math.Max(0, top)

	p.theme.TooltipPanel.WriteDrawingOptionsToRenderer(p.r)
	p.r.MoveTo(px(left), px(top))
	p.r.LineTo(px(left+boxW), px(top))
	p.r.LineTo(px(left+boxW), px(top+boxH))
	p.r.LineTo(px(left), px(top+boxH))
	p.r.Close()
	p.r.FillStroke()

	for i, row := range tt.Rows {
		baseline := px(top + tooltipPadding + float64((i+1)*tooltipLine) - 4)
		x := px(left + tooltipPadding)
		key := row.Key + ": "

		p.theme.TooltipKey.GetTextOptions().WriteTextOptionsToRenderer(p.r)
		p.r.Text(key, x, baseline)
		keyW := p.r.MeasureText(key).Width()

		p.theme.TooltipText.GetTextOptions().WriteTextOptionsToRenderer(p.r)
		p.r.Text(row.Value, x+keyW, baseline)
	}
}

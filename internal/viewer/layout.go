package viewer

import (
	"strings"

	"fyne.io/fyne/v2"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/models"
)

const tooltipOffset = 12

// overlayLayout is the overlay geometry in widget coordinates
type overlayLayout struct {
	Crosshair    bool
	HStart, HEnd fyne.Position
	VStart, VEnd fyne.Position
	Tooltip      bool
	Anchor       fyne.Position
	Text         string
}

// scaleFor maps chart pixels to widget units. The image is stretched to the
// widget, so each axis scales independently.
func scaleFor(vp models.Viewport, size fyne.Size) (sx, sy float32) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 1, 1
	}
	return size.Width / float32(vp.Width), size.Height / float32(vp.Height)
}

// toChart converts a widget position to chart pixels
func toChart(pos fyne.Position, vp models.Viewport, size fyne.Size) (x, y float64) {
	sx, sy := scaleFor(vp, size)
	if sx == 0 || sy == 0 {
		return float64(pos.X), float64(pos.Y)
	}
	return float64(pos.X / sx), float64(pos.Y / sy)
}

// computeLayout places the crosshair and tooltip anchor for v
func computeLayout(v charts.View, vp models.Viewport, size fyne.Size) overlayLayout {
	var l overlayLayout
	sx, sy := scaleFor(vp, size)
	at := func(x, y float64) fyne.Position {
		return fyne.NewPos(float32(x)*sx, float32(y)*sy)
	}

	if c := v.Crosshair; c != nil {
		l.Crosshair = true
		l.HStart, l.HEnd = at(c.Horizontal.X1, c.Horizontal.Y1), at(c.Horizontal.X2, c.Horizontal.Y2)
		l.VStart, l.VEnd = at(c.Vertical.X1, c.Vertical.Y1), at(c.Vertical.X2, c.Vertical.Y2)
	}

	// The tooltip is anchored at the pointer; inside the window that is the
	// local position rather than the screen one.
	if v.Tooltip != nil && v.Pointer != nil {
		l.Tooltip = true
		l.Anchor = at(v.Pointer.LocalX, v.Pointer.LocalY)
		l.Text = tooltipText(v.Tooltip.Rows)
	}
	return l
}

func tooltipText(rows []charts.TooltipRow) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.Key + ": " + r.Value
	}
	return strings.Join(lines, "\n")
}

// placeTooltip offsets the panel from anchor and flips it left or up when
// it would overflow the widget
func placeTooltip(anchor fyne.Position, box, size fyne.Size) fyne.Position {
	x := anchor.X + tooltipOffset
	y := anchor.Y + tooltipOffset
	if x+box.Width > size.Width {
		x = anchor.X - tooltipOffset - box.Width
	}
	if y+box.Height > size.Height {
		y = anchor.Y - tooltipOffset - box.Height
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return fyne.NewPos(x, y)
}

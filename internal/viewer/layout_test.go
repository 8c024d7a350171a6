package viewer

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/models"
)

var testViewport = models.Viewport{Width: 400, Height: 300, Margin: models.Margin{Top: 20, Right: 20, Bottom: 20, Left: 65}}

func TestToChart(t *testing.T) {
	x, y := toChart(fyne.NewPos(100, 75), testViewport, fyne.NewSize(400, 300))
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 75.0, y)

	x, y = toChart(fyne.NewPos(100, 75), testViewport, fyne.NewSize(800, 150))
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 150.0, y)
}

func TestComputeLayoutIdle(t *testing.T) {
	l := computeLayout(charts.View{Phase: charts.PhaseIdle}, testViewport, fyne.NewSize(400, 300))
	assert.False(t, l.Crosshair)
	assert.False(t, l.Tooltip)
}

func TestComputeLayoutHovering(t *testing.T) {
	v := charts.View{
		Phase:   charts.PhaseHovering,
		Pointer: &models.PointerState{ScreenX: 900, ScreenY: 700, LocalX: 100, LocalY: 50},
		Crosshair: &charts.Crosshair{
			Horizontal: charts.Line{X1: 65, Y1: 49.5, X2: 380, Y2: 49.5},
			Vertical:   charts.Line{X1: 99.5, Y1: 20, X2: 99.5, Y2: 280},
		},
		Tooltip: &charts.Tooltip{X: 900, Y: 700, Rows: []charts.TooltipRow{
			{Key: "Date", Value: "Friday, January 1st, 2021"},
			{Key: "xJewel", Value: "100"},
		}},
	}

	l := computeLayout(v, testViewport, fyne.NewSize(800, 600))
	assert.True(t, l.Crosshair)
	assert.Equal(t, fyne.NewPos(130, 99), l.HStart)
	assert.Equal(t, fyne.NewPos(760, 99), l.HEnd)
	assert.Equal(t, fyne.NewPos(199, 40), l.VStart)
	assert.Equal(t, fyne.NewPos(199, 560), l.VEnd)

	assert.True(t, l.Tooltip)
	assert.Equal(t, fyne.NewPos(200, 100), l.Anchor, "anchored at the local pointer")
	assert.Equal(t, "Date: Friday, January 1st, 2021\nxJewel: 100", l.Text)
}

func TestPlaceTooltip(t *testing.T) {
	size := fyne.NewSize(400, 300)
	box := fyne.NewSize(100, 80)

	tests := []struct {
		name   string
		anchor fyne.Position
		want   fyne.Position
	}{
		{"below right", fyne.NewPos(50, 50), fyne.NewPos(62, 62)},
		{"flips left", fyne.NewPos(350, 50), fyne.NewPos(238, 62)},
		{"flips up", fyne.NewPos(50, 250), fyne.NewPos(62, 158)},
		{"clamped", fyne.NewPos(5, 5), fyne.NewPos(17, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeTooltip(tt.anchor, box, size))
		})
	}

	assert.Equal(t, fyne.NewPos(0, 0), placeTooltip(fyne.NewPos(20, 20), fyne.NewSize(500, 400), size))
}

package charts

import "xjewelchart/internal/models"

// Series identifies which band a marker belongs to
type Series int

const (
	SeriesBank Series = iota
	SeriesCirculating
)

// Marker is a data point circle
type Marker struct {
	X, Y   float64
	R      float64
	Series Series
	Index  int
}

// Scene is a renderable snapshot of the chart, drawn back to front:
// bank area, circulating area, price line, markers, axes, crosshair.
// The tooltip is an overlay in screen coordinates.
type Scene struct {
	Width, Height float64
	Margin        models.Margin

	BankArea        *Path
	CirculatingArea *Path
	PriceLine       *Path
	Markers         []Marker

	XAxis     *Group
	YAxis     *Group
	PriceAxis *Group

	Phase     Phase
	Crosshair *Crosshair
	Tooltip   *Tooltip
}

func buildMarkers(points []models.ChartPoint, r float64) []Marker {
	markers := make([]Marker, 0, 2*len(points))
	for _, p := range points {
		markers = append(markers,
			Marker{X: p.X, Y: p.CirculatingY, R: r, Series: SeriesCirculating, Index: p.Index},
			Marker{X: p.X, Y: p.BankJewelY, R: r, Series: SeriesBank, Index: p.Index},
		)
	}
	return markers
}

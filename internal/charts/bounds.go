package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"xjewelchart/internal/models"
)

// DefaultHeadroom keeps the tallest band off the top edge of the plot
const DefaultHeadroom = 1.15

// Bounds holds every scalar the scales are driven by
type Bounds struct {
	Time     models.Domain // [first, last] as chart.TimeToFloat64 values
	Value    models.Domain // [max*headroom, 0]
	Price    models.Domain // [maxPrice*headroom, 0], zero when there are no prices
	X        models.Range
	Y        models.Range
	Viewport models.Viewport
}

// CalculateBounds computes the time and value domains and the pixel ranges.
// The value domain is inverted so that larger values map to smaller y.
func CalculateBounds(points []models.ChartPoint, prices []models.PricePoint, vp models.Viewport, headroom float64) (Bounds, error) {
	if len(points) == 0 {
		return Bounds{}, ErrEmptySeries
	}
	if headroom <= 0 {
		headroom = DefaultHeadroom
	}

	maxCombined := seriesMax(len(points), func(i int) float64 { return points[i].Combined() })
	maxPrice := seriesMax(len(prices), func(i int) float64 { return prices[i].Price })

	return Bounds{
		Time: models.Domain{
			Min: chart.TimeToFloat64(points[0].Time),
			Max: chart.TimeToFloat64(points[len(points)-1].Time),
		},
		Value:    models.Domain{Min: maxCombined * headroom, Max: 0},
		Price:    models.Domain{Min: maxPrice * headroom, Max: 0},
		X:        vp.XRange(),
		Y:        vp.YRange(),
		Viewport: vp,
	}, nil
}

// seriesMax ignores NaN the way a comparison scan does and returns 0 when
// nothing compares.
func seriesMax(n int, value func(int) float64) float64 {
	maxV := math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := value(i); v > maxV {
			maxV = v
		}
	}
	if math.IsInf(maxV, -1) {
		return 0
	}
	return maxV
}

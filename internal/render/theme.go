package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme holds the styles used for each scene element
type Theme struct {
	Background      chart.Style
	BankArea        chart.Style
	CirculatingArea chart.Style
	PriceLine       chart.Style
	BankMarker      chart.Style
	Marker          chart.Style
	Axis            chart.Style
	HoverLine       chart.Style
	TooltipPanel    chart.Style
	TooltipText     chart.Style
	TooltipKey      chart.Style
}

var (
	bankColor        = drawing.Color{R: 112, G: 72, B: 232, A: 255}  // Violet
	circulatingColor = drawing.Color{R: 255, G: 176, B: 59, A: 255}  // Amber
	priceColor       = drawing.Color{R: 46, G: 160, B: 67, A: 255}   // Green
	axisColor        = drawing.Color{R: 90, G: 90, B: 90, A: 255}    // Gray
	hoverColor       = drawing.Color{R: 30, G: 30, B: 30, A: 160}    // Translucent black
	panelColor       = drawing.Color{R: 255, G: 255, B: 255, A: 235} // Translucent white
)

// DefaultTheme returns the violet/amber band palette
func DefaultTheme() Theme {
	return Theme{
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		BankArea: chart.Style{
			ClassName:   "bank-area",
			FillColor:   bankColor.WithAlpha(140),
			StrokeColor: bankColor,
			StrokeWidth: 1.5,
		},
		CirculatingArea: chart.Style{
			ClassName:   "circulating-area",
			FillColor:   circulatingColor.WithAlpha(170),
			StrokeColor: circulatingColor,
			StrokeWidth: 1.5,
		},
		PriceLine: chart.Style{
			ClassName:   "price-line",
			StrokeColor: priceColor,
			StrokeWidth: 2,
		},
		BankMarker: chart.Style{
			ClassName:   "data-point bank",
			FillColor:   drawing.ColorWhite,
			StrokeColor: bankColor,
			StrokeWidth: 1.5,
		},
		Marker: chart.Style{
			ClassName:   "data-point circulating",
			FillColor:   drawing.ColorWhite,
			StrokeColor: circulatingColor,
			StrokeWidth: 1.5,
		},
		Axis: chart.Style{
			ClassName:   "axis",
			StrokeColor: axisColor,
			StrokeWidth: 1,
			FontColor:   axisColor,
			FontSize:    9,
		},
		HoverLine: chart.Style{
			ClassName:       "hover-line",
			StrokeColor:     hoverColor,
			StrokeWidth:     1,
			StrokeDashArray: []float64{4, 4},
		},
		TooltipPanel: chart.Style{
			ClassName:   "tooltip",
			FillColor:   panelColor,
			StrokeColor: axisColor,
			StrokeWidth: 1,
		},
		TooltipText: chart.Style{
			FontColor: drawing.ColorBlack,
			FontSize:  10,
		},
		TooltipKey: chart.Style{
			FontColor: axisColor,
			FontSize:  10,
		},
	}
}

package reports

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"xjewelchart/internal/models"
)

const (
	seriesBank        = "Circulating xJewel (in Jewel)"
	seriesCirculating = "Circulating Jewel"
	seriesPrice       = "Jewel Price"

	dateLayout = "2006-01-02"
)

// InteractiveChart builds the ECharts rendition of the chart: circulating
// Jewel stacked under the bank's Jewel, with the optional price series on a
// second y axis. Price samples are aligned to the point dates.
func InteractiveChart(title string, vp models.Viewport, points []models.ChartPoint, prices []models.PricePoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     fmt.Sprintf("%dpx", int(vp.Width)),
			Height:    fmt.Sprintf("%dpx", int(vp.Height)),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Jewel locked in the bank vs circulating",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        true,
			Trigger:     "axis",
			AxisPointer: &opts.AxisPointer{Type: "cross"},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Jewel",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: 0,
			End:   100,
		}),
	)

	dates := make([]string, len(points))
	circulating := make([]opts.LineData, len(points))
	bank := make([]opts.LineData, len(points))
	for i, p := range points {
		dates[i] = p.Time.Format(dateLayout)
		circulating[i] = opts.LineData{Value: p.CirculatingJewel}
		bank[i] = opts.LineData{Value: p.BankJewel}
	}

	stacked := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Stack: "jewel"}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.6}),
	}
	line.SetXAxis(dates).
		AddSeries(seriesCirculating, circulating, stacked...).
		AddSeries(seriesBank, bank, stacked...)

	if len(prices) > 0 {
		line.ExtendYAxis(opts.YAxis{Name: "Price"})
		line.AddSeries(seriesPrice, alignPrices(dates, prices),
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
	}
	return line
}

// alignPrices maps each date to its price sample, or a gap when there is none
func alignPrices(dates []string, prices []models.PricePoint) []opts.LineData {
	byDate := make(map[string]float64, len(prices))
	for _, p := range prices {
		byDate[p.Time.Format(dateLayout)] = p.Price
	}

	data := make([]opts.LineData, len(dates))
	for i, d := range dates {
		if v, ok := byDate[d]; ok {
			data[i] = opts.LineData{Value: v}
		} else {
			data[i] = opts.LineData{Value: "-"}
		}
	}
	return data
}

// RenderInteractive renders the ECharts page
func RenderInteractive(title string, vp models.Viewport, points []models.ChartPoint, prices []models.PricePoint) ([]byte, error) {
	var buf bytes.Buffer
	if err := InteractiveChart(title, vp, points, prices).Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render interactive chart: %w", err)
	}
	return buf.Bytes(), nil
}

package charts

import "xjewelchart/internal/models"

func twoPointSeries() []models.RawPoint {
	return []models.RawPoint{
		{Date: "2021-01-01", XJewel: 100, Ratio: 2, CirculatingJewel: 50, XJewelWallets: 10},
		{Date: "2021-01-02", XJewel: 120, Ratio: 2, CirculatingJewel: 60, XJewelWallets: 12},
	}
}

func smallViewport() models.Viewport {
	return models.Viewport{Width: 400, Height: 300, Margin: models.Margin{Top: 20, Right: 20, Bottom: 20, Left: 65}}
}

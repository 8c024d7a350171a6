package charts

import "xjewelchart/internal/models"

// Scales groups the scales the path builder maps through
type Scales struct {
	Time  *Scale
	Value *Scale
	Price *Scale
}

// Geometry is the pixel-space output of BuildGeometry
type Geometry struct {
	Points          []models.ChartPoint
	Prices          []models.PricePoint
	CirculatingPath *Path // circulating band, closed against the baseline
	BankPath        *Path // combined band, closed against the baseline
	PricePath       *Path // open polyline, nil without prices
}

// BuildGeometry maps every point through the scales in a single pass and
// builds the two stacked band polygons. The input slices are not modified.
func BuildGeometry(points []models.ChartPoint, prices []models.PricePoint, s Scales, b Bounds) Geometry {
	out := make([]models.ChartPoint, len(points))
	circulating := NewPath()
	bank := NewPath()

	for i, p := range points {
		p.X = s.Time.TimeToPixel(p.Time)
		p.CirculatingY = s.Value.ToPixel(p.CirculatingJewel)
		p.BankJewelY = s.Value.ToPixel(p.Combined())
		p.Index = i
		out[i] = p

		if i == 0 {
			circulating.MoveTo(p.X, p.CirculatingY)
			bank.MoveTo(p.X, p.BankJewelY)
			continue
		}
		circulating.LineTo(p.X, p.CirculatingY)
		bank.LineTo(p.X, p.BankJewelY)
	}

	if len(out) > 0 {
		for _, path := range []*Path{circulating, bank} {
			path.LineTo(b.X.Max, b.Y.Max)
			path.LineTo(b.X.Min, b.Y.Max)
			path.ClosePath()
		}
	}

	g := Geometry{
		Points:          out,
		CirculatingPath: circulating,
		BankPath:        bank,
	}

	if len(prices) > 0 && s.Price != nil {
		g.Prices = make([]models.PricePoint, len(prices))
		g.PricePath = NewPath()
		for i, p := range prices {
			p.X = s.Time.TimeToPixel(p.Time)
			p.Y = s.Price.ToPixel(p.Price)
			g.Prices[i] = p
			if i == 0 {
				g.PricePath.MoveTo(p.X, p.Y)
			} else {
				g.PricePath.LineTo(p.X, p.Y)
			}
		}
	}

	return g
}

package charts

import (
	"errors"
	"strings"
	"time"

	"xjewelchart/internal/models"
)

// ErrEmptySeries is returned when the primary series has no points
var ErrEmptySeries = errors.New("charts: empty series")

// dateLayouts are tried in order when parsing record dates
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a record date in UTC. Unparseable input yields the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Transform derives chart points from raw records. The output has the same
// length and order as the input; pixel coordinates are filled in later by
// BuildGeometry.
func Transform(raw []models.RawPoint) []models.ChartPoint {
	points := make([]models.ChartPoint, len(raw))
	for i, r := range raw {
		points[i] = models.ChartPoint{
			RawPoint:  r,
			Time:      ParseDate(r.Date),
			BankJewel: r.XJewel * r.Ratio,
			Index:     i,
		}
	}
	return points
}

// TransformPrices parses the optional price series
func TransformPrices(raw []models.RawPricePoint) []models.PricePoint {
	if len(raw) == 0 {
		return nil
	}
	prices := make([]models.PricePoint, len(raw))
	for i, r := range raw {
		prices[i] = models.PricePoint{
			Date:  r.Date,
			Time:  ParseDate(r.Date),
			Price: r.Price,
		}
	}
	return prices
}

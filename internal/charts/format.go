package charts

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"xjewelchart/internal/models"
)

// FormatNumber renders v in en-US style with digit grouping and at most
// three fraction digits, e.g. 1234.5678 -> "1,234.568". Halves round away
// from zero.
func FormatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatLongDate renders a date as "Friday, January 1st, 2021"
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %s %s, %d", t.Weekday(), t.Month(), ordinal(t.Day()), t.Year())
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// TooltipRow is one key/value line of the tooltip
type TooltipRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Tooltip is the hover panel anchored at the absolute pointer position
type Tooltip struct {
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Index int          `json:"index"`
	Rows  []TooltipRow `json:"rows"`
}

// TooltipRows formats the metrics of p
func TooltipRows(p models.ChartPoint) []TooltipRow {
	return []TooltipRow{
		{Key: "Date", Value: FormatLongDate(p.Time)},
		{Key: "xJewel", Value: FormatNumber(p.XJewel)},
		{Key: "xJewel in Jewel", Value: FormatNumber(p.BankJewel)},
		{Key: "Bank Ratio", Value: FormatNumber(p.Ratio)},
		{Key: "Circulating Jewel", Value: FormatNumber(p.CirculatingJewel)},
	}
}

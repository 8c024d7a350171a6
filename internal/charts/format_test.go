package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"xjewelchart/internal/models"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{200, "200"},
		{2, "2"},
		{1234.5, "1,234.5"},
		{1234.5678, "1,234.568"},
		{1500000, "1,500,000"},
		{1.0625, "1.063"},
		{2.0625, "2.063"},
		{0.0005, "0.001"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestFormatLongDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "Friday, January 1st, 2021"},
		{time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), "Saturday, January 2nd, 2021"},
		{time.Date(2021, 3, 23, 0, 0, 0, 0, time.UTC), "Tuesday, March 23rd, 2021"},
		{time.Date(2021, 11, 11, 0, 0, 0, 0, time.UTC), "Thursday, November 11th, 2021"},
		{time.Date(2022, 2, 11, 0, 0, 0, 0, time.UTC), "Friday, February 11th, 2022"},
		{time.Date(2022, 2, 12, 0, 0, 0, 0, time.UTC), "Saturday, February 12th, 2022"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLongDate(tt.date))
	}
}

func TestTooltipRows(t *testing.T) {
	p := Transform([]models.RawPoint{{Date: "2021-01-01", XJewel: 1234.5, Ratio: 2, CirculatingJewel: 50}})[0]

	rows := TooltipRows(p)

	assert.Equal(t, []TooltipRow{
		{Key: "Date", Value: "Friday, January 1st, 2021"},
		{Key: "xJewel", Value: "1,234.5"},
		{Key: "xJewel in Jewel", Value: "2,469"},
		{Key: "Bank Ratio", Value: "2"},
		{Key: "Circulating Jewel", Value: "50"},
	}, rows)
}

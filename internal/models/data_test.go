package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawPointJSON(t *testing.T) {
	input := `{"date":"2021-01-01","xJewel":100,"xJewelWallets":10,"circulatingJewel":50,"ratio":2}`

	var p RawPoint
	require.NoError(t, json.Unmarshal([]byte(input), &p))

	assert.Equal(t, "2021-01-01", p.Date)
	assert.Equal(t, 100.0, p.XJewel)
	assert.Equal(t, 10.0, p.XJewelWallets)
	assert.Equal(t, 50.0, p.CirculatingJewel)
	assert.Equal(t, 2.0, p.Ratio)
}

func TestChartPointCombined(t *testing.T) {
	p := ChartPoint{RawPoint: RawPoint{CirculatingJewel: 60}, BankJewel: 240}
	assert.Equal(t, 300.0, p.Combined())
}

func TestViewportRanges(t *testing.T) {
	tests := []struct {
		name  string
		vp    Viewport
		wantX Range
		wantY Range
	}{
		{"default", DefaultViewport(), Range{65, 1156}, Range{20, 620}},
		{"small", Viewport{Width: 400, Height: 300, Margin: DefaultMargin}, Range{65, 380}, Range{20, 280}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantX, tt.vp.XRange())
			assert.Equal(t, tt.wantY, tt.vp.YRange())
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 65, Max: 380}
	assert.True(t, r.Contains(65))
	assert.True(t, r.Contains(380))
	assert.False(t, r.Contains(64.9))
	assert.False(t, r.Contains(380.1))
}

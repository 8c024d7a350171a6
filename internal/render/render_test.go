package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/models"
)

func testChart(t *testing.T, prices []models.RawPricePoint) *charts.Chart {
	t.Helper()
	c := charts.New(charts.DefaultOptions())
	t.Cleanup(c.Close)
	raw := []models.RawPoint{
		{Date: "2021-01-01", XJewel: 100, Ratio: 2, CirculatingJewel: 50, XJewelWallets: 10},
		{Date: "2021-01-02", XJewel: 120, Ratio: 2, CirculatingJewel: 60, XJewelWallets: 12},
	}
	vp := models.Viewport{Width: 400, Height: 300, Margin: models.DefaultMargin}
	require.NoError(t, c.Update(raw, prices, vp))
	return c
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{" PNG ", FormatPNG, false},
		{"gif", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrUnsupportedFormat))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())
}

func TestRenderSVG(t *testing.T) {
	c := testChart(t, nil)

	out, err := NewDefault().Bytes(c.Scene(), FormatSVG)
	require.NoError(t, err)

	svg := string(out)
	assert.True(t, strings.Contains(svg, "<svg"))
	assert.Contains(t, svg, "</svg>")
	assert.Contains(t, svg, "<path")
	assert.Contains(t, svg, "<circle")
	assert.Contains(t, svg, "03:00", "time axis labels are drawn")
	assert.Contains(t, svg, "300", "value axis labels are drawn")
}

func TestRenderPNG(t *testing.T) {
	c := testChart(t, []models.RawPricePoint{{Date: "2021-01-01", Price: 8}, {Date: "2021-01-02", Price: 10}})

	out, err := NewDefault().Bytes(c.Scene(), FormatPNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderHoveredScene(t *testing.T) {
	c := testChart(t, nil)
	p := c.Geometry().Points[1]

	c.Controller().Enter()
	c.Surface().Emit(models.PointerState{ScreenX: p.X, ScreenY: p.BankJewelY, LocalX: p.X, LocalY: p.BankJewelY})
	require.True(t, c.Controller().Tick())

	scene := c.Scene()
	require.NotNil(t, scene.Tooltip)

	out, err := NewDefault().Bytes(scene, FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Saturday, January 2nd, 2021")

	png, err := NewDefault().Bytes(scene, FormatPNG)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRenderErrors(t *testing.T) {
	r := NewDefault()

	_, err := r.Bytes(nil, FormatSVG)
	assert.Error(t, err)

	c := testChart(t, nil)
	_, err = r.Bytes(c.Scene(), Format("bmp"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

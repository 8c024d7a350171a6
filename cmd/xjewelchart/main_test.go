package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/dataset"
	"xjewelchart/internal/models"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["render"])
	assert.True(t, names["serve"])
	assert.True(t, names["view"])
	assert.NotNil(t, root.PersistentFlags().Lookup("data"))
	assert.NotNil(t, root.PersistentFlags().Lookup("prices"))
}

func TestRenderImage(t *testing.T) {
	points, prices, err := dataset.Sample()
	require.NoError(t, err)
	vp := models.Viewport{Width: 500, Height: 300, Margin: models.DefaultMargin}
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "chart.svg")
	require.NoError(t, renderImage(charts.DefaultOptions(), vp, points, prices, svgPath, false, 0, 0))
	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	pngPath := filepath.Join(dir, "chart.png")
	require.NoError(t, renderImage(charts.DefaultOptions(), vp, points, prices, pngPath, true, 200, 100))
	png, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	err = renderImage(charts.DefaultOptions(), vp, points, prices, filepath.Join(dir, "chart.gif"), false, 0, 0)
	assert.Error(t, err)

	err = renderImage(charts.DefaultOptions(), vp, nil, nil, filepath.Join(dir, "empty.svg"), false, 0, 0)
	assert.ErrorIs(t, err, charts.ErrEmptySeries)
}

package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xjewelchart/internal/render"
)

func TestConvertMarkdownToHTML(t *testing.T) {
	h := NewHTMLBuilder()

	out, err := h.ConvertMarkdownToHTML("## Bank\nJewel in the **bank**\nline two")
	require.NoError(t, err)
	assert.Contains(t, string(out), `<h2 id="bank">Bank</h2>`)
	assert.Contains(t, string(out), "<strong>bank</strong>")
	assert.Contains(t, string(out), "<br>")
}

func TestBuildPage(t *testing.T) {
	h := NewHTMLBuilder()

	page, err := h.BuildPage(PageData{
		Title:          "Whales <3",
		Caption:        "<p>caption</p>",
		SVG:            `<svg width="10" height="10"></svg>`,
		Width:          800,
		Height:         400,
		PointCount:     2,
		From:           "Jan 1, 2021",
		To:             "Jan 2, 2021",
		PNGURL:         FilePNG,
		InteractiveURL: FileInteractive,
		Version:        "1.2.3",
	})
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Whales &lt;3</title>")
	assert.Contains(t, page, `<svg width="10" height="10"></svg>`)
	assert.Contains(t, page, "<p>caption</p>")
	assert.Contains(t, page, "Circulating xJewel (in Jewel)")
	assert.Contains(t, page, "Circulating Jewel")
	assert.Contains(t, page, `src="interactive.html"`)
	assert.Contains(t, page, `href="chart.png"`)
	assert.Contains(t, page, "2 daily samples from Jan 1, 2021 to Jan 2, 2021")
	assert.Contains(t, page, "v1.2.3")
}

func TestBuildPageWithoutOptionalSections(t *testing.T) {
	page, err := NewHTMLBuilder().BuildPage(PageData{Title: "t"})
	require.NoError(t, err)
	assert.NotContains(t, page, "<iframe")
	assert.NotContains(t, page, `class="caption"`)
}

func TestLegendUsesThemeColors(t *testing.T) {
	theme := render.DefaultTheme()
	legend := Legend(theme)
	require.Len(t, legend, 2)
	assert.Equal(t, theme.BankArea.StrokeColor.String(), string(legend[0].Color))
	assert.Equal(t, theme.CirculatingArea.StrokeColor.String(), string(legend[1].Color))
}

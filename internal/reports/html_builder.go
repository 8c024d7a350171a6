package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"xjewelchart/internal/render"
)

// LegendItem is one swatch of the page legend
type LegendItem struct {
	Label string
	Color template.CSS
}

// Legend labels the two bands with the stroke colors of theme
func Legend(theme render.Theme) []LegendItem {
	return []LegendItem{
		{Label: "Circulating xJewel (in Jewel)", Color: template.CSS(theme.BankArea.StrokeColor.String())},
		{Label: "Circulating Jewel", Color: template.CSS(theme.CirculatingArea.StrokeColor.String())},
	}
}

// PageData represents the data structure for the page template
type PageData struct {
	Title          string
	Caption        template.HTML
	SVG            template.HTML
	Legend         []LegendItem
	Width          int
	Height         int
	PointCount     int
	From           string
	To             string
	PNGURL         string
	InteractiveURL string
	GeneratedAt    string
	Version        string
}

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown

	once sync.Once
	tmpl *template.Template
	err  error
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
	}
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (h *HTMLBuilder) template() (*template.Template, error) {
	h.once.Do(func() {
		src, err := h.templateLoader.LoadHTMLTemplate()
		if err != nil {
			h.err = err
			return
		}
		h.tmpl, h.err = template.New("page").Parse(src)
		if h.err != nil {
			h.err = fmt.Errorf("failed to parse page template: %w", h.err)
		}
	})
	return h.tmpl, h.err
}

// BuildPage executes the page template
func (h *HTMLBuilder) BuildPage(data PageData) (string, error) {
	tmpl, err := h.template()
	if err != nil {
		return "", err
	}
	if data.Legend == nil {
		data.Legend = Legend(render.DefaultTheme())
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

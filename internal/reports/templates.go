package reports

import (
	"embed"
	"fmt"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

// TemplateLoader handles loading the page template
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate loads the page template
func (t *TemplateLoader) LoadHTMLTemplate() (string, error) {
	content, err := templateFS.ReadFile("templates/page.html.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to read page template: %w", err)
	}
	return string(content), nil
}

package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/models"
)

// Config holds all configuration for the chart service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Data sources: file paths or http(s) URLs. Empty DATA_FILE uses the built-in sample.
	DataFile  string `env:"DATA_FILE"`
	PriceFile string `env:"PRICE_FILE"`

	// Viewport
	ChartWidth   float64 `env:"CHART_WIDTH,default=1176"`
	ChartHeight  float64 `env:"CHART_HEIGHT,default=640"`
	MarginTop    float64 `env:"MARGIN_TOP,default=20"`
	MarginRight  float64 `env:"MARGIN_RIGHT,default=20"`
	MarginBottom float64 `env:"MARGIN_BOTTOM,default=20"`
	MarginLeft   float64 `env:"MARGIN_LEFT,default=65"`

	// Engine tuning
	Headroom  float64 `env:"HEADROOM,default=1.15"`
	HitRadius float64 `env:"HIT_RADIUS,default=4"`
	FrameRate int     `env:"FRAME_RATE,default=60"`
	TickCount int     `env:"TICK_COUNT,default=10"`

	// Artifact storage
	OutputDir   string `env:"OUTPUT_DIR,default=./out"`
	StorageMode string `env:"STORAGE_MODE,default=local"`
	GCSBucket   string `env:"GCS_BUCKET"`

	// Page
	PageTitle string `env:"PAGE_TITLE,default=xJewel Whale Watch"`
	Caption   string `env:"CAPTION"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadWithLookuper(ctx, envconfig.OsLookuper())
}

// LoadWithLookuper loads configuration from an arbitrary source
func LoadWithLookuper(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot
func (c *Config) Validate() error {
	if c.ChartWidth <= c.MarginLeft+c.MarginRight {
		return fmt.Errorf("invalid config: CHART_WIDTH %.0f leaves no plotting area", c.ChartWidth)
	}
	if c.ChartHeight <= c.MarginTop+c.MarginBottom {
		return fmt.Errorf("invalid config: CHART_HEIGHT %.0f leaves no plotting area", c.ChartHeight)
	}
	switch strings.ToLower(c.StorageMode) {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("invalid config: STORAGE_MODE=gcs requires GCS_BUCKET")
		}
	default:
		return fmt.Errorf("invalid config: unknown STORAGE_MODE %q", c.StorageMode)
	}
	return nil
}

// Viewport returns the configured drawing size
func (c *Config) Viewport() models.Viewport {
	return models.Viewport{
		Width:  c.ChartWidth,
		Height: c.ChartHeight,
		Margin: models.Margin{
			Top:    c.MarginTop,
			Right:  c.MarginRight,
			Bottom: c.MarginBottom,
			Left:   c.MarginLeft,
		},
	}
}

// ChartOptions returns the engine tuning
func (c *Config) ChartOptions() charts.Options {
	return charts.Options{
		Headroom:  c.Headroom,
		HitRadius: c.HitRadius,
		FrameRate: c.FrameRate,
		TickCount: c.TickCount,
	}
}

// IsProduction reports whether ENVIRONMENT is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

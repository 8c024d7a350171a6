package dataset

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/logger"
	"xjewelchart/internal/models"
)

//go:embed sample/xjewel.json sample/prices.json
var sampleFS embed.FS

// ErrEmptyDataset is returned when a source decodes to zero points
var ErrEmptyDataset = errors.New("dataset: no data points")

// Envelope is the on-disk layout of the primary series
type Envelope struct {
	Data []models.RawPoint `json:"data"`
}

// Dataset is a loaded primary series with its optional price series
type Dataset struct {
	Points      []models.RawPoint
	Prices      []models.RawPricePoint
	Source      string
	PriceSource string
	LoadedAt    time.Time
}

// Loader reads datasets from files, HTTP URLs or the embedded sample
type Loader struct {
	client *resty.Client
	log    *logger.Logger
}

// NewLoader creates a loader. A nil client gets a resty client with a 30s timeout.
func NewLoader(client *resty.Client) *Loader {
	if client == nil {
		client = resty.New().
			SetTimeout(30*time.Second).
			SetRetryCount(2).
			SetHeader("Accept", "application/json")
	}
	return &Loader{client: client, log: logger.Component("dataset")}
}

// Load reads the primary series from dataSource and the price series from
// priceSource. An empty dataSource selects the embedded sample; an empty
// priceSource means no price overlay unless the sample is used.
func (l *Loader) Load(ctx context.Context, dataSource, priceSource string) (*Dataset, error) {
	ds := &Dataset{LoadedAt: time.Now().UTC()}

	if dataSource == "" {
		points, prices, err := Sample()
		if err != nil {
			return nil, err
		}
		ds.Points, ds.Source = points, "sample"
		if priceSource == "" {
			ds.Prices, ds.PriceSource = prices, "sample"
		}
	} else {
		raw, err := l.read(ctx, dataSource)
		if err != nil {
			return nil, err
		}
		if ds.Points, err = DecodePoints(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", dataSource, err)
		}
		ds.Source = dataSource
	}

	if priceSource != "" {
		raw, err := l.read(ctx, priceSource)
		if err != nil {
			return nil, err
		}
		if ds.Prices, err = DecodePrices(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", priceSource, err)
		}
		ds.PriceSource = priceSource
	}

	if idx := unsortedAt(ds.Points); idx >= 0 {
		l.log.Warn("primary series is not sorted by date", map[string]interface{}{
			"index": idx,
			"date":  ds.Points[idx].Date,
		})
	}
	l.log.Info("dataset loaded", map[string]interface{}{
		"source":       ds.Source,
		"points":       len(ds.Points),
		"price_source": ds.PriceSource,
		"prices":       len(ds.Prices),
	})
	return ds, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !isURL(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
		return data, nil
	}

	resp, err := l.client.R().
		SetContext(ctx).
		Get(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%s returned status %d", source, resp.StatusCode())
	}
	return resp.Body(), nil
}

// DecodePoints accepts either {"data": [...]} or a bare array of points
func DecodePoints(r io.Reader) ([]models.RawPoint, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)

	var points []models.RawPoint
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &points)
	} else {
		var env Envelope
		err = json.Unmarshal(raw, &env)
		points = env.Data
	}
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrEmptyDataset
	}
	return points, nil
}

// DecodePrices decodes a bare array of price samples
func DecodePrices(r io.Reader) ([]models.RawPricePoint, error) {
	var prices []models.RawPricePoint
	if err := json.NewDecoder(r).Decode(&prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// Sample returns the embedded example series
func Sample() ([]models.RawPoint, []models.RawPricePoint, error) {
	f, err := sampleFS.Open("sample/xjewel.json")
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	points, err := DecodePoints(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode sample series: %w", err)
	}

	pf, err := sampleFS.Open("sample/prices.json")
	if err != nil {
		return nil, nil, err
	}
	defer pf.Close()
	prices, err := DecodePrices(pf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode sample prices: %w", err)
	}
	return points, prices, nil
}

// unsortedAt returns the first index whose date is before its predecessor, or -1
func unsortedAt(points []models.RawPoint) int {
	for i := 1; i < len(points); i++ {
		if charts.ParseDate(points[i].Date).Before(charts.ParseDate(points[i-1].Date)) {
			return i
		}
	}
	return -1
}

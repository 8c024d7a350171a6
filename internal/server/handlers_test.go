package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/config"
	"xjewelchart/internal/dataset"
	"xjewelchart/internal/models"
	"xjewelchart/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:         "0",
		ChartWidth:   600,
		ChartHeight:  320,
		MarginTop:    20,
		MarginRight:  20,
		MarginBottom: 20,
		MarginLeft:   65,
		PageTitle:    "Whale Watch",
		StorageMode:  "local",
	}
	points, prices, err := dataset.Sample()
	require.NoError(t, err)

	store, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	s, err := NewServer(cfg, &dataset.Dataset{Points: points, Prices: prices, Source: "sample"}, store)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.SetupRoutes().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewServerRejectsEmptyDataset(t *testing.T) {
	store, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)
	_, err = NewServer(&config.Config{ChartWidth: 600, ChartHeight: 320}, &dataset.Dataset{}, store)
	assert.Error(t, err)
}

func TestHandleRoot(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Whale Watch</title>")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, `src="interactive.html"`)

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/nope").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(s, http.MethodPost, "/").Code)
}

func TestHandleChart(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/chart.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = serve(s, http.MethodGet, "/chart.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	assert.Equal(t, http.StatusBadRequest, serve(s, http.MethodGet, "/chart.svg?x=abc&y=1").Code)
}

func TestHandleChartHovered(t *testing.T) {
	s := newTestServer(t)
	p := s.Chart.Geometry().Points[3]

	rec := serve(s, http.MethodGet, fmt.Sprintf("/chart.svg?x=%f&y=%f", p.X, p.BankJewelY))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), charts.FormatLongDate(p.Time))
	assert.Equal(t, charts.PhaseIdle, s.Chart.Controller().Phase())
}

func TestHandleHover(t *testing.T) {
	s := newTestServer(t)
	p := s.Chart.Geometry().Points[5]

	rec := serve(s, http.MethodGet, fmt.Sprintf("/api/hover?x=%f&y=%f&sx=900&sy=700", p.X, p.CirculatingY))
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Phase     string               `json:"phase"`
		Pointer   *models.PointerState `json:"pointer"`
		Crosshair *charts.Crosshair    `json:"crosshair"`
		Tooltip   *charts.Tooltip      `json:"tooltip"`
		At        *struct {
			Date  string  `json:"date"`
			Value float64 `json:"value"`
		} `json:"at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "hovering", view.Phase)
	require.NotNil(t, view.Crosshair)
	require.NotNil(t, view.Tooltip)
	assert.Equal(t, 5, view.Tooltip.Index)
	assert.Equal(t, 900.0, view.Tooltip.X)
	assert.Equal(t, 700.0, view.Tooltip.Y)
	assert.Equal(t, "Date", view.Tooltip.Rows[0].Key)
	require.NotNil(t, view.At)
	assert.True(t, strings.HasPrefix(view.At.Date, p.Time.Format("2006-01-02")), view.At.Date)
	assert.InDelta(t, p.CirculatingJewel, view.At.Value, 1e-6)
}

func TestHandleHoverOutsidePlot(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/api/hover?x=5&y=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "crosshair")
	assert.NotContains(t, rec.Body.String(), "tooltip")
	assert.NotContains(t, rec.Body.String(), `"at"`)
}

func TestHandleHoverBadRequest(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/api/hover", "/api/hover?x=1", "/api/hover?x=1&y=z", "/api/hover?x=1&y=2&sx=q"} {
		rec := serve(s, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "error", target)
	}
}

func TestHandlePoints(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/api/points")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Points []models.ChartPoint `json:"points"`
		Count  int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 120, body.Count)
	assert.Len(t, body.Points, 120)
	assert.Equal(t, 65.0, body.Points[0].X)
}

func TestHandleInteractive(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/interactive.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Circulating Jewel")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(120), body["points"])
}

func TestGenerateListAndProxy(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/renders")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)

	assert.Equal(t, http.StatusMethodNotAllowed, serve(s, http.MethodGet, "/generate").Code)

	rec = serve(s, http.MethodPost, "/generate")
	require.Equal(t, http.StatusOK, rec.Code)
	var result struct {
		IndexPath string `json:"indexPath"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.IndexPath)

	rec = serve(s, http.MethodGet, "/renders?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/files/"+result.IndexPath)

	rec = serve(s, http.MethodGet, "/files/"+result.IndexPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	svgPath := strings.TrimSuffix(result.IndexPath, "index.html") + "chart.svg"
	rec = serve(s, http.MethodGet, "/files/"+svgPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/files/renders/none/index.html").Code)
	assert.Equal(t, http.StatusBadRequest, serve(s, http.MethodGet, "/files/").Code)
}

func TestHandleLatestRender(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/renders/latest").Code)

	require.Equal(t, http.StatusOK, serve(s, http.MethodPost, "/generate").Code)
	latest, err := storage.LatestRender(context.Background(), s.Storage)
	require.NoError(t, err)

	rec := serve(s, http.MethodGet, "/renders/latest")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/files/"+latest, rec.Header().Get("Location"))

	rec = serve(s, http.MethodGet, rec.Header().Get("Location"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	s.Config.Environment = "production"
	rec = serve(s, http.MethodGet, "/files/"+latest)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestGenerateConflict(t *testing.T) {
	s := newTestServer(t)

	s.generateMutex.Lock()
	defer s.generateMutex.Unlock()

	rec := serve(s, http.MethodPost, "/generate")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLimitParam(t *testing.T) {
	tests := map[string]int{"": 10, "3": 3, "-1": 10, "abc": 10, "500": 100}
	for in, want := range tests {
		q := make(map[string][]string)
		if in != "" {
			q["limit"] = []string{in}
		}
		assert.Equal(t, want, limitParam(q), in)
	}
}

package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/models"
	"xjewelchart/internal/render"
	"xjewelchart/internal/reports"
	"xjewelchart/internal/storage"
)

// HandleRoot serves the live chart page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	svg, err := s.renderer.Bytes(s.Chart.SceneWith(charts.View{Phase: charts.PhaseIdle}), render.FormatSVG)
	if err != nil {
		s.log.Error("Failed to render chart", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	caption := s.Config.Caption
	if caption == "" {
		caption = reports.DefaultCaption
	}
	page, err := s.Generator.Files().BuildPage(s.Chart, svg, caption, true, time.Now())
	if err != nil {
		s.log.Error("Failed to build page", err)
		http.Error(w, "Failed to build page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// pointerFromQuery reads x and y (plot-local) and optional sx and sy
// (screen) coordinates. Screen coordinates default to the local ones.
func pointerFromQuery(q url.Values) (models.PointerState, error) {
	x, err := floatParam(q, "x")
	if err != nil {
		return models.PointerState{}, err
	}
	y, err := floatParam(q, "y")
	if err != nil {
		return models.PointerState{}, err
	}
	sx, err := optionalFloatParam(q, "sx", x)
	if err != nil {
		return models.PointerState{}, err
	}
	sy, err := optionalFloatParam(q, "sy", y)
	if err != nil {
		return models.PointerState{}, err
	}
	return models.PointerState{ScreenX: sx, ScreenY: sy, LocalX: x, LocalY: y}, nil
}

// HandleChart renders the chart image. With ?x=&y= the image shows the
// crosshair and tooltip for that pointer position.
func (s *Server) HandleChart(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		view := charts.View{Phase: charts.PhaseIdle}
		q := r.URL.Query()
		if q.Has("x") || q.Has("y") {
			p, err := pointerFromQuery(q)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			view = s.Chart.Probe(p)
		}

		data, err := s.renderer.Bytes(s.Chart.SceneWith(view), format)
		if err != nil {
			s.log.Error("Failed to render chart", err, map[string]interface{}{"format": string(format)})
			http.Error(w, "Failed to render chart", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(data)
	}
}

// HandleInteractive serves the ECharts page
func (s *Server) HandleInteractive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	geometry := s.Chart.Geometry()
	page, err := reports.RenderInteractive(s.Config.PageTitle, s.Chart.Bounds().Viewport, geometry.Points, geometry.Prices)
	if err != nil {
		s.log.Error("Failed to render interactive chart", err)
		http.Error(w, "Failed to render interactive chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// HandlePoints returns the positioned points, prices and bounds
func (s *Server) HandlePoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	geometry := s.Chart.Geometry()
	bounds := s.Chart.Bounds()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points":   geometry.Points,
		"prices":   geometry.Prices,
		"viewport": bounds.Viewport,
		"domains": map[string]interface{}{
			"time":  bounds.Time,
			"value": bounds.Value,
			"price": bounds.Price,
		},
		"count": len(geometry.Points),
	})
}

// HandleHover resolves the crosshair and tooltip for a pointer position
func (s *Server) HandleHover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p, err := pointerFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := hoverResponse{View: s.Chart.Probe(p)}
	if date, value, ok := s.Chart.ValueAt(p.LocalX, p.LocalY); ok {
		resp.At = &hoverValue{Date: date.Round(time.Second).Format(time.RFC3339), Value: value}
	}
	writeJSON(w, http.StatusOK, resp)
}

// hoverValue is the date and value under the pointer
type hoverValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type hoverResponse struct {
	charts.View
	At *hoverValue `json:"at,omitempty"`
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
		"points":    len(s.Chart.Geometry().Points),
		"source":    s.Dataset.Source,
	})
}

// HandleGenerate stores a new render of the current dataset
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.generateMutex.TryLock() {
		s.log.Warn("Render already in progress, rejecting new request")
		writeError(w, http.StatusConflict, "render already in progress")
		return
	}
	defer s.generateMutex.Unlock()

	result, err := s.Generator.Generate(r.Context(), s.Dataset)
	if err != nil {
		s.log.Error("Render failed", err)
		writeError(w, http.StatusInternalServerError, "render failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleListRenders lists recent stored renders
func (s *Server) HandleListRenders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	renders, err := s.Storage.ListRenders(r.Context(), limitParam(r.URL.Query()))
	if err != nil {
		s.log.Error("Failed to list renders", err)
		writeError(w, http.StatusInternalServerError, "failed to list renders")
		return
	}

	urls := make([]string, len(renders))
	for i, p := range renders {
		urls[i] = "/files/" + p
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"renders":   urls,
		"count":     len(urls),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleLatestRender redirects to the newest stored render
func (s *Server) HandleLatestRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	latest, err := storage.LatestRender(r.Context(), s.Storage)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "No renders yet", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("Failed to find latest render", err)
		http.Error(w, "Failed to list renders", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/files/"+latest, http.StatusFound)
}

// HandleFileProxy serves stored artifacts from local storage or GCS
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" || strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.Storage.GetFile(r.Context(), filePath)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("Failed to get file from storage", err, map[string]interface{}{"path": filePath})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	// Stored renders never change once written
	if s.Config.IsProduction() {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}
	w.Write(data)
}

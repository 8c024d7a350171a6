package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/config"
	"xjewelchart/internal/dataset"
	"xjewelchart/internal/logger"
	"xjewelchart/internal/render"
	"xjewelchart/internal/reports"
	"xjewelchart/internal/storage"
)

// Server serves the live chart and the stored renders
type Server struct {
	Config    *config.Config
	Dataset   *dataset.Dataset
	Chart     *charts.Chart
	Generator *reports.Generator
	Storage   storage.ArtifactStore

	renderer      *render.SceneRenderer
	generateMutex sync.Mutex
	startedAt     time.Time
	log           *logger.Logger
}

// NewServer builds the live chart from ds
func NewServer(cfg *config.Config, ds *dataset.Dataset, store storage.ArtifactStore) (*Server, error) {
	chart := charts.New(cfg.ChartOptions())
	if err := chart.Update(ds.Points, ds.Prices, cfg.Viewport()); err != nil {
		chart.Close()
		return nil, fmt.Errorf("failed to build chart: %w", err)
	}

	return &Server{
		Config:    cfg,
		Dataset:   ds,
		Chart:     chart,
		Generator: reports.NewGenerator(cfg, store),
		Storage:   store,
		renderer:  render.NewDefault(),
		startedAt: time.Now(),
		log:       logger.Component("server"),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/chart.svg", s.HandleChart(render.FormatSVG))
	mux.HandleFunc("/chart.png", s.HandleChart(render.FormatPNG))
	mux.HandleFunc("/interactive.html", s.HandleInteractive)
	mux.HandleFunc("/api/points", s.HandlePoints)
	mux.HandleFunc("/api/hover", s.HandleHover)
	mux.HandleFunc("/generate", s.HandleGenerate)
	mux.HandleFunc("/renders", s.HandleListRenders)
	mux.HandleFunc("/renders/latest", s.HandleLatestRender)
	mux.HandleFunc("/files/", s.HandleFileProxy)

	// Root last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server listening", map[string]interface{}{"port": s.Config.Port})
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("Server stopped")
	return nil
}

// Close cleans up server resources
func (s *Server) Close() error {
	s.Chart.Close()
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}

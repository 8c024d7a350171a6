package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"xjewelchart/internal/charts"
	"xjewelchart/internal/models"
	"xjewelchart/internal/render"
	"xjewelchart/internal/reports"
	"xjewelchart/internal/server"
	"xjewelchart/internal/storage"
	"xjewelchart/internal/viewer"
)

func newRenderCmd() *cobra.Command {
	var (
		output string
		hoverX float64
		hoverY float64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart and store every artifact",
		Long: `Render the chart as SVG, PNG, an interactive ECharts page and an HTML page,
and store them under a timestamped folder in the configured storage.

With --output only a single image is written; its format follows the file
extension (.svg or .png). --x and --y render the hover state for that
pointer position.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, ds, err := setup(ctx)
			if err != nil {
				return err
			}

			if output != "" {
				hover := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
				return renderImage(cfg.ChartOptions(), cfg.Viewport(), ds.Points, ds.Prices, output, hover, hoverX, hoverY)
			}

			store, err := storage.NewArtifactStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := reports.NewGenerator(cfg, store).Generate(ctx, ds)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write a single .svg or .png image instead of a full render")
	cmd.Flags().Float64Var(&hoverX, "x", 0, "Pointer x in chart pixels (with --output)")
	cmd.Flags().Float64Var(&hoverY, "y", 0, "Pointer y in chart pixels (with --output)")
	return cmd
}

func renderImage(opts charts.Options, vp models.Viewport, points []models.RawPoint, prices []models.RawPricePoint, output string, hover bool, x, y float64) error {
	format, err := render.ParseFormat(strings.TrimPrefix(filepath.Ext(output), "."))
	if err != nil {
		return err
	}

	chart := charts.New(opts)
	defer chart.Close()
	if err := chart.Update(points, prices, vp); err != nil {
		return err
	}

	view := charts.View{Phase: charts.PhaseIdle}
	if hover {
		view = chart.Probe(models.PointerState{ScreenX: x, ScreenY: y, LocalX: x, LocalY: y})
	}

	data, err := render.NewDefault().Bytes(chart.SceneWith(view), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live chart, hover API and stored renders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, ds, err := setup(ctx)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			store, err := storage.NewArtifactStore(ctx, cfg)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(cfg, ds, store)
			if err != nil {
				store.Close()
				return err
			}
			defer srv.Close()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	return cmd
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the chart in a desktop window with live hover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, ds, err := setup(ctx)
			if err != nil {
				return err
			}

			chart := charts.New(cfg.ChartOptions())
			if err := chart.Update(ds.Points, ds.Prices, cfg.Viewport()); err != nil {
				chart.Close()
				return err
			}
			return viewer.New(cfg.PageTitle, chart).Run(ctx)
		},
	}
}

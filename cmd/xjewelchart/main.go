// Command xjewelchart renders, serves and displays the xJewel bank chart.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"xjewelchart/internal/config"
	"xjewelchart/internal/dataset"
	"xjewelchart/internal/logger"
)

var (
	dataFile  string
	priceFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xjewelchart",
		Short: "Chart Jewel locked in the xJewel bank against circulating Jewel",
		Long: `xjewelchart draws the xJewel bank as a stacked area chart on top of the
circulating Jewel supply, with an optional price line on a second axis.

Configuration comes from the environment (CHART_WIDTH, DATA_FILE, STORAGE_MODE, ...).
Without DATA_FILE the built-in sample dataset is used.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "Dataset file or URL (overrides DATA_FILE)")
	rootCmd.PersistentFlags().StringVar(&priceFile, "prices", "", "Price series file or URL (overrides PRICE_FILE)")

	rootCmd.AddCommand(newRenderCmd(), newServeCmd(), newViewCmd())
	return rootCmd
}

// setup loads configuration, applies logging settings and loads the dataset
func setup(ctx context.Context) (*config.Config, *dataset.Dataset, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger.Configure(logger.GetGlobalLogger(), cfg.LogLevel, cfg.LogFormat)

	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if priceFile != "" {
		cfg.PriceFile = priceFile
	}

	logger.Info("Starting xjewelchart", map[string]interface{}{
		"version":     config.GetVersion(),
		"environment": cfg.Environment,
		"storage":     cfg.StorageMode,
	})

	ds, err := dataset.NewLoader(nil).Load(ctx, cfg.DataFile, cfg.PriceFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return cfg, ds, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/anrid/population-stats/pkg/config"
	"github.com/anrid/population-stats/pkg/dashboard"
	"github.com/anrid/population-stats/pkg/stats"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr    string
		dataDir string
		open    bool
	)

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the interactive population dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}

			logger, err := config.NewLogger(cfg.LogLevel, cfg.Dev)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ds := stats.NewDataset(cfg.DataDir, cfg.Countries)
			loader := stats.NewLoader(ds, logger)
			cached := stats.NewCachedLoader(ds, loader, cfg.CacheSize, logger)

			srv, err := dashboard.NewServer(cached, ds, cfg.DefaultCountries, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = srv.ListenAndServe(ctx, cfg.HTTPAddr, func(url string) {
				if !open {
					return
				}
				if err := browser.OpenURL(url); err != nil {
					logger.Warn("Could not open browser", zap.Error(err))
				}
			})
			if err != nil {
				logger.Error("Dashboard stopped", zap.Error(err))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8501", "HTTP listen address (overrides POPSTATS_HTTP_ADDR)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory of the per-country data files (overrides POPSTATS_DATA_DIR)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the dashboard in a browser")

	return cmd
}

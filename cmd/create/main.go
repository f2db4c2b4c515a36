package main

import (
	"errors"
	"os"

	"github.com/anrid/population-stats/pkg/config"
	"github.com/anrid/population-stats/pkg/stats"
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
		source  string
		dataDir string
		force   bool
	)

	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Download the per-country population files into the data directory",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("source") {
				cfg.SourceURL = source
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cfg.SourceURL == "" {
				return errors.New("no source URL, set --source or POPSTATS_SOURCE_URL")
			}

			logger, err := config.NewLogger(cfg.LogLevel, cfg.Dev)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ds := stats.NewDataset(cfg.DataDir, cfg.Countries)
			f := &stats.Fetcher{BaseURL: cfg.SourceURL, Force: force, Logger: logger}
			if err := f.FetchAll(cmd.Context(), ds); err != nil {
				logger.Error("Download failed", zap.Error(err))
				return err
			}

			ds.Info(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Base URL of the remote data files (overrides POPSTATS_SOURCE_URL)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory of the per-country data files (overrides POPSTATS_DATA_DIR)")
	cmd.Flags().BoolVar(&force, "force", false, "Download files that are already present")

	return cmd
}

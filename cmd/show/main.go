package main

import (
	"fmt"
	"io"
	"os"

	"github.com/anrid/population-stats/pkg/config"
	"github.com/anrid/population-stats/pkg/stats"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		countries []string
		years     string
		ages      string
		dataDir   string
		dump      bool
	)

	cmd := &cobra.Command{
		Use:          "show",
		Short:        "Print population statistics for a selection",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if len(countries) == 0 {
				countries = cfg.DefaultCountries
			}

			logger, err := config.NewLogger(cfg.LogLevel, cfg.Dev)
			if err != nil {
				return err
			}
			defer logger.Sync()

			q := stats.Query{Countries: countries}
			if years != "" {
				r, err := stats.ParseRange(years)
				if err != nil {
					return err
				}
				q.Years = &r
			}
			if ages != "" {
				r, err := stats.ParseRange(ages)
				if err != nil {
					return err
				}
				q.Ages = &r
			}

			ds := stats.NewDataset(cfg.DataDir, cfg.Countries)
			v, err := stats.Compute(cmd.Context(), stats.NewLoader(ds, logger), q)
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(out, v)
				return nil
			}
			printView(out, v)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&countries, "country", "c", nil, "Country codes to include (default POPSTATS_DEFAULT_COUNTRIES)")
	cmd.Flags().StringVar(&years, "years", "", "Inclusive year range, e.g. 2000:2020")
	cmd.Flags().StringVar(&ages, "ages", "", "Inclusive age range, e.g. 0:80")
	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory of the per-country data files (overrides POPSTATS_DATA_DIR)")
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the whole computed view")

	return cmd
}

func printView(out io.Writer, v *stats.View) {
	// New locale number printer.
	p := message.NewPrinter(language.English)

	p.Fprintf(out, "\n\nPopulation Distribution from %d to %d (ages %d-%d)\n\n",
		v.Years.Min, v.Years.Max, v.Ages.Min, v.Ages.Max)

	if v.Empty() {
		fmt.Fprintln(out, "No records match the selection.")
		return
	}

	p.Fprintln(out, "Key Population Statistics:")
	p.Fprintf(out, "%-8s %16s %18s %14s %14s %16s %16s\n", "country", "mean", "sum", "max", "min", "median", "std")
	for _, s := range v.Stats {
		p.Fprintf(out, "%-8s %16.2f %18.f %14.f %14.f %16.2f %16.2f\n",
			s.Country, s.Mean, s.Sum, s.Max, s.Min, s.Median, s.Std)
	}

	p.Fprintln(out, "\nBy Gender:")
	for _, g := range v.Gender {
		p.Fprintf(out, "%-8s %18.f\n", g.Label, g.Population)
	}

	p.Fprintf(out, "\nRows: %d\n", len(v.Rows))
}

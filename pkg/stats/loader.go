package stats

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Source loads the concatenated table for a country selection.
type Source interface {
	Load(ctx context.Context, countries []string) (Table, error)
}

// Loader reads country files from a Dataset.
type Loader struct {
	dataset *Dataset
	logger  *zap.Logger
}

func NewLoader(ds *Dataset, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dataset: ds, logger: logger}
}

// Dataset returns the dataset the loader reads from.
func (l *Loader) Dataset() *Dataset {
	return l.dataset
}

// Load reads one file per country and concatenates them, tagging every row
// with its country code. Any missing or malformed file fails the whole load.
func (l *Loader) Load(ctx context.Context, countries []string) (Table, error) {
	set, err := l.dataset.Normalize(countries)
	if err != nil {
		return nil, err
	}

	var all Table
	for _, c := range set {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := l.LoadCountry(c)
		if err != nil {
			return nil, err
		}
		all = append(all, t...)
	}

	return all, nil
}

// LoadCountry reads the data file of a single country.
func (l *Loader) LoadCountry(country string) (Table, error) {
	f, err := l.dataset.Locate(country)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Loading country data",
		zap.String("country", country),
		zap.String("path", f.Path))

	t, err := ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", country, err)
	}

	l.logger.Debug("Loaded country data",
		zap.String("country", country),
		zap.Int("rows", len(t)))

	return t, nil
}

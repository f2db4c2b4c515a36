package stats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FetchDelay is the pause between two downloads so the source is not
// hammered.
var FetchDelay = 250 * time.Millisecond

// Fetcher downloads country CSV files from a remote base URL into a Dataset
// directory. The remote layout must mirror the local file names.
type Fetcher struct {
	BaseURL string
	Client  *http.Client
	Logger  *zap.Logger

	// Force downloads files that are already present.
	Force bool
}

// FileURL returns the remote location of a country's CSV file.
func (f *Fetcher) FileURL(country string) string {
	return strings.TrimSuffix(f.BaseURL, "/") + "/" + FileBaseName(country) + FormatCSV.Ext()
}

// FetchAll downloads every country of the dataset, stopping at the first
// failure. Countries with a local file are skipped unless Force is set.
func (f *Fetcher) FetchAll(ctx context.Context, ds *Dataset) error {
	if err := os.MkdirAll(ds.Dir, 0o755); err != nil {
		return err
	}

	var downloaded int
	for _, c := range ds.Countries {
		if _, err := ds.Locate(c); err == nil && !f.Force {
			f.logger().Info("Already present, skipping", zap.String("country", c))
			continue
		}

		if downloaded > 0 && FetchDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(FetchDelay):
			}
		}

		if err := f.Fetch(ctx, ds, c); err != nil {
			return err
		}
		downloaded++
	}

	return nil
}

// Fetch downloads a single country file. The file is written to a temporary
// name first and renamed once complete.
func (f *Fetcher) Fetch(ctx context.Context, ds *Dataset, country string) error {
	url := f.FileURL(country)
	f.logger().Info("Download", zap.String("country", country), zap.String("url", url))

	data, err := f.download(ctx, url)
	if err != nil {
		return err
	}

	dst := filepath.Join(ds.Dir, FileBaseName(country)+FormatCSV.Ext())
	tmp := dst + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return &http.Client{Timeout: time.Minute}
}

func (f *Fetcher) logger() *zap.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return zap.NewNop()
}

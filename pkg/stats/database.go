package stats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoCountries is returned when a load is requested for an empty
	// country selection.
	ErrNoCountries = errors.New("no countries selected")

	// ErrUnknownCountry is returned for a country code outside the
	// supported list.
	ErrUnknownCountry = errors.New("unknown country")
)

// SupportedCountries is the default list of countries offered by the
// dashboard.
var SupportedCountries = []string{"abw", "usa", "chn", "ind", "bra", "can", "mex", "deu", "fra", "jpn"}

// DefaultCountries is the initial selection.
var DefaultCountries = []string{"usa", "chn", "ind"}

const (
	filePrefix = "ddf--datapoints--population--by--country-"
	fileSuffix = "--age--gender--year"
)

// FileBaseName returns the data file name for a country, without extension.
//
// For example:
// usa : "ddf--datapoints--population--by--country-usa--age--gender--year"
func FileBaseName(country string) string {
	return filePrefix + country + fileSuffix
}

// Dataset describes where the per-country population files live and which
// countries may be requested.
type Dataset struct {
	Dir       string
	Countries []string
}

func NewDataset(dir string, countries []string) *Dataset {
	if len(countries) == 0 {
		countries = SupportedCountries
	}
	return &Dataset{Dir: dir, Countries: countries}
}

// Supports reports whether the country code is in the supported list.
func (ds *Dataset) Supports(country string) bool {
	for _, c := range ds.Countries {
		if c == country {
			return true
		}
	}
	return false
}

// Normalize turns a selection into a canonical country set: trimmed,
// lower-cased, de-duplicated and sorted. Every code must be supported.
func (ds *Dataset) Normalize(countries []string) ([]string, error) {
	seen := make(map[string]bool, len(countries))
	out := make([]string, 0, len(countries))

	for _, c := range countries {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		if !ds.Supports(c) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, c)
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrNoCountries
	}

	sort.Strings(out)
	return out, nil
}

// Locate finds the data file for a country. CSV is preferred, then XLSX,
// then XLS.
func (ds *Dataset) Locate(country string) (*File, error) {
	base := filepath.Join(ds.Dir, FileBaseName(country))

	for _, format := range []Format{FormatCSV, FormatXLSX, FormatXLS} {
		path := base + format.Ext()
		_, err := os.Stat(path)
		if err == nil {
			return &File{Country: country, Path: path, Format: format}, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	return nil, fmt.Errorf("no data file for country %q: %w", country, &os.PathError{
		Op:   "open",
		Path: base + FormatCSV.Ext(),
		Err:  os.ErrNotExist,
	})
}

// Info writes a short description of the dataset: which country files are
// present and in which format.
func (ds *Dataset) Info(w io.Writer) {
	var found, missing []string
	for _, c := range ds.Countries {
		f, err := ds.Locate(c)
		if err != nil {
			missing = append(missing, c)
			continue
		}
		found = append(found, c+f.Format.Ext())
	}

	fmt.Fprintf(w, `
	Data Dir  : %s
	Countries : %d
	Found     : %s
	Missing   : %s
	`, ds.Dir, len(ds.Countries), strings.Join(found, " "), strings.Join(missing, " "))
	fmt.Fprintln(w, "")
}

package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/anrid/population-stats/pkg/stats"
)

// Query string parameters of the dashboard form.
const (
	paramCountry   = "country"
	paramYearMin   = "year_min"
	paramYearMax   = "year_max"
	paramAgeMin    = "age_min"
	paramAgeMax    = "age_max"
	paramSubmitted = "s"
)

// parseQuery reads a selection from the query string. A request without any
// country and without the form marker selects the defaults; a submitted form
// with no country is an empty selection.
func parseQuery(v url.Values, defaults []string) (stats.Query, error) {
	var q stats.Query

	for _, c := range v[paramCountry] {
		for _, part := range strings.Split(c, ",") {
			if part = strings.TrimSpace(part); part != "" {
				q.Countries = append(q.Countries, part)
			}
		}
	}
	if len(q.Countries) == 0 && v.Get(paramSubmitted) == "" {
		q.Countries = append([]string(nil), defaults...)
	}

	var err error
	if q.Years, err = parseBounds(v, paramYearMin, paramYearMax, stats.DefaultYears); err != nil {
		return q, err
	}
	if q.Ages, err = parseBounds(v, paramAgeMin, paramAgeMax, stats.DefaultAges); err != nil {
		return q, err
	}

	return q, nil
}

// parseBounds returns nil when neither bound is given. A single given bound
// is paired with the matching default.
func parseBounds(v url.Values, minKey, maxKey string, def stats.Range) (*stats.Range, error) {
	lo, hi := v.Get(minKey), v.Get(maxKey)
	if lo == "" && hi == "" {
		return nil, nil
	}

	r := def
	if lo != "" {
		n, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", minKey, lo)
		}
		r.Min = n
	}
	if hi != "" {
		n, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", maxKey, hi)
		}
		r.Max = n
	}

	return &r, nil
}

// encodeView turns an effective selection back into a query string, used
// for export links.
func encodeView(v *stats.View) string {
	q := url.Values{}
	q.Set(paramSubmitted, "1")
	for _, c := range v.Countries {
		q.Add(paramCountry, c)
	}
	q.Set(paramYearMin, strconv.Itoa(v.Years.Min))
	q.Set(paramYearMax, strconv.Itoa(v.Years.Max))
	q.Set(paramAgeMin, strconv.Itoa(v.Ages.Min))
	q.Set(paramAgeMax, strconv.Itoa(v.Ages.Max))
	return q.Encode()
}

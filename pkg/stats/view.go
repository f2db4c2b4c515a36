package stats

import "context"

// Query is a dashboard selection. Nil ranges fall back to DefaultYears and
// DefaultAges. Every range is clamped to the extents of the loaded data.
type Query struct {
	Countries []string
	Years     *Range
	Ages      *Range
}

// View is everything the dashboard shows for one Query.
type View struct {
	Countries  []string          `json:"countries"`
	YearBounds Range             `json:"year_bounds"`
	AgeBounds  Range             `json:"age_bounds"`
	Years      Range             `json:"years"`
	Ages       Range             `json:"ages"`
	TimeSeries []TimeSeriesPoint `json:"time_series"`
	Stats      []CountryStats    `json:"stats"`
	AgeTotals  []AgeTotal        `json:"age_totals"`
	Gender     []GenderTotal     `json:"gender_totals"`
	Rows       Table             `json:"rows"`

	// Loaded is set when the loaded table had any rows, so the bounds are
	// meaningful even if nothing matched the ranges.
	Loaded bool `json:"loaded"`
}

// Empty reports whether no record matched the selection.
func (v *View) Empty() bool {
	return len(v.Rows) == 0
}

// BuildView filters and aggregates a loaded table. It is a pure function of
// its inputs.
func BuildView(t Table, q Query) *View {
	v := &View{Countries: t.Countries()}
	if len(v.Countries) == 0 {
		v.Countries = q.Countries
	}

	years, ages := DefaultYears, DefaultAges
	if q.Years != nil {
		years = *q.Years
	}
	if q.Ages != nil {
		ages = *q.Ages
	}

	yb, ab, ok := Extents(t)
	if !ok {
		v.Years, v.Ages = years, ages
		return v
	}

	v.Loaded = true
	v.YearBounds, v.AgeBounds = yb, ab
	v.Years, v.Ages = years.Clamp(yb), ages.Clamp(ab)

	v.Rows = Filter(t, v.Years, v.Ages)
	v.TimeSeries = TimeSeries(v.Rows)
	v.Stats = SummarizeByCountry(v.Rows)
	v.AgeTotals = AgeTotals(v.Rows)
	v.Gender = GenderTotals(v.Rows)

	return v
}

// Compute loads the selected countries from src and builds their View.
func Compute(ctx context.Context, src Source, q Query) (*View, error) {
	t, err := src.Load(ctx, q.Countries)
	if err != nil {
		return nil, err
	}
	return BuildView(t, q), nil
}

package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var (
	DefaultYears = Range{Min: 2000, Max: 2020}
	DefaultAges  = Range{Min: 0, Max: 80}
)

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp orders the range and restricts it to bounds.
func (r Range) Clamp(bounds Range) Range {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if r.Min < bounds.Min {
		r.Min = bounds.Min
	}
	if r.Max > bounds.Max {
		r.Max = bounds.Max
	}
	if r.Min > bounds.Max {
		r.Min = bounds.Max
	}
	if r.Max < bounds.Min {
		r.Max = bounds.Min
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Min, r.Max)
}

// ParseRange parses "min:max" or a single value "v" meaning v:v.
func ParseRange(s string) (Range, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), ":")
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if !found {
		return Range{Min: from, Max: from}, nil
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return Range{Min: from, Max: to}, nil
}

// Filter returns the rows whose year and age fall inside both ranges.
func Filter(t Table, years, ages Range) Table {
	out := make(Table, 0, len(t))
	for _, r := range t {
		if years.Contains(r.Year) && ages.Contains(r.Age) {
			out = append(out, r)
		}
	}
	return out
}

// Extents returns the observed year and age bounds of the table. ok is false
// for an empty table.
func Extents(t Table) (years, ages Range, ok bool) {
	if len(t) == 0 {
		return Range{}, Range{}, false
	}

	years = Range{Min: t[0].Year, Max: t[0].Year}
	ages = Range{Min: t[0].Age, Max: t[0].Age}
	for _, r := range t[1:] {
		years.Min = min(years.Min, r.Year)
		years.Max = max(years.Max, r.Year)
		ages.Min = min(ages.Min, r.Age)
		ages.Max = max(ages.Max, r.Age)
	}

	return years, ages, true
}

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TimeSeriesPoint is the total population of a country in a year.
type TimeSeriesPoint struct {
	Year       int     `json:"year"`
	Country    string  `json:"country"`
	Population float64 `json:"population"`
}

// Summary holds descriptive statistics of a set of population values.
// Std and Variance use the population divisor n. SampleStd and
// SampleVariance use n-1 and are nil when fewer than two values exist.
type Summary struct {
	Count          int      `json:"count"`
	Mean           float64  `json:"mean"`
	Sum            float64  `json:"sum"`
	Max            float64  `json:"max"`
	Min            float64  `json:"min"`
	Median         float64  `json:"median"`
	Std            float64  `json:"std"`
	Variance       float64  `json:"var"`
	SampleStd      *float64 `json:"sample_std"`
	SampleVariance *float64 `json:"sample_var"`
}

// CountryStats is the Summary of one country's population values.
type CountryStats struct {
	Country string `json:"country"`
	Summary
}

type AgeTotal struct {
	Age        int     `json:"age"`
	Population float64 `json:"population"`
}

type GenderTotal struct {
	Gender     Gender  `json:"gender"`
	Label      string  `json:"label"`
	Population float64 `json:"population"`
}

// TimeSeries sums population per (year, country), ordered by year then
// country.
func TimeSeries(t Table) []TimeSeriesPoint {
	type key struct {
		year    int
		country string
	}

	sums := make(map[key]float64)
	for _, r := range t {
		sums[key{r.Year, r.Country}] += r.Population
	}

	out := make([]TimeSeriesPoint, 0, len(sums))
	for k, v := range sums {
		out = append(out, TimeSeriesPoint{Year: k.year, Country: k.country, Population: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Country < out[j].Country
	})

	return out
}

// SummarizeByCountry describes the population values of each country,
// ordered by country code.
func SummarizeByCountry(t Table) []CountryStats {
	groups := make(map[string][]float64)
	for _, r := range t {
		groups[r.Country] = append(groups[r.Country], r.Population)
	}

	out := make([]CountryStats, 0, len(groups))
	for c, values := range groups {
		out = append(out, CountryStats{Country: c, Summary: Describe(values)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Country < out[j].Country
	})

	return out
}

// Describe computes the Summary of values. An empty input yields a zero
// Count and NaN statistics.
func Describe(values []float64) Summary {
	n := len(values)
	if n == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Max: nan, Min: nan, Median: nan, Std: nan, Variance: nan}
	}

	s := Summary{
		Count:  n,
		Sum:    floats.Sum(values),
		Max:    floats.Max(values),
		Min:    floats.Min(values),
		Median: median(values),
	}
	s.Mean, s.Variance = stat.PopMeanVariance(values, nil)
	s.Std = math.Sqrt(s.Variance)

	if n > 1 {
		_, v := stat.MeanVariance(values, nil)
		sd := math.Sqrt(v)
		s.SampleVariance = &v
		s.SampleStd = &sd
	}

	return s
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// AgeTotals sums population per age, ordered by age.
func AgeTotals(t Table) []AgeTotal {
	sums := make(map[int]float64)
	for _, r := range t {
		sums[r.Age] += r.Population
	}

	out := make([]AgeTotal, 0, len(sums))
	for age, v := range sums {
		out = append(out, AgeTotal{Age: age, Population: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Age < out[j].Age
	})

	return out
}

// GenderTotals sums population per gender. Only the Male and Female codes
// are counted, so at most two groups are returned, Male first.
func GenderTotals(t Table) []GenderTotal {
	var sums [3]float64
	var present [3]bool
	for _, r := range t {
		if !r.Gender.Valid() {
			continue
		}
		sums[r.Gender] += r.Population
		present[r.Gender] = true
	}

	var out []GenderTotal
	for _, g := range []Gender{Male, Female} {
		if present[g] {
			out = append(out, GenderTotal{Gender: g, Label: g.String(), Population: sums[g]})
		}
	}

	return out
}

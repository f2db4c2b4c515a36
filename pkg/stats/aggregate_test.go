package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSeries(t *testing.T) {
	points := TimeSeries(sampleTable())

	assert.Equal(t, []TimeSeriesPoint{
		{Year: 2009, Country: "usa", Population: 10},
		{Year: 2010, Country: "chn", Population: 50},
		{Year: 2010, Country: "usa", Population: 90},
		{Year: 2011, Country: "chn", Population: 60},
		{Year: 2012, Country: "chn", Population: 70},
	}, points)
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{4, 1, 3, 2})

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 10, s.Sum, 1e-12)
	assert.InDelta(t, 4, s.Max, 1e-12)
	assert.InDelta(t, 1, s.Min, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	assert.InDelta(t, 1.25, s.Variance, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), s.Std, 1e-12)
	require.NotNil(t, s.SampleVariance)
	require.NotNil(t, s.SampleStd)
	assert.InDelta(t, 5.0/3.0, *s.SampleVariance, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), *s.SampleStd, 1e-12)
}

func TestDescribeSingleValue(t *testing.T) {
	s := Describe([]float64{7})

	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 7.0, s.Median)
	assert.Equal(t, 0.0, s.Variance)
	assert.Equal(t, 0.0, s.Std)
	assert.Nil(t, s.SampleVariance)
	assert.Nil(t, s.SampleStd)
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)

	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Median))
}

func TestSummarizeByCountry(t *testing.T) {
	stats := SummarizeByCountry(sampleTable())
	require.Len(t, stats, 2)

	assert.Equal(t, "chn", stats[0].Country)
	assert.Equal(t, 3, stats[0].Count)
	assert.InDelta(t, 60, stats[0].Median, 1e-12)

	assert.Equal(t, "usa", stats[1].Country)
	assert.InDelta(t, 100, stats[1].Sum, 1e-12)
	assert.InDelta(t, 25, stats[1].Mean, 1e-12)
}

func TestSummarySumMatchesTimeSeries(t *testing.T) {
	table := Filter(sampleTable(), Range{Min: 2009, Max: 2012}, Range{Min: 0, Max: 80})

	fromSeries := make(map[string]float64)
	for _, p := range TimeSeries(table) {
		fromSeries[p.Country] += p.Population
	}

	for _, s := range SummarizeByCountry(table) {
		assert.InDelta(t, fromSeries[s.Country], s.Sum, 1e-9, "country %s", s.Country)
	}
}

func TestAgeTotals(t *testing.T) {
	assert.Equal(t, []AgeTotal{
		{Age: 0, Population: 110},
		{Age: 1, Population: 40},
		{Age: 2, Population: 60},
		{Age: 90, Population: 70},
	}, AgeTotals(sampleTable()))
}

func TestGenderTotals(t *testing.T) {
	table := append(sampleTable(), Record{Country: "usa", Year: 2010, Gender: Gender(3), Population: 1000})

	totals := GenderTotals(table)
	assert.Equal(t, []GenderTotal{
		{Gender: Male, Label: "Male", Population: 130},
		{Gender: Female, Label: "Female", Population: 150},
	}, totals)
}

func TestGenderTotalsSingleGender(t *testing.T) {
	totals := GenderTotals(Table{{Gender: Female, Population: 5}})

	require.Len(t, totals, 1)
	assert.Equal(t, "Female", totals[0].Label)
	assert.Empty(t, GenderTotals(nil))
}

func TestGenderString(t *testing.T) {
	assert.Equal(t, "Male", Male.String())
	assert.Equal(t, "Female", Female.String())
	assert.Equal(t, "Unknown", Gender(0).String())
}

package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildViewClampsDefaultsToExtents(t *testing.T) {
	v := BuildView(sampleTable(), Query{})

	assert.Equal(t, Range{Min: 2009, Max: 2012}, v.YearBounds)
	assert.Equal(t, Range{Min: 0, Max: 90}, v.AgeBounds)
	assert.Equal(t, Range{Min: 2009, Max: 2012}, v.Years)
	assert.Equal(t, Range{Min: 0, Max: 80}, v.Ages)

	// The age 90 row is outside the default age range.
	assert.Len(t, v.Rows, 6)
	assert.Equal(t, []string{"usa", "chn"}, v.Countries)
}

func TestBuildViewAggregatesFilteredRows(t *testing.T) {
	years := Range{Min: 2010, Max: 2010}
	ages := Range{Min: 0, Max: 0}
	v := BuildView(sampleTable(), Query{Years: &years, Ages: &ages})

	require.Len(t, v.Rows, 3)
	assert.Equal(t, []TimeSeriesPoint{
		{Year: 2010, Country: "chn", Population: 50},
		{Year: 2010, Country: "usa", Population: 50},
	}, v.TimeSeries)
	assert.Equal(t, []AgeTotal{{Age: 0, Population: 100}}, v.AgeTotals)
	require.Len(t, v.Gender, 2)
	require.Len(t, v.Stats, 2)
	assert.False(t, v.Empty())
}

func TestBuildViewKeepsBoundsWhenNothingMatches(t *testing.T) {
	years := Range{Min: 2011, Max: 2011}
	ages := Range{Min: 90, Max: 90}
	v := BuildView(sampleTable(), Query{Years: &years, Ages: &ages})

	assert.True(t, v.Empty())
	assert.True(t, v.Loaded)
	assert.Equal(t, Range{Min: 2009, Max: 2012}, v.YearBounds)
	assert.Equal(t, Range{Min: 0, Max: 90}, v.AgeBounds)
	assert.Equal(t, years, v.Years)
	assert.Equal(t, ages, v.Ages)
}

func TestBuildViewEmptyTable(t *testing.T) {
	v := BuildView(nil, Query{Countries: []string{"usa"}})

	assert.True(t, v.Empty())
	assert.False(t, v.Loaded)
	assert.Equal(t, []string{"usa"}, v.Countries)
	assert.Equal(t, DefaultYears, v.Years)
	assert.Empty(t, v.Stats)
}

func TestComputeEmptySelection(t *testing.T) {
	l := NewLoader(newTestDataset(t), nil)

	_, err := Compute(context.Background(), l, Query{})
	assert.ErrorIs(t, err, ErrNoCountries)
}

func TestComputeScenario(t *testing.T) {
	l := NewLoader(newTestDataset(t), nil)
	years := Range{Min: 2010, Max: 2010}
	ages := Range{Min: 0, Max: 0}

	v, err := Compute(context.Background(), l, Query{Countries: []string{"usa"}, Years: &years, Ages: &ages})
	require.NoError(t, err)

	assert.Equal(t, Table{
		{Country: "usa", Year: 2010, Age: 0, Gender: Male, Population: 2000},
		{Country: "usa", Year: 2010, Age: 0, Gender: Female, Population: 1900},
	}, v.Rows)
	assert.Equal(t, []GenderTotal{
		{Gender: Male, Label: "Male", Population: 2000},
		{Gender: Female, Label: "Female", Population: 1900},
	}, v.Gender)
}

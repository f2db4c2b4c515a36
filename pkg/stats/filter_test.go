package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterInclusiveBounds(t *testing.T) {
	years := Range{Min: 2010, Max: 2011}
	ages := Range{Min: 0, Max: 2}

	out := Filter(sampleTable(), years, ages)
	require.Len(t, out, 5)
	for _, r := range out {
		assert.True(t, years.Contains(r.Year), "year %d outside %v", r.Year, years)
		assert.True(t, ages.Contains(r.Age), "age %d outside %v", r.Age, ages)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	years := Range{Min: 2010, Max: 2012}
	ages := Range{Min: 0, Max: 1}

	once := Filter(sampleTable(), years, ages)
	twice := Filter(once, years, ages)
	assert.Equal(t, once, twice)
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	in := sampleTable()
	_ = Filter(in, Range{Min: 2010, Max: 2010}, Range{Min: 0, Max: 0})
	assert.Equal(t, sampleTable(), in)
}

func TestFilterSingleYearAndAge(t *testing.T) {
	l := NewLoader(newTestDataset(t), nil)
	table, err := l.Load(context.Background(), []string{"usa"})
	require.NoError(t, err)

	out := Filter(table, Range{Min: 2010, Max: 2010}, Range{Min: 0, Max: 0})
	assert.Equal(t, Table{
		{Country: "usa", Year: 2010, Age: 0, Gender: Male, Population: 2000},
		{Country: "usa", Year: 2010, Age: 0, Gender: Female, Population: 1900},
	}, out)
}

func TestExtents(t *testing.T) {
	years, ages, ok := Extents(sampleTable())
	require.True(t, ok)
	assert.Equal(t, Range{Min: 2009, Max: 2012}, years)
	assert.Equal(t, Range{Min: 0, Max: 90}, ages)

	_, _, ok = Extents(nil)
	assert.False(t, ok)
}

func TestRangeClamp(t *testing.T) {
	bounds := Range{Min: 1950, Max: 2100}

	tests := []struct {
		in, want Range
	}{
		{Range{2000, 2020}, Range{2000, 2020}},
		{Range{1900, 2020}, Range{1950, 2020}},
		{Range{2000, 2200}, Range{2000, 2100}},
		{Range{2020, 2000}, Range{2000, 2020}},
		{Range{2200, 2300}, Range{2100, 2100}},
		{Range{1800, 1900}, Range{1950, 1950}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Clamp(bounds), "clamp %v", tt.in)
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2000:2020")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 2000, Max: 2020}, r)

	r, err = ParseRange(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 7, Max: 7}, r)

	_, err = ParseRange("a:b")
	assert.Error(t, err)
	_, err = ParseRange("1:")
	assert.Error(t, err)
}

package dashboard

import (
	"net/url"
	"testing"

	"github.com/anrid/population-stats/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryDefaults(t *testing.T) {
	q, err := parseQuery(url.Values{}, []string{"usa", "chn", "ind"})
	require.NoError(t, err)

	assert.Equal(t, []string{"usa", "chn", "ind"}, q.Countries)
	assert.Nil(t, q.Years)
	assert.Nil(t, q.Ages)
}

func TestParseQuerySubmittedWithoutCountries(t *testing.T) {
	q, err := parseQuery(url.Values{"s": {"1"}}, []string{"usa"})
	require.NoError(t, err)
	assert.Empty(t, q.Countries)
}

func TestParseQueryBounds(t *testing.T) {
	v, err := url.ParseQuery("country=usa,chn&country=ind&year_min=1990&age_max=10")
	require.NoError(t, err)

	q, err := parseQuery(v, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"usa", "chn", "ind"}, q.Countries)
	require.NotNil(t, q.Years)
	assert.Equal(t, stats.Range{Min: 1990, Max: stats.DefaultYears.Max}, *q.Years)
	require.NotNil(t, q.Ages)
	assert.Equal(t, stats.Range{Min: stats.DefaultAges.Min, Max: 10}, *q.Ages)
}

func TestParseQueryInvalid(t *testing.T) {
	_, err := parseQuery(url.Values{"age_min": {"x"}}, nil)
	assert.ErrorContains(t, err, "age_min")
}

func TestEncodeViewRoundTrip(t *testing.T) {
	in := &stats.View{
		Countries: []string{"usa"},
		Years:     stats.Range{Min: 2000, Max: 2005},
		Ages:      stats.Range{Min: 1, Max: 2},
	}

	v, err := url.ParseQuery(encodeView(in))
	require.NoError(t, err)

	q, err := parseQuery(v, []string{"chn"})
	require.NoError(t, err)
	assert.Equal(t, []string{"usa"}, q.Countries)
	assert.Equal(t, in.Years, *q.Years)
	assert.Equal(t, in.Ages, *q.Ages)
}

package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/anrid/population-stats/pkg/stats"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned by chart renderers given nothing to draw.
var ErrNoData = errors.New("no data to chart")

var countryPalette = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

var genderPalette = []color.RGBA{
	{R: 0x8d, G: 0xd3, B: 0xc7, A: 0xff},
	{R: 0xbe, G: 0xba, B: 0xda, A: 0xff},
}

// TrendChart renders total population per country over time as an SVG line
// chart, one series per country.
func TrendChart(points []stats.TimeSeriesPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	byCountry := make(map[string]*chart.ContinuousSeries)
	var countries []string
	minYear, maxYear := points[0].Year, points[0].Year
	minPop, maxPop := points[0].Population, points[0].Population

	for _, p := range points {
		s, ok := byCountry[p.Country]
		if !ok {
			s = &chart.ContinuousSeries{Name: p.Country}
			byCountry[p.Country] = s
			countries = append(countries, p.Country)
		}
		s.XValues = append(s.XValues, float64(p.Year))
		s.YValues = append(s.YValues, p.Population)

		minYear, maxYear = min(minYear, p.Year), max(maxYear, p.Year)
		minPop, maxPop = math.Min(minPop, p.Population), math.Max(maxPop, p.Population)
	}
	sort.Strings(countries)

	var series []chart.Series
	for i, c := range countries {
		col := drawing.ColorFromHex(countryPalette[i%len(countryPalette)])
		s := byCountry[c]
		s.Style = chart.Style{
			StrokeColor: col,
			StrokeWidth: 2,
			DotColor:    col,
			DotWidth:    3,
		}
		series = append(series, *s)
	}

	graph := chart.Chart{
		Title:  "Total Population by Country Over Time",
		Width:  1100,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Year",
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Total Population",
			ValueFormatter: populationFormatter,
		},
		Series: series,
	}

	// A single year or a flat line has a zero-width range.
	if minYear == maxYear {
		graph.XAxis.Range = &chart.ContinuousRange{Min: float64(minYear - 1), Max: float64(maxYear + 1)}
	}
	if minPop == maxPop {
		graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: nonZero(maxPop) * 1.1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}

	return inlineSVG(buf.Bytes()), nil
}

// AgeChart renders population per age as bars shaded by age, light blue for
// the youngest and dark blue for the oldest.
func AgeChart(totals []stats.AgeTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, ErrNoData
	}

	minAge, maxAge := totals[0].Age, totals[len(totals)-1].Age
	var maxPop float64
	bars := make([]chart.Value, len(totals))

	for i, t := range totals {
		col := blues(float64(t.Age-minAge) / float64(nonZeroInt(maxAge-minAge)))

		label := ""
		if t.Age%10 == 0 || len(totals) <= 20 {
			label = strconv.Itoa(t.Age)
		}
		bars[i] = chart.Value{
			Value: t.Population,
			Label: label,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		}
		maxPop = math.Max(maxPop, t.Population)
	}

	const barWidth, barSpacing = 6, 2
	width := max(540, len(bars)*(barWidth+barSpacing)+140)

	graph := chart.BarChart{
		Title:  "Population by Age Group",
		Width:  width,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: nonZero(maxPop) * 1.05},
			ValueFormatter: populationFormatter,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render age chart: %w", err)
	}

	return inlineSVG(buf.Bytes()), nil
}

// GenderChart renders population per gender as horizontal bars.
func GenderChart(totals []stats.GenderTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Population Distribution by Gender"
	p.X.Label.Text = "Population"
	p.Y.Label.Text = "Gender"
	p.X.Min = 0
	p.X.Tick.Marker = populationTicks{}

	labels := make([]string, len(totals))
	for i, t := range totals {
		bars, err := plotter.NewBarChart(plotter.Values{t.Population}, vg.Points(60))
		if err != nil {
			return nil, fmt.Errorf("render gender chart: %w", err)
		}
		bars.Horizontal = true
		bars.XMin = float64(i)
		bars.Color = genderPalette[i%len(genderPalette)]
		bars.LineStyle.Width = 0

		p.Add(bars)
		labels[i] = t.Label
	}
	p.NominalY(labels...)

	wt, err := p.WriterTo(6*vg.Inch, 5*vg.Inch, "svg")
	if err != nil {
		return nil, fmt.Errorf("render gender chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render gender chart: %w", err)
	}

	return inlineSVG(buf.Bytes()), nil
}

// populationTicks wraps the default ticker with grouped number labels.
type populationTicks struct{}

func (populationTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = formatCompact(ticks[i].Value)
		}
	}
	return ticks
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}

func populationFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatCompact(f)
	}
	return ""
}

// blues maps t in [0, 1] onto a light-to-dark blue scale.
func blues(t float64) drawing.Color {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))

	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	// #deebf7 to #08306b
	return drawing.Color{R: lerp(0xde, 0x08), G: lerp(0xeb, 0x30), B: lerp(0xf7, 0x6b), A: 0xff}
}

// inlineSVG drops anything before the <svg> element so the document can be
// embedded in HTML.
func inlineSVG(doc []byte) []byte {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		return doc[i:]
	}
	return doc
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func nonZeroInt(v int) int {
	if v == 0 {
		return 1
	}
	return v
}

package dashboard

import (
	"html/template"

	"github.com/anrid/population-stats/pkg/stats"
)

type countryOption struct {
	Code     string
	Selected bool
}

// page is the data of the index template.
type page struct {
	Options []countryOption
	Notice  string
	Error   string

	View        *stats.View
	TrendSVG    template.HTML
	AgeSVG      template.HTML
	GenderSVG   template.HTML
	Rows        stats.Table
	Truncated   bool
	ExportQuery string
}

func (s *Server) newPage() *page {
	p := &page{}
	for _, c := range s.dataset.Countries {
		p.Options = append(p.Options, countryOption{Code: c})
	}
	return p
}

// fill renders the charts of v and marks the selected countries.
func (p *page) fill(v *stats.View) error {
	p.View = v
	p.ExportQuery = encodeView(v)

	selected := make(map[string]bool, len(v.Countries))
	for _, c := range v.Countries {
		selected[c] = true
	}
	for i := range p.Options {
		p.Options[i].Selected = selected[p.Options[i].Code]
	}

	p.Rows = v.Rows
	if len(p.Rows) > MaxTableRows {
		p.Rows = p.Rows[:MaxTableRows]
		p.Truncated = true
	}

	if v.Empty() {
		return nil
	}

	trend, err := TrendChart(v.TimeSeries)
	if err != nil {
		return err
	}
	age, err := AgeChart(v.AgeTotals)
	if err != nil {
		return err
	}
	gender, err := GenderChart(v.Gender)
	if err != nil {
		return err
	}

	// Chart SVG is generated from numbers and labels we control.
	p.TrendSVG = template.HTML(trend)
	p.AgeSVG = template.HTML(age)
	p.GenderSVG = template.HTML(gender)

	return nil
}

var templateFuncs = template.FuncMap{
	"count": func(v interface{}) string { return formatNumber(v, false) },
	"stat":  func(v interface{}) string { return formatNumber(v, true) },
}

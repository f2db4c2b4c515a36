package dashboard

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatNumber prints v with thousands separators, with two decimals when
// precise is set. Missing values print as a dash.
func formatNumber(v interface{}, precise bool) string {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case *float64:
		if n == nil {
			return "-"
		}
		f = *n
	case int:
		f = float64(n)
	default:
		return "-"
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	if precise {
		return printer.Sprintf("%.2f", f)
	}
	return printer.Sprintf("%.0f", f)
}

// formatCompact prints large values with a K, M or B suffix.
func formatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return printer.Sprintf("%.1fB", v/1e9)
	case abs >= 1e6:
		return printer.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return printer.Sprintf("%.1fK", v/1e3)
	}
	return printer.Sprintf("%.0f", v)
}

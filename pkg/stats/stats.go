package stats

// Gender is the categorical gender code used by the population datapoints.
type Gender int

const (
	Male   Gender = 1
	Female Gender = 2
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	}
	return "Unknown"
}

// Valid reports whether g is one of the two known codes.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// Record is a single population observation for one country, year, age and
// gender.
type Record struct {
	Country    string  `json:"country"`
	Year       int     `json:"year"`
	Age        int     `json:"age"`
	Gender     Gender  `json:"gender"`
	Population float64 `json:"population"`
}

// Table is an ordered set of records. Loaded tables are never modified in
// place; every stage returns a new table.
type Table []Record

// Populations returns the population column of the table.
func (t Table) Populations() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.Population
	}
	return out
}

// Countries returns the distinct country codes in order of first appearance.
func (t Table) Countries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t {
		if !seen[r.Country] {
			seen[r.Country] = true
			out = append(out, r.Country)
		}
	}
	return out
}

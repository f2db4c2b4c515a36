package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a data file header lacks one of the
// required columns.
var ErrMissingColumn = errors.New("missing column")

var errNotFinite = errors.New("not a finite number")

var requiredColumns = []string{"age", "gender", "year", "population"}

// ParseError reports a cell that could not be parsed.
type ParseError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: column %s: cannot parse %q: %v", e.File, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// recordParser turns data rows into records once the header has been seen.
type recordParser struct {
	file    *File
	columns map[string]int
}

func (p *recordParser) readHeader(header []string) error {
	p.columns = make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"\ufeff")))
		if _, dup := p.columns[h]; !dup {
			p.columns[h] = i
		}
	}

	for _, c := range requiredColumns {
		if _, ok := p.columns[c]; !ok {
			return fmt.Errorf("%s: %w %q", p.file.Path, ErrMissingColumn, c)
		}
	}
	return nil
}

func (p *recordParser) parse(line int, row []string) (Record, error) {
	r := Record{Country: p.file.Country}

	cell := func(name string) string {
		i := p.columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	fail := func(name, value string, err error) error {
		return &ParseError{File: p.file.Path, Line: line, Column: name, Value: value, Err: err}
	}

	year, age, gender, pop := cell("year"), cell("age"), cell("gender"), cell("population")

	var err error
	if r.Year, err = strconv.Atoi(year); err != nil {
		return r, fail("year", year, err)
	}
	if r.Age, err = strconv.Atoi(age); err != nil {
		return r, fail("age", age, err)
	}
	g, err := strconv.Atoi(gender)
	if err != nil {
		return r, fail("gender", gender, err)
	}
	r.Gender = Gender(g)
	if r.Population, err = strconv.ParseFloat(pop, 64); err != nil {
		return r, fail("population", pop, err)
	}
	if math.IsNaN(r.Population) || math.IsInf(r.Population, 0) {
		return r, fail("population", pop, errNotFinite)
	}

	return r, nil
}

// ReadFile parses every data row of a country file. The header row is
// required; blank rows are skipped.
func ReadFile(f *File) (Table, error) {
	p := &recordParser{file: f}
	var table Table
	var headerSeen bool

	err := f.ExtractRows(func(line int, row []string) error {
		if isBlank(row) {
			return nil
		}
		if !headerSeen {
			headerSeen = true
			return p.readHeader(row)
		}

		r, err := p.parse(line, row)
		if err != nil {
			return err
		}
		table = append(table, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !headerSeen {
		return nil, fmt.Errorf("%s: empty file: %w %q", f.Path, ErrMissingColumn, requiredColumns[0])
	}

	return table, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

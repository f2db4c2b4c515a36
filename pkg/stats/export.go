package stats

import (
	"encoding/csv"
	"io"
	"strconv"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
)

// ExportColumns is the column order of exported tables.
var ExportColumns = []string{"country", "year", "age", "gender", "population"}

func (r Record) fields() []string {
	return []string{
		r.Country,
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Age),
		strconv.Itoa(int(r.Gender)),
		strconv.FormatFloat(r.Population, 'f', -1, 64),
	}
}

// WriteCSV writes the table with a header row.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, r := range t {
		if err := cw.Write(r.fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSheet is the sheet name used by WriteXLSX.
const ExportSheet = "Sheet1"

// WriteXLSX writes the table as a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table) error {
	wb := xlsx.NewFile()

	set := func(col, row int, value interface{}) error {
		cell, err := xlsx.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return wb.SetCellValue(ExportSheet, cell, value)
	}

	for i, h := range ExportColumns {
		if err := set(i+1, 1, h); err != nil {
			return err
		}
	}
	for i, r := range t {
		row := i + 2
		values := []interface{}{r.Country, r.Year, r.Age, int(r.Gender), r.Population}
		for j, v := range values {
			if err := set(j+1, row, v); err != nil {
				return err
			}
		}
	}

	return wb.Write(w)
}

package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Format is the on-disk format of a country data file.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
	FormatXLS
)

func (f Format) Ext() string {
	switch f {
	case FormatXLSX:
		return ".xlsx"
	case FormatXLS:
		return ".xls"
	}
	return ".csv"
}

// File represents a file containing population datapoints for one country.
type File struct {
	Country string
	Path    string
	Format  Format
}

// RowHandler receives every row of a file, header included. line is 1-based.
type RowHandler func(line int, row []string) error

// ExtractRows calls handler for each row in the file, stopping at the first
// error.
func (f *File) ExtractRows(handler RowHandler) error {
	switch f.Format {
	case FormatXLSX:
		return ExtractRowsFromXLSX(f, handler)
	case FormatXLS:
		return ExtractRowsFromXLS(f, handler)
	}
	return ExtractRowsFromCSV(f, handler)
}

func ExtractRowsFromCSV(f *File, handler RowHandler) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Path, err)
		}

		line, _ := reader.FieldPos(0)
		if err := handler(line, row); err != nil {
			return err
		}
	}
}

package stats

import (
	"fmt"
	"os"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
)

// ExtractRowsFromXLS reads the first sheet of a legacy Excel workbook.
func ExtractRowsFromXLS(f *File, handler RowHandler) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return fmt.Errorf("could not read XLS file %s: %w", f.Path, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return fmt.Errorf("XLS file %s has no sheets", f.Path)
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}

		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		if err := handler(i+1, cols); err != nil {
			return err
		}
	}

	return nil
}

// ExtractRowsFromXLSX reads the first sheet of an Excel workbook.
func ExtractRowsFromXLSX(f *File, handler RowHandler) error {
	wb, err := xlsx.OpenFile(f.Path)
	if err != nil {
		return fmt.Errorf("could not read XLSX file %s: %w", f.Path, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("XLSX file %s has no sheets", f.Path)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("could not get rows for sheet %q: %w", sheets[0], err)
	}

	for i, r := range rows {
		if err := handler(i+1, r); err != nil {
			return err
		}
	}

	return nil
}

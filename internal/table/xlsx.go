package table

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads the first sheet of a workbook.
func ReadXLSX(fs afero.Fs, path string) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", path)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

// WriteXLSX writes the table plus any appended result columns to a new
// workbook. extra maps column header to one value per row; extra columns
// are appended after the original headers in the order given.
func WriteXLSX(fs afero.Fs, path string, t *Table, extraHeaders []string, extraCols [][]string) error {
	for i, col := range extraCols {
		if len(col) != len(t.Rows) {
			return fmt.Errorf("extra column %q has %d values for %d rows",
				extraHeaders[i], len(col), len(t.Rows))
		}
	}

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)

	header := append(append([]string(nil), t.Headers...), extraHeaders...)
	if err := writeRow(wb, sheet, 1, header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := append([]string(nil), row...)
		// Pad ragged rows so result columns line up
		for len(cells) < len(t.Headers) {
			cells = append(cells, "")
		}
		for _, col := range extraCols {
			cells = append(cells, col[i])
		}
		if err := writeRow(wb, sheet, i+2, cells); err != nil {
			return err
		}
	}

	out, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create output workbook: %w", err)
	}
	defer out.Close()

	if err := wb.Write(out); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

func writeRow(wb *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

package export

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WriteXLSX renders s as a single-sheet workbook with a bold header row.
// Numeric cells stay numeric.
func WriteXLSX(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(s.Title)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, c := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, c.Label); err != nil {
			return err
		}
		if err := f.SetCellStyle(name, cell, cell, bold); err != nil {
			return err
		}
	}

	for r, row := range s.Rows {
		for i, c := range s.Columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			var value any = c.text(row)
			if n, ok := row[c.Key].(float64); ok && c.Text == nil {
				value = n
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return err
			}
		}
	}

	if len(s.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(s.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, "A", last, 20); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, title)
	if name == "" {
		name = "Report"
	}
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}

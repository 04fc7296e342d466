package export

import (
	"fmt"
	"io"

	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/report"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of xlsx workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// excel caps sheet names at 31 characters.
const maxSheetName = 31

// XLSXExporter writes a dashboard as a workbook with one sheet per table.
type XLSXExporter struct {
	headerColor string
	moneyFormat string
}

// NewXLSXExporter creates an exporter with the default styling.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{
		headerColor: "4C78A8",
		moneyFormat: `"$"#,##0.00;[Red]-"$"#,##0.00`,
	}
}

// Export writes the workbook to w and returns the number of sheets written.
func (e *XLSXExporter) Export(dash model.DashboardView, w io.Writer) (int, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{e.headerColor}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &e.moneyFormat})
	if err != nil {
		return 0, fmt.Errorf("failed to create money style: %w", err)
	}

	sheets := report.Dashboard(dash)
	for i, sheet := range sheets {
		name := sheetName(sheet.Title)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return 0, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return 0, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		if err := e.writeSheet(f, name, sheet, headerStyle, moneyStyle); err != nil {
			return 0, fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return len(sheets), nil
}

func (e *XLSXExporter) writeSheet(f *excelize.File, name string, sheet report.Sheet, headerStyle, moneyStyle int) error {
	for col, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
			if sheet.IsMoney(col) {
				if err := f.SetCellStyle(name, cell, cell, moneyStyle); err != nil {
					return err
				}
			}
		}
	}

	if len(sheet.Headers) == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(len(sheet.Headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(name, "A", lastCol, 18); err != nil {
		return err
	}
	if err := f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if len(sheet.Rows) > 0 {
		ref := fmt.Sprintf("A1:%s%d", lastCol, len(sheet.Rows)+1)
		if err := f.AutoFilter(name, ref, nil); err != nil {
			return err
		}
	}
	return nil
}

// sheetName trims a title to a legal worksheet name.
func sheetName(title string) string {
	runes := []rune(title)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return string(runes)
}

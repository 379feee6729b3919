package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildMonthlyXLSX renders a monthly report as a single-sheet workbook
// with a styled header row and one row per patient.
func BuildMonthlyXLSX(report *MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Monthly Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	headers := []string{"Patient", "Visits", "Interventions", "Failed Contact Attempts"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "D", 16)

	for i, row := range report.Rows {
		rowNum := i + 2
		values := []interface{}{row.PatientName, row.Visits, row.Interventions, row.FailedAttempts}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	summaryCell, _ := excelize.CoordinatesToCellName(1, len(report.Rows)+3)
	_ = f.SetCellValue(sheet, summaryCell,
		fmt.Sprintf("Period: %04d-%02d, %d patients", report.Year, report.Month, len(report.Rows)))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

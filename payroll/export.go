package payroll

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

var exportHeaders = []string{
	"Worker ID", "Name", "Period", "Days", "Holiday Days",
	"Normal Hours", "Overtime Hours", "Holiday Hours", "Total Wage", "Status",
}

// ExportXLSX renders a payroll listing as a single-sheet workbook. names
// maps worker ids to display names; missing names are left blank.
func ExportXLSX(period wage.Month, records []Record, names map[wage.WorkerID]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + period.String()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	var total wage.Money
	for i, r := range records {
		row := i + 2
		values := []any{
			string(r.WorkerID),
			names[r.WorkerID],
			r.Period.String(),
			r.Days,
			r.HolidayDays,
			r.NormalHours.InexactFloat64(),
			r.OvertimeHours.InexactFloat64(),
			r.HolidayHours.InexactFloat64(),
			int64(r.TotalWage),
			string(r.Status),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		total += r.TotalWage
	}

	totalRow := len(records) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("I%d", totalRow), int64(total)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

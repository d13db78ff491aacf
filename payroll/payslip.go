package payroll

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/subkh4n/SIPILPRO-sub000/wage"
)

// Payslip is everything printed on one worker's monthly slip.
type Payslip struct {
	Record     Record
	WorkerName string
	Days       []wage.AttendanceRecord
}

// WritePayslip renders a one-page A4 payslip.
func WritePayslip(w io.Writer, slip Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", slip.Record.WorkerID, slip.Record.Period), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	header := [][2]string{
		{"Worker", fmt.Sprintf("%s (%s)", slip.WorkerName, slip.Record.WorkerID)},
		{"Period", slip.Record.Period.String()},
		{"Status", string(slip.Record.Status)},
	}
	for _, kv := range header {
		pdf.CellFormat(40, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	cols := []struct {
		title string
		width float64
	}{{"Date", 30}, {"Holiday", 45}, {"Hours", 25}, {"Sessions", 25}, {"Wage", 40}}
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, d := range slip.Days {
		holiday := ""
		if d.IsHoliday {
			holiday = d.HolidayReason
		}
		pdf.CellFormat(cols[0].width, 6, d.Date.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1].width, 6, holiday, "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2].width, 6, d.TotalHours().StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3].width, 6, strconv.Itoa(len(d.Sessions)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4].width, 6, formatMoney(d.Wage), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	summary := [][2]string{
		{"Normal hours", slip.Record.NormalHours.StringFixed(2)},
		{"Overtime hours", slip.Record.OvertimeHours.StringFixed(2)},
		{"Holiday hours", slip.Record.HolidayHours.StringFixed(2)},
		{"Total wage", formatMoney(slip.Record.TotalWage)},
	}
	for _, kv := range summary {
		pdf.CellFormat(50, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, kv[1], "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}

// formatMoney groups thousands with dots, e.g. 1.235.000.
func formatMoney(m wage.Money) string {
	s := strconv.FormatInt(int64(m), 10)
	neg := false
	if m < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

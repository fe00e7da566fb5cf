package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel creates an XLSX workbook for the estimate and returns
// the file contents as a byte slice.
func GenerateEstimateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Estimate"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through E).
	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{40, 10, 14, 14, 40}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header block (rows 1-4) ─────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", CompanyName+" — Estimate #"+data.Number)
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	f.SetCellValue(sheetName, "A2", "Client: "+data.Client)
	f.SetCellValue(sheetName, "C2", "Date: "+data.Date)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	f.SetCellValue(sheetName, "A3", "Project: "+data.Project)
	f.SetCellValue(sheetName, "C3", fmt.Sprintf("Valid for %d days", data.ValidDays))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	f.SetCellValue(sheetName, "A4", "Site: "+data.Address)
	f.SetCellStyle(sheetName, "A4", lastCol+"4", subtitleStyle)

	// ── Row 6: column headers ───────────────────────────────────────────

	headers := []string{"Name", "Qty", "Unit Price", "Extended", "Note"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s6", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Line rows (starting row 7) ──────────────────────────────────────

	row := 7
	for _, l := range data.Lines {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(l.Name))
		f.SetCellValue(sheetName, "B"+rowStr, l.Qty)
		f.SetCellValue(sheetName, "C"+rowStr, FormatCAD(l.UnitPrice))
		f.SetCellValue(sheetName, "D"+rowStr, FormatCAD(l.Extended))
		f.SetCellValue(sheetName, "E"+rowStr, sanitizeExcelCell(l.Note))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, lineStyle)
		row++
	}

	// ── Summary rows ────────────────────────────────────────────────────

	row++
	summaries := []struct {
		label string
		value string
	}{
		{"Subtotal:", FormatCAD(data.Totals.Subtotal)},
		{fmt.Sprintf("Markup (%s%%):", FormatPct(data.MarkupPct)), FormatCAD(data.Totals.Markup)},
		{"Discount:", "- " + FormatCAD(data.Totals.Discount)},
		{"Pre-tax:", FormatCAD(data.Totals.PreTax)},
		{fmt.Sprintf("Tax (%s%%):", FormatPct(data.TaxPct)), FormatCAD(data.Totals.Tax)},
		{"Total:", FormatCAD(data.Totals.Total)},
	}
	for _, s := range summaries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "C"+rowStr, s.label)
		f.SetCellStyle(sheetName, "C"+rowStr, "C"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "D"+rowStr, s.value)
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, summaryValueStyle)
		row++
	}

	// ── Terms ───────────────────────────────────────────────────────────

	if len(data.Terms) > 0 {
		row++
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Terms")
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), summaryValueStyle)
		row++
		for _, term := range data.Terms {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "• "+sanitizeExcelCell(term))
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#999999", Style: 1},
		{Type: "top", Color: "#999999", Style: 1},
		{Type: "bottom", Color: "#999999", Style: 1},
		{Type: "right", Color: "#999999", Style: 1},
	}
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +,
// -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

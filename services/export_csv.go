package services

import (
	"fmt"
	"strconv"
	"strings"
)

// csvHeader is the fixed header row of a CSV export.
var csvHeader = []string{"Name", "Qty", "Unit Price", "Extended", "Note"}

// EstimateCSV renders the estimate's line items as CSV: a header row followed
// by one row per line. Every field is double-quoted and embedded quotes are
// doubled, regardless of content, so the output parses identically under any
// standard CSV reader. encoding/csv is deliberately not used here: it quotes
// only when necessary and the export format fixes every field as quoted.
func EstimateCSV(est Estimate) string {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for _, line := range est.Lines {
		writeCSVRow(&b, []string{
			line.Name,
			fmt.Sprintf("%d", line.Qty),
			trimFloat(line.UnitPrice),
			fmt.Sprintf("%.2f", line.Extended()),
			line.Note,
		})
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// trimFloat renders a unit price without trailing zeros ("12.5", not
// "12.50"), matching how the builder echoes prices back into inputs.
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

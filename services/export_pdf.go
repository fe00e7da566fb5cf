package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateEstimatePDF creates the printable quote sheet as a PDF using
// maroto/v2 and returns the raw bytes.
func GenerateEstimatePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addSheetHeader(m, data)
	addClientBlock(m, data)
	addLinesTable(m, data)
	addTotalsBlock(m, data)
	addNotesBlock(m, data)
	addTermsBlock(m, data)
	addSignatureLines(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate estimate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addSheetHeader adds the branding block and the estimate number.
func addSheetHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("ESTIMATE", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("%s | %s", CompanyTagline, CompanyEmail), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Estimate #: %s", data.Number), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addClientBlock adds the client/project boxes on the left and the sheet
// metadata on the right.
func addClientBlock(m core.Maroto, data ExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightLabelStyle := labelStyle
	rightLabelStyle.Align = align.Right
	rightValueStyle := valueStyle
	rightValueStyle.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("PREPARED FOR", labelStyle)),
			col.New(6).Add(text.New("DETAILS", rightLabelStyle)),
		),
	)

	rows := []struct {
		left  string
		right string
	}{
		{data.Client, "Date: " + data.Date},
		{data.Project, fmt.Sprintf("Valid for: %d days", data.ValidDays)},
		{data.Address, scopeLine(data.ScopeName)},
	}
	for _, r := range rows {
		m.AddRows(
			row.New(7).Add(
				col.New(6).Add(text.New(r.left, valueStyle)),
				col.New(6).Add(text.New(r.right, rightValueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

func scopeLine(name string) string {
	if name == "" {
		return ""
	}
	return "Scope: " + name
}

// addLinesTable adds the line items table with header and body rows.
func addLinesTable(m core.Maroto, data ExportData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Name", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Extended", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Note", headerTextLeft)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}
	for i, l := range data.Lines {
		bodyLeft := props.Text{Size: 7, Align: align.Left}
		bodyCenter := props.Text{Size: 7, Align: align.Center}
		bodyRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colName := col.New(4).Add(text.New(l.Name, bodyLeft))
		colQty := col.New(1).Add(text.New(fmt.Sprintf("%d", l.Qty), bodyCenter))
		colUnit := col.New(2).Add(text.New(FormatCAD(l.UnitPrice), bodyRight))
		colExt := col.New(2).Add(text.New(FormatCAD(l.Extended), bodyRight))
		colNote := col.New(3).Add(text.New(l.Note, bodyLeft))

		if cellStyle != nil {
			colName = colName.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colUnit = colUnit.WithStyle(cellStyle)
			colExt = colExt.WithStyle(cellStyle)
			colNote = colNote.WithStyle(cellStyle)
		}

		m.AddRows(row.New(7).Add(colName, colQty, colUnit, colExt, colNote))
	}

	m.AddRows(row.New(2))
}

// addTotalsBlock adds the right-aligned totals rows.
func addTotalsBlock(m core.Maroto, data ExportData) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	summaries := []struct {
		label string
		value string
	}{
		{"Subtotal", FormatCAD(data.Totals.Subtotal)},
		{fmt.Sprintf("Markup (%s%%)", FormatPct(data.MarkupPct)), FormatCAD(data.Totals.Markup)},
		{"Discount", "- " + FormatCAD(data.Totals.Discount)},
		{"Pre-tax", FormatCAD(data.Totals.PreTax)},
		{fmt.Sprintf("Tax (%s%%)", FormatPct(data.TaxPct)), FormatCAD(data.Totals.Tax)},
	}
	for _, s := range summaries {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(s.label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(s.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	grandBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	grandCell := &props.Cell{BackgroundColor: grandBg}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Total", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatCAD(data.Totals.Total), grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

// addNotesBlock adds the free-text notes section if non-empty.
func addNotesBlock(m core.Maroto, data ExportData) {
	if data.Notes == "" {
		return
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("NOTES", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			})),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(data.Notes, props.Text{
				Size:  8,
				Align: align.Left,
			})),
		),
	)

	m.AddRows(row.New(3))
}

// addTermsBlock adds the boilerplate terms list.
func addTermsBlock(m core.Maroto, data ExportData) {
	if len(data.Terms) == 0 {
		return
	}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("TERMS & CONDITIONS", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 33, Green: 37, Blue: 41},
			})),
		),
	)
	for _, term := range data.Terms {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New("• "+term, props.Text{
					Size:  8,
					Align: align.Left,
				})),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addSignatureLines adds the acceptance signature row.
func addSignatureLines(m core.Maroto) {
	lineStyle := props.Text{
		Size:  8,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(row.New(12))
	m.AddRows(
		row.New(7).Add(
			col.New(5).Add(text.New("_________________________", lineStyle)),
			col.New(2),
			col.New(5).Add(text.New("_________________________", lineStyle)),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(5).Add(text.New("Customer acceptance / date", lineStyle)),
			col.New(2),
			col.New(5).Add(text.New(CompanyName, lineStyle)),
		),
	)
}

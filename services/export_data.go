package services

// Branding constants used by the printable quote sheet and file exports.
const (
	CompanyName    = "Ironwood Railings & Millwork"
	CompanyTagline = "Custom railings, posts and architectural millwork"
	CompanyEmail   = "quotes@ironwood.example"
)

// ExportLine is one rendered row of an exported estimate.
type ExportLine struct {
	Name      string
	Qty       int
	UnitPrice float64
	Extended  float64
	Note      string
}

// ExportData holds everything the PDF and Excel generators need: the
// estimate's fields, its rendered lines, a freshly computed totals block and
// the terms to print (base terms plus the applied scope's own).
type ExportData struct {
	Number    string
	Client    string
	Project   string
	Address   string
	Date      string
	ValidDays int
	Notes     string
	ScopeName string

	Lines  []ExportLine
	Totals EstimateTotals

	MarkupPct   float64
	DiscountAmt float64
	TaxPct      float64

	Terms []string
}

// BuildExportData flattens an estimate into the export shape. Totals are
// recomputed here so an export can never disagree with the line data.
func BuildExportData(est Estimate, terms []string) ExportData {
	lines := make([]ExportLine, 0, len(est.Lines))
	for _, l := range est.Lines {
		lines = append(lines, ExportLine{
			Name:      l.Name,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			Extended:  l.Extended(),
			Note:      l.Note,
		})
	}

	return ExportData{
		Number:      est.ID,
		Client:      est.Client,
		Project:     est.Project,
		Address:     est.Address,
		Date:        est.Date,
		ValidDays:   est.ValidDays,
		Notes:       est.Notes,
		ScopeName:   est.ScopeName,
		Lines:       lines,
		Totals:      CalcEstimateTotals(est),
		MarkupPct:   est.MarkupPct,
		DiscountAmt: est.DiscountAmt,
		TaxPct:      est.TaxPct,
		Terms:       terms,
	}
}

package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"ironwood/services"
)

// PrintSheet renders the printable quote sheet as a standalone page. The
// page auto-opens the browser print dialog; the PDF export renders the same
// content server-side.
func PrintSheet(data services.ExportData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.writef("<title>Estimate %s — %s</title>", esc(data.Number), esc(services.CompanyName))
		h.write("<link rel=\"stylesheet\" href=\"/static/print.css\">")
		h.write("</head><body class=\"print-sheet\" onload=\"window.print()\">")

		// Branding header
		h.write("<header>")
		h.writef("<div class=\"company\"><h1>%s</h1><p>%s</p><p>%s</p></div>",
			esc(services.CompanyName), esc(services.CompanyTagline), esc(services.CompanyEmail))
		h.writef("<div class=\"doc\"><h2>ESTIMATE</h2><p>#%s</p><p>%s</p></div>",
			esc(data.Number), esc(data.Date))
		h.write("</header>")

		// Client / project boxes
		h.write("<section class=\"parties\">")
		h.writef("<div class=\"box\"><h3>Prepared for</h3><p>%s</p><p>%s</p></div>",
			esc(data.Client), esc(data.Address))
		h.write("<div class=\"box\"><h3>Details</h3>")
		if data.Project != "" {
			h.writef("<p>%s</p>", esc(data.Project))
		}
		h.writef("<p>Valid for %d days</p>", data.ValidDays)
		if data.ScopeName != "" {
			h.writef("<p>Scope: %s</p>", esc(data.ScopeName))
		}
		h.write("</div></section>")

		// Line table
		h.write("<table><thead><tr><th>Description</th><th>Qty</th><th>Unit price</th><th>Extended</th></tr></thead><tbody>")
		for _, line := range data.Lines {
			h.write("<tr>")
			h.writef("<td>%s", esc(line.Name))
			if line.Note != "" {
				h.writef("<br><span class=\"note\">%s</span>", esc(line.Note))
			}
			h.write("</td>")
			h.writef("<td>%d</td>", line.Qty)
			h.writef("<td>%s</td>", esc(services.FormatCAD(line.UnitPrice)))
			h.writef("<td>%s</td>", esc(services.FormatCAD(line.Extended)))
			h.write("</tr>")
		}
		h.write("</tbody></table>")

		// Totals
		h.write("<section class=\"totals\">")
		row := func(label, value string) {
			h.writef("<div><span>%s</span><span>%s</span></div>", esc(label), esc(value))
		}
		row("Subtotal", services.FormatCAD(data.Totals.Subtotal))
		row("Markup ("+services.FormatPct(data.MarkupPct)+"%)", services.FormatCAD(data.Totals.Markup))
		row("Discount", "- "+services.FormatCAD(data.Totals.Discount))
		row("Pre-tax", services.FormatCAD(data.Totals.PreTax))
		row("Tax ("+services.FormatPct(data.TaxPct)+"%)", services.FormatCAD(data.Totals.Tax))
		h.writef("<div class=\"grand\"><span>Total</span><span>%s</span></div>", esc(services.FormatCAD(data.Totals.Total)))
		h.write("</section>")

		// Notes
		if data.Notes != "" {
			h.writef("<section class=\"notes\"><h3>Notes</h3><p>%s</p></section>", esc(data.Notes))
		}

		// Terms
		if len(data.Terms) > 0 {
			h.write("<section class=\"terms\"><h3>Terms</h3><ul>")
			for _, term := range data.Terms {
				h.writef("<li>%s</li>", esc(term))
			}
			h.write("</ul></section>")
		}

		// Signature lines
		h.write("<footer class=\"signatures\">")
		h.write("<div><span class=\"line\"></span><p>Customer acceptance</p></div>")
		h.write("<div><span class=\"line\"></span><p>Date</p></div>")
		h.write("</footer>")

		h.write("</body></html>")
		return h.err
	})
}

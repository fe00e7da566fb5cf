package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"ironwood/services"
)

// ScopeOption is one selectable scope template.
type ScopeOption struct {
	Slug    string
	Name    string
	Group   string
	Summary string
}

// EstimatePageData drives the estimate builder page and its partials.
type EstimatePageData struct {
	Est    services.Estimate
	Totals services.EstimateTotals

	CatalogItems []services.CatalogItem
	CatalogEmpty bool

	Scopes []ScopeOption
	Terms  []string

	WebhookURL string
}

// EstimatePage renders the complete estimate builder page.
func EstimatePage(data EstimatePageData) templ.Component {
	return Layout("Estimate Builder", "/estimate", EstimateContent(data))
}

// EstimateContent renders the page body. Served directly for HX-Request page
// swaps.
func EstimateContent(data EstimatePageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<section class=\"estimate\">")

		h.write("<header class=\"estimate-header\">")
		h.writef("<h1>Estimate <span class=\"ref\">%s</span></h1>", esc(data.Est.ID))
		h.write("<button class=\"danger\" hx-post=\"/estimate/new\" hx-target=\"#content\" hx-confirm=\"Start a new estimate? The current draft will be replaced.\">New estimate</button>")
		h.write("</header>")

		h.render(ctx, estimateForm(data.Est))
		h.render(ctx, catalogPicker(data))
		h.render(ctx, LineItemsSection(data))
		h.render(ctx, ScopePanel(data))
		h.render(ctx, TermsPanel(data.Terms))
		h.render(ctx, exportBar(data))

		h.write("</section>")
		return h.err
	})
}

// estimateForm renders the client/project metadata and finance inputs. Every
// change syncs the full draft and refreshes the line section (totals depend
// on the finance fields).
func estimateForm(est services.Estimate) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<form id=\"estimate-form\" hx-post=\"/estimate/form\" hx-target=\"#line-items-section\" hx-swap=\"outerHTML\" hx-trigger=\"change\">")

		textField := func(name, label, value string) {
			h.writef("<label>%s<input type=\"text\" name=\"%s\" value=\"%s\"></label>",
				esc(label), name, esc(value))
		}
		numberField := func(name, label, value, step string) {
			h.writef("<label>%s<input type=\"number\" name=\"%s\" value=\"%s\" step=\"%s\"></label>",
				esc(label), name, esc(value), step)
		}

		h.write("<fieldset><legend>Client</legend>")
		textField("client", "Client", est.Client)
		textField("project", "Project", est.Project)
		textField("address", "Site address", est.Address)
		h.writef("<label>Date<input type=\"date\" name=\"date\" value=\"%s\"></label>", esc(est.Date))
		numberField("valid_days", "Valid (days)", strconv.Itoa(est.ValidDays), "1")
		h.write("</fieldset>")

		h.write("<fieldset><legend>Adjustments</legend>")
		numberField("markup_pct", "Markup %", services.FormatPct(est.MarkupPct), "0.01")
		numberField("discount_amt", "Discount $", trimAmount(est.DiscountAmt), "0.01")
		numberField("tax_pct", "Tax %", services.FormatPct(est.TaxPct), "0.01")
		h.write("</fieldset>")

		h.writef("<label class=\"notes\">Notes<textarea name=\"notes\">%s</textarea></label>", esc(est.Notes))
		h.write("</form>")
		return h.err
	})
}

func trimAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// catalogPicker renders the pricing catalog quick-add list.
func catalogPicker(data EstimatePageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<div class=\"catalog-picker\"><h3>Add from catalog</h3>")
		if data.CatalogEmpty {
			h.write("<p class=\"placeholder\">The pricing catalog could not be read; custom lines still work.</p></div>")
			return h.err
		}

		h.write("<ul>")
		for i, item := range data.CatalogItems {
			h.writef("<li><button hx-post=\"/estimate/lines/from-catalog\" hx-vals='{\"item\": \"%d\"}' hx-target=\"#line-items-section\" hx-swap=\"outerHTML\">", i)
			h.writef("%s <span class=\"price\">%s</span></button>", esc(item.Name), esc(services.FormatCAD(item.UnitPrice)))
			if item.Note != "" {
				h.writef("<span class=\"note\">%s</span>", esc(item.Note))
			}
			h.write("</li>")
		}
		h.write("</ul>")
		h.write("<button hx-post=\"/estimate/lines\" hx-target=\"#line-items-section\" hx-swap=\"outerHTML\">Add custom line</button>")
		h.write("</div>")
		return h.err
	})
}

// LineItemsSection renders the editable line table plus the totals panel.
// It is the swap target for every line mutation.
func LineItemsSection(data EstimatePageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<div id=\"line-items-section\">")
		h.write("<table class=\"line-items\"><thead><tr><th>Name</th><th>Qty</th><th>Unit price</th><th>Extended</th><th>Note</th><th></th></tr></thead><tbody>")

		if len(data.Est.Lines) == 0 {
			h.write("<tr><td colspan=\"6\" class=\"placeholder\">No line items yet. Add one from the catalog or as a custom line.</td></tr>")
		}

		for i, line := range data.Est.Lines {
			patchURL := "/estimate/lines/" + strconv.Itoa(i)
			h.writef("<tr hx-patch=\"%s\" hx-target=\"#line-items-section\" hx-swap=\"outerHTML\" hx-trigger=\"change\" hx-include=\"closest tr\">", patchURL)
			h.writef("<td><input type=\"text\" name=\"name\" value=\"%s\"></td>", esc(line.Name))
			h.writef("<td><input type=\"number\" name=\"qty\" value=\"%d\" min=\"0\" max=\"999999\"></td>", line.Qty)
			h.writef("<td><input type=\"number\" name=\"unit_price\" value=\"%s\" step=\"0.01\"></td>", trimAmount(line.UnitPrice))
			h.writef("<td class=\"extended\">%s</td>", esc(services.FormatCAD(line.Extended())))
			h.writef("<td><input type=\"text\" name=\"note\" value=\"%s\"></td>", esc(line.Note))
			h.writef("<td><button hx-delete=\"%s\" hx-target=\"#line-items-section\" hx-swap=\"outerHTML\">Remove</button></td>", patchURL)
			h.write("</tr>")
		}
		h.write("</tbody></table>")

		if len(data.Est.Lines) > 0 {
			h.write("<button class=\"danger\" hx-post=\"/estimate/lines/clear\" hx-target=\"#line-items-section\" hx-swap=\"outerHTML\" hx-confirm=\"Remove all line items?\">Clear lines</button>")
		}

		h.render(ctx, TotalsPanel(data.Est, data.Totals))
		h.write("</div>")
		return h.err
	})
}

// TotalsPanel renders the computed totals block.
func TotalsPanel(est services.Estimate, totals services.EstimateTotals) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		row := func(label, value string) {
			h.writef("<div class=\"totals-row\"><span>%s</span><span>%s</span></div>", esc(label), esc(value))
		}

		h.write("<div class=\"totals\">")
		row("Subtotal", services.FormatCAD(totals.Subtotal))
		row("Markup ("+services.FormatPct(est.MarkupPct)+"%)", services.FormatCAD(totals.Markup))
		row("Discount", "- "+services.FormatCAD(totals.Discount))
		row("Pre-tax", services.FormatCAD(totals.PreTax))
		row("Tax ("+services.FormatPct(est.TaxPct)+"%)", services.FormatCAD(totals.Tax))
		h.writef("<div class=\"totals-row grand\"><span>Total</span><span>%s</span></div>", esc(services.FormatCAD(totals.Total)))
		h.write("</div>")
		return h.err
	})
}

// ScopePanel renders the scope template picker.
func ScopePanel(data EstimatePageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<div id=\"scope-panel\" class=\"scope-panel\"><h3>Scope templates</h3>")
		if data.Est.ScopeName != "" {
			h.writef("<p class=\"applied\">Applied scope: %s</p>", esc(data.Est.ScopeName))
		}
		if len(data.Scopes) == 0 {
			h.write("<p class=\"placeholder\">No scope templates available.</p></div>")
			return h.err
		}

		h.write("<ul>")
		for _, s := range data.Scopes {
			base := "/estimate/scope/" + url.PathEscape(s.Slug)
			h.write("<li class=\"scope-option\">")
			h.writef("<div class=\"scope-name\">%s", esc(s.Name))
			if s.Group != "" {
				h.writef(" <span class=\"group\">%s</span>", esc(s.Group))
			}
			h.write("</div>")
			if s.Summary != "" {
				h.writef("<p class=\"summary\">%s</p>", esc(s.Summary))
			}
			h.write("<label><input type=\"checkbox\" name=\"defaults\" value=\"1\" form=\"\" class=\"scope-defaults\"> Apply suggested markup/tax</label>")
			h.writef("<button hx-post=\"%s?mode=add\" hx-include=\"closest li\" hx-target=\"#content\">Add lines</button>", esc(base))
			h.writef("<button hx-post=\"%s?mode=replace&amp;confirm=1\" hx-include=\"closest li\" hx-target=\"#content\" hx-confirm=\"Replace all current lines with this scope?\">Replace lines</button>", esc(base))
			h.write("</li>")
		}
		h.write("</ul></div>")
		return h.err
	})
}

// TermsPanel renders the combined base terms plus the applied scope's terms.
func TermsPanel(terms []string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<div id=\"terms-panel\" class=\"terms\"><h3>Terms</h3><ul>")
		if len(terms) == 0 {
			h.write("<li class=\"placeholder\">No terms configured.</li>")
		}
		for _, term := range terms {
			h.writef("<li>%s</li>", esc(term))
		}
		h.write("</ul></div>")
		return h.err
	})
}

// exportBar renders the export, share, webhook and diagnostics actions.
func exportBar(data EstimatePageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<div class=\"export-bar\">")
		h.write("<a href=\"/estimate/export/json\">Export JSON</a>")
		h.write("<a href=\"/estimate/export/csv\">Export CSV</a>")
		h.write("<a href=\"/estimate/export/excel\">Export Excel</a>")
		h.write("<a href=\"/estimate/export/pdf\">Export PDF</a>")
		h.write("<a href=\"/estimate/print\" target=\"_blank\">Print sheet</a>")
		h.write("<button hx-get=\"/estimate/share\" hx-target=\"#share-box\">Share link</button>")
		h.write("<button hx-post=\"/estimate/webhook\" hx-target=\"#webhook-box\">Send to CRM</button>")
		h.write("<button hx-get=\"/estimate/diagnostics\" hx-target=\"#diagnostics-box\">Run diagnostics</button>")
		h.write("</div>")

		h.write("<div id=\"share-box\"></div>")
		h.writef("<div id=\"webhook-box\" data-url=\"%s\"></div>", esc(data.WebhookURL))
		h.write("<div id=\"diagnostics-box\"></div>")
		return h.err
	})
}

// ShareLinkBox renders the generated share URL.
func ShareLinkBox(shareURL string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.write("<div class=\"share-box\"><label>Share link")
		h.writef("<input type=\"text\" readonly value=\"%s\" onclick=\"this.select()\">", esc(shareURL))
		h.write("</label><p class=\"hint\">Anyone opening this link sees this estimate exactly as it is now.</p></div>")
		return h.err
	})
}

// WebhookPrompt renders the webhook settings form, shown when no URL is
// configured or when the user wants to change it.
func WebhookPrompt(currentURL, guidance string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<div class=\"webhook-prompt\">")
		if guidance != "" {
			h.writef("<p class=\"guidance\">%s</p>", esc(guidance))
		}
		h.write("<form hx-post=\"/estimate/webhook/url\" hx-target=\"#webhook-box\">")
		h.writef("<label>Webhook URL<input type=\"url\" name=\"url\" value=\"%s\" placeholder=\"https://hooks.example.com/...\"></label>", esc(currentURL))
		h.write("<button type=\"submit\">Save</button></form></div>")
		return h.err
	})
}

package templates

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"ironwood/services"
)

// ProductListEntry is one row of the catalog list column.
type ProductListEntry struct {
	ID       string
	Title    string
	Subtitle string
	Category string
	Letter   string
	Active   bool
}

// ViewerStripData carries the rendered <model-viewer> attributes and the
// control strip's label state.
type ViewerStripData struct {
	Src          string
	CameraOrbit  string
	CameraTarget string
	AutoRotate   bool
	Fullscreen   bool
	Presentation bool
}

// ProductDetailData is everything the detail column renders for the selected
// product.
type ProductDetailData struct {
	Product services.Product
	Viewer  ViewerStripData
}

// CatalogPageData drives the full catalog page and both of its partials.
type CatalogPageData struct {
	Query      string
	Category   string
	Categories []string
	Entries    []ProductListEntry

	// Detail is nil when nothing is selected (no matches).
	Detail *ProductDetailData

	// Halted means the products collection is empty: the page shows a
	// persistent loading-failure placeholder and no interactive sections.
	Halted bool
}

// CatalogPage renders the complete catalog page.
func CatalogPage(data CatalogPageData) templ.Component {
	return Layout("Product Catalog", "/catalog", CatalogContent(data))
}

// CatalogContent renders the page body: filter bar, list column and detail
// column. Served directly for HX-Request page swaps.
func CatalogContent(data CatalogPageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		if data.Halted {
			h.write("<section class=\"catalog halted\"><p class=\"placeholder\">")
			h.write("Models are not loading. The product list could not be read; try again later.")
			h.write("</p></section>")
			return h.err
		}

		h.write("<section class=\"catalog\"><div class=\"catalog-sidebar\">")

		// Filter bar. Each change reloads the list partial.
		h.write("<form class=\"filter-bar\" hx-get=\"/catalog/list\" hx-target=\"#catalog-list\" hx-trigger=\"input changed delay:200ms from:find input, change from:find select\">")
		h.writef("<input type=\"search\" name=\"q\" value=\"%s\" placeholder=\"Search products\" aria-label=\"Search products\">", esc(data.Query))
		h.write("<select name=\"cat\" aria-label=\"Category\">")
		h.write("<option value=\"\">All categories</option>")
		for _, cat := range data.Categories {
			sel := ""
			if cat == data.Category {
				sel = " selected"
			}
			h.writef("<option value=\"%s\"%s>%s</option>", esc(cat), sel, esc(cat))
		}
		h.write("</select></form>")

		h.write("<ul id=\"catalog-list\" class=\"product-list\">")
		h.render(ctx, CatalogListContent(data))
		h.write("</ul></div>")

		h.write("<div id=\"product-detail\" class=\"catalog-detail\">")
		h.render(ctx, ProductDetail(data.Detail))
		h.write("</div></section>")
		return h.err
	})
}

// CatalogListContent renders the list items only; it is the target of the
// filter bar's swaps. Exactly one entry is active.
func CatalogListContent(data CatalogPageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		if len(data.Entries) == 0 {
			h.write("<li class=\"placeholder\">No products match the current filter.</li>")
			return h.err
		}

		for _, entry := range data.Entries {
			cls := "product-item"
			if entry.Active {
				cls = "product-item active"
			}
			detailURL := "/catalog/detail/" + url.PathEscape(entry.ID) + "?" + filterQuery(data.Query, data.Category)

			h.writef("<li class=\"%s\">", cls)
			h.writef("<button hx-get=\"%s\" hx-target=\"#product-detail\">", esc(detailURL))
			h.writef("<span class=\"badge\">%s</span>", esc(entry.Letter))
			h.writef("<span class=\"title\">%s</span>", esc(entry.Title))
			if entry.Subtitle != "" {
				h.writef("<span class=\"subtitle\">%s</span>", esc(entry.Subtitle))
			}
			if entry.Category != "" {
				h.writef("<span class=\"category\">%s</span>", esc(entry.Category))
			}
			h.write("</button></li>")
		}
		return h.err
	})
}

func filterQuery(q, cat string) string {
	v := url.Values{}
	if q != "" {
		v.Set("q", q)
	}
	if cat != "" {
		v.Set("cat", cat)
	}
	return v.Encode()
}

// specRow pairs a label with a product field for the spec table.
type specRow struct {
	Label string
	Value string
}

func specRows(p services.Product) []specRow {
	candidates := []specRow{
		{"Material", p.Material},
		{"Finish", p.Finish},
		{"Dimensions", p.Dimensions},
		{"Weight", p.Weight},
		{"Lead time", p.LeadTime},
		{"SKU", p.SKU},
		{"Pricing", p.PriceNote},
		{"Updated", p.Updated},
	}
	rows := make([]specRow, 0, len(candidates))
	for _, c := range candidates {
		if c.Value == "" || c.Value == "—" {
			continue
		}
		rows = append(rows, c)
	}
	return rows
}

// ProductDetail renders the detail column: viewer, chips, spec table,
// highlights, downloads and gallery. A nil data renders the no-selection
// placeholder. Each section rebuilds from scratch, so repeated swaps are
// idempotent.
func ProductDetail(data *ProductDetailData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		if data == nil {
			h.write("<p class=\"placeholder\">No matches. Adjust the search or category filter.</p>")
			return h.err
		}
		p := data.Product

		h.render(ctx, ViewerPanel(data.Viewer))

		h.writef("<h2>%s</h2>", esc(p.Title))
		if p.Subtitle != "" {
			h.writef("<p class=\"subtitle\">%s</p>", esc(p.Subtitle))
		}
		if p.Description != "" {
			h.writef("<p class=\"description\">%s</p>", esc(p.Description))
		}

		// Chips: fixed fields first, then up to six tags. Absent values are
		// skipped entirely.
		h.write("<div class=\"chips\">")
		for _, chip := range []string{p.Category, p.SKU, p.Material, p.Updated} {
			if chip == "" {
				continue
			}
			h.writef("<span class=\"chip\">%s</span>", esc(chip))
		}
		tags := p.Tags
		if len(tags) > 6 {
			tags = tags[:6]
		}
		for _, tag := range tags {
			h.writef("<span class=\"chip tag\">%s</span>", esc(tag))
		}
		h.write("</div>")

		// Spec table.
		h.write("<table class=\"spec-table\"><tbody>")
		rows := specRows(p)
		if len(rows) == 0 {
			h.write("<tr><th>Details</th><td>No specification info provided.</td></tr>")
		}
		for _, row := range rows {
			h.writef("<tr><th>%s</th><td>%s</td></tr>", esc(row.Label), esc(row.Value))
		}
		h.write("</tbody></table>")

		// Highlights.
		h.write("<h3>Highlights</h3><ul class=\"highlights\">")
		if len(p.Highlights) == 0 {
			h.write("<li class=\"placeholder\">No highlights listed for this product.</li>")
		}
		for _, hl := range p.Highlights {
			h.writef("<li>%s</li>", esc(hl))
		}
		h.write("</ul>")

		// Downloads: an entry needs a label or an href to count; a missing
		// href renders disabled.
		h.write("<h3>Downloads</h3><ul class=\"downloads\">")
		valid := 0
		for _, d := range p.Downloads {
			if d.Label == "" && d.Href == "" {
				continue
			}
			valid++
			label := d.Label
			if label == "" {
				label = d.Href
			}
			if d.Href == "" {
				h.writef("<li><span class=\"download disabled\">%s</span>", esc(label))
			} else {
				h.writef("<li><a class=\"download\" href=\"%s\">%s</a>", esc(d.Href), esc(label))
			}
			if d.Hint != "" {
				h.writef("<span class=\"hint\">%s</span>", esc(d.Hint))
			}
			h.write("</li>")
		}
		if valid == 0 {
			h.write("<li class=\"placeholder\">No downloads available.</li>")
		}
		h.write("</ul>")

		// Gallery: first six images, or three instructional tiles.
		h.write("<div class=\"gallery\">")
		images := p.Images
		if len(images) > 6 {
			images = images[:6]
		}
		if len(images) == 0 {
			for i := 0; i < 3; i++ {
				h.write("<div class=\"gallery-tile placeholder\">Add product photos to data/models.json to fill the gallery.</div>")
			}
		}
		for _, img := range images {
			h.writef("<img class=\"gallery-tile\" src=\"%s\" alt=\"%s\" loading=\"lazy\">", esc(img), esc(p.Title))
		}
		h.write("</div>")
		return h.err
	})
}

// ViewerPanel renders the <model-viewer> element plus its control strip.
func ViewerPanel(v ViewerStripData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		wrapCls := "viewer-panel"
		if v.Presentation {
			wrapCls = "viewer-panel presentation"
		}
		h.writef("<div id=\"viewer-panel\" class=\"%s\">", wrapCls)
		h.writef("<model-viewer src=\"%s\" camera-orbit=\"%s\" camera-target=\"%s\" camera-controls",
			esc(v.Src), esc(v.CameraOrbit), esc(v.CameraTarget))
		if v.AutoRotate {
			h.write(" auto-rotate")
		}
		h.write(" hx-post=\"/catalog/viewer/moved\" hx-trigger=\"camera-change once\" hx-target=\"#viewer-controls\" hx-swap=\"outerHTML\">")
		h.write("</model-viewer>")
		h.render(ctx, ControlStrip(v))
		h.write("</div>")
		return h.err
	})
}

// ControlStrip renders the viewer buttons; each posts to a viewer endpoint
// and swaps itself.
func ControlStrip(v ViewerStripData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		rotateLabel := "Auto-rotate: off"
		if v.AutoRotate {
			rotateLabel = "Auto-rotate: on"
		}
		fullLabel := "Fullscreen"
		if v.Fullscreen {
			fullLabel = "Exit fullscreen"
		}

		h.write("<div id=\"viewer-controls\" class=\"control-strip\" hx-target=\"#viewer-controls\" hx-swap=\"outerHTML\">")
		h.write("<button hx-post=\"/catalog/viewer/reset\">Reset view</button>")
		h.write("<button hx-post=\"/catalog/viewer/fit\">Fit to frame</button>")
		h.writef("<button hx-post=\"/catalog/viewer/auto\">%s</button>", esc(rotateLabel))
		// Fullscreen swaps the whole panel so the presentation class follows.
		h.writef("<button hx-post=\"/catalog/viewer/full\" hx-target=\"#viewer-panel\">%s</button>", esc(fullLabel))
		h.write("</div>")
		return h.err
	})
}

package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/templates"
)

// loadProducts returns every product in seed order. An empty result is the
// "models not loading" state; the page halts on it.
func loadProducts(app *pocketbase.PocketBase) []services.Product {
	records, err := app.FindRecordsByFilter("products", "id != ''", "sort_order", 0, 0, nil)
	if err != nil {
		log.Printf("catalog: could not query products: %v", err)
		return nil
	}
	products := make([]services.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, services.ProductFromRecord(rec))
	}
	return products
}

// buildCatalogData assembles the catalog page state for the given filter and
// selection. Selection resolution: explicit id among the filtered records,
// else the first filtered record, else nothing selected.
func buildCatalogData(e *core.RequestEvent, app *pocketbase.PocketBase, query, category, id string) templates.CatalogPageData {
	products := loadProducts(app)
	if len(products) == 0 {
		return templates.CatalogPageData{Halted: true}
	}

	data := templates.CatalogPageData{
		Query:      query,
		Category:   category,
		Categories: services.CategoryOptions(products),
	}

	type indexed struct {
		product services.Product
		id      string
	}
	var filtered []indexed
	for i, p := range products {
		if services.Matches(p, query, category) {
			filtered = append(filtered, indexed{p, services.ProductID(p, i)})
		}
	}

	selected := -1
	if id != "" {
		for i, f := range filtered {
			if f.id == id {
				selected = i
				break
			}
		}
	}
	if selected == -1 && len(filtered) > 0 {
		selected = 0
	}

	for i, f := range filtered {
		data.Entries = append(data.Entries, templates.ProductListEntry{
			ID:       f.id,
			Title:    f.product.Title,
			Subtitle: f.product.Subtitle,
			Category: f.product.Category,
			Letter:   services.SafeLetter(f.product.Title),
			Active:   i == selected,
		})
	}

	if selected >= 0 {
		p := filtered[selected].product
		controls, viewer := sessionViewer(e)
		if viewer.Src != p.Src {
			viewer.SetModelSource(p.Src)
			controls.ScheduleFraming()
		}
		data.Detail = &templates.ProductDetailData{
			Product: p,
			Viewer:  viewerStripData(controls, viewer),
		}
	}
	return data
}

// HandleCatalogPage handles GET /catalog.
func HandleCatalogPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()
		data := buildCatalogData(e, app, q.Get("q"), q.Get("cat"), q.Get("id"))

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.CatalogContent(data)
		} else {
			component = templates.CatalogPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleCatalogList handles GET /catalog/list — the filter bar's swap target.
func HandleCatalogList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()
		data := buildCatalogData(e, app, q.Get("q"), q.Get("cat"), q.Get("id"))
		return templates.CatalogListContent(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleCatalogDetail handles GET /catalog/detail/{slug}. The address bar is
// rewritten in place (no history entry) so the selection is deep-linkable.
func HandleCatalogDetail(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		slug := e.Request.PathValue("slug")
		q := e.Request.URL.Query()
		data := buildCatalogData(e, app, q.Get("q"), q.Get("cat"), slug)

		if data.Halted || data.Detail == nil {
			return ErrorToast(e, http.StatusNotFound, "Product not found")
		}

		page := url.Values{}
		page.Set("id", slug)
		if v := q.Get("q"); v != "" {
			page.Set("q", v)
		}
		if v := q.Get("cat"); v != "" {
			page.Set("cat", v)
		}
		e.Response.Header().Set("HX-Replace-Url", "/catalog?"+page.Encode())

		return templates.ProductDetail(data.Detail).Render(e.Request.Context(), e.Response)
	}
}

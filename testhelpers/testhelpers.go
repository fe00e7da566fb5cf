// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/collections"
	"ironwood/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProduct creates a product record with the given slug, title and
// category and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, slug, title, category string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	existing, err := app.FindAllRecords(col)
	if err != nil {
		t.Fatalf("failed to count products: %v", err)
	}

	record := core.NewRecord(col)
	services.ApplyProductToRecord(services.Product{
		ID:       slug,
		Title:    title,
		Category: category,
		SKU:      "IW-" + strings.ToUpper(slug),
		Material: "White oak",
		Src:      "models/" + slug + ".glb",
		Tags:     []string{"test"},
	}, len(existing), record)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestCatalogItem creates a pricing catalog record and returns it.
func CreateTestCatalogItem(t *testing.T, app *pocketbase.PocketBase, name string, unitPrice float64, note string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		t.Fatalf("failed to find catalog_items collection: %v", err)
	}

	existing, err := app.FindAllRecords(col)
	if err != nil {
		t.Fatalf("failed to count catalog items: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("sort_order", len(existing)+1)
	record.Set("name", name)
	record.Set("unit_price", unitPrice)
	record.Set("note", note)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog item: %v", err)
	}

	return record
}

// CreateTestScopeTemplate creates a scope template record with one seeded line
// and suggested defaults, and returns it.
func CreateTestScopeTemplate(t *testing.T, app *pocketbase.PocketBase, slug, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("scope_templates")
	if err != nil {
		t.Fatalf("failed to find scope_templates collection: %v", err)
	}

	lines, err := json.Marshal([]services.LineItem{
		{Name: "Template line", Qty: 2, UnitPrice: 100},
	})
	if err != nil {
		t.Fatalf("failed to marshal template lines: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("slug", slug)
	record.Set("sort_order", 1)
	record.Set("name", name)
	record.Set("group", "Test")
	record.Set("summary", "A template for tests")
	record.Set("default_markup_pct", 10.0)
	record.Set("default_discount_amt", 0.0)
	record.Set("default_tax_pct", 5.0)
	record.Set("lines", string(lines))
	record.Set("terms", `["Test terms apply."]`)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test scope template: %v", err)
	}

	return record
}

// CreateTestEstimate persists an estimate draft and returns its record.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, est services.Estimate) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	if err := services.ApplyEstimateToRecord(est, record); err != nil {
		t.Fatalf("failed to map test estimate: %v", err)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// SeedDataDir writes a minimal set of seed documents (models.json,
// estimate_catalog.json, scopes.json) into a temp directory and returns its
// path.
func SeedDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	docs := map[string]string{
		"models.json": `[
			{"id": "oak-rail-8ft", "title": "Oak Rail 8ft", "category": "Railings",
			 "sku": "IW-OR8", "material": "White oak", "src": "models/oak-rail.glb",
			 "tags": ["oak", "interior"], "highlights": ["Hand finished"],
			 "downloads": [{"label": "Spec sheet", "href": "docs/oak-rail.pdf", "hint": "PDF"}],
			 "images": ["img/oak-rail-1.jpg"]},
			{"id": "steel-post", "title": "Steel Post", "category": "Posts",
			 "sku": "IW-SP1", "material": "Powder-coated steel", "src": "models/steel-post.glb",
			 "tags": ["steel", "exterior"]}
		]`,
		"estimate_catalog.json": `{"items": [
			{"name": "Oak Rail 8ft", "unit_price": 189.5, "note": "clear coat"},
			{"name": "Steel Post", "unit_price": 74, "note": ""}
		]}`,
		"scopes.json": `{"templates": [
			{"id": "deck-rail", "name": "Deck Railing Package", "group": "Exterior",
			 "summary": "Rails, posts and install for a standard deck",
			 "lines": [{"name": "Oak Rail 8ft", "qty": 4, "unit_price": 189.5, "note": ""}],
			 "defaults": {"markup_pct": 12, "discount_amt": 0, "tax_pct": 5},
			 "notes": "Site measure included.",
			 "terms": ["Deck packages exclude demolition."]}
		], "base_terms": ["Quote valid for the stated number of days."]}`,
	}

	for name, body := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write seed doc %s: %v", name, err)
		}
	}

	return dir
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

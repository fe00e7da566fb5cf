package collections

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
)

// Seed populates the read-only collections from the JSON documents under
// dataDir: models.json (product list), estimate_catalog.json (pricing
// catalog) and scopes.json (scope templates plus base terms).
//
// Each document seeds only when its collection is still empty, so Seed is
// safe to call on every startup. A missing or malformed document is logged
// and its collection left empty; the pages render that as their persistent
// placeholder instead of failing the whole app.
func Seed(app *pocketbase.PocketBase, dataDir string) error {
	if err := seedProducts(app, filepath.Join(dataDir, "models.json")); err != nil {
		return err
	}
	if err := seedCatalogItems(app, filepath.Join(dataDir, "estimate_catalog.json")); err != nil {
		return err
	}
	if err := seedScopes(app, filepath.Join(dataDir, "scopes.json")); err != nil {
		return err
	}
	return nil
}

func seedProducts(app *pocketbase.PocketBase, path string) error {
	col, empty, err := emptyCollection(app, "products")
	if err != nil || !empty {
		return err
	}

	var products []services.Product
	if !loadDocument(path, &products) {
		return nil
	}

	for i, p := range products {
		r := core.NewRecord(col)
		services.ApplyProductToRecord(p, i, r)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save product %q: %w", p.Title, err)
		}
	}
	log.Printf("seed: inserted %d products", len(products))
	return nil
}

func seedCatalogItems(app *pocketbase.PocketBase, path string) error {
	col, empty, err := emptyCollection(app, "catalog_items")
	if err != nil || !empty {
		return err
	}

	var doc struct {
		Items []services.CatalogItem `json:"items"`
	}
	if !loadDocument(path, &doc) {
		return nil
	}

	for i, item := range doc.Items {
		r := core.NewRecord(col)
		r.Set("sort_order", i+1)
		r.Set("name", item.Name)
		r.Set("unit_price", item.UnitPrice)
		r.Set("note", item.Note)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save catalog item %q: %w", item.Name, err)
		}
	}
	log.Printf("seed: inserted %d catalog items", len(doc.Items))
	return nil
}

func seedScopes(app *pocketbase.PocketBase, path string) error {
	col, empty, err := emptyCollection(app, "scope_templates")
	if err != nil || !empty {
		return err
	}

	var doc struct {
		Templates []services.ScopeTemplate `json:"templates"`
		BaseTerms []string                 `json:"base_terms"`
	}
	if !loadDocument(path, &doc) {
		return nil
	}

	for i, tpl := range doc.Templates {
		r := core.NewRecord(col)
		r.Set("slug", tpl.ID)
		r.Set("sort_order", i+1)
		r.Set("name", tpl.Name)
		r.Set("group", tpl.Group)
		r.Set("summary", tpl.Summary)
		r.Set("notes", tpl.Notes)
		r.Set("default_markup_pct", tpl.Defaults.MarkupPct)
		r.Set("default_discount_amt", tpl.Defaults.DiscountAmt)
		r.Set("default_tax_pct", tpl.Defaults.TaxPct)
		r.Set("lines", encodeJSON(tpl.Lines))
		r.Set("terms", encodeJSON(tpl.Terms))
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save scope template %q: %w", tpl.Name, err)
		}
	}

	if len(doc.BaseTerms) > 0 {
		if err := SaveSetting(app, "base_terms", encodeJSON(doc.BaseTerms)); err != nil {
			return fmt.Errorf("seed: save base terms: %w", err)
		}
	}

	log.Printf("seed: inserted %d scope templates", len(doc.Templates))
	return nil
}

// emptyCollection looks up a collection and reports whether it still has no
// records.
func emptyCollection(app *pocketbase.PocketBase, name string) (*core.Collection, bool, error) {
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		return nil, false, fmt.Errorf("seed: could not find %s collection: %w", name, err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return nil, false, fmt.Errorf("seed: could not query %s: %w", name, err)
	}
	return col, len(existing) == 0, nil
}

// loadDocument reads and parses one seed document. Failures are logged, not
// returned: the collection just stays empty.
func loadDocument(path string, dst any) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("seed: skipping %s: %v", filepath.Base(path), err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("seed: skipping %s: malformed document: %v", filepath.Base(path), err)
		return false
	}
	return true
}

func encodeJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

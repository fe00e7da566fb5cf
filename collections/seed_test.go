package collections_test

import (
	"os"
	"path/filepath"
	"testing"

	"ironwood/collections"
	"ironwood/services"
	"ironwood/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	dataDir := testhelpers.SeedDataDir(t)

	if err := collections.Seed(app, dataDir); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Products
	productsCol, _ := app.FindCollectionByNameOrId("products")
	products, err := app.FindAllRecords(productsCol)
	if err != nil {
		t.Fatalf("query products error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	rail, err := app.FindFirstRecordByData("products", "slug", "oak-rail-8ft")
	if err != nil {
		t.Fatalf("oak-rail-8ft not seeded: %v", err)
	}
	p := services.ProductFromRecord(rail)
	if p.Title != "Oak Rail 8ft" || p.Category != "Railings" {
		t.Errorf("product fields = %q/%q", p.Title, p.Category)
	}
	if len(p.Tags) != 2 || len(p.Downloads) != 1 {
		t.Errorf("product lists not decoded: tags=%v downloads=%v", p.Tags, p.Downloads)
	}

	// Catalog
	catalogCol, _ := app.FindCollectionByNameOrId("catalog_items")
	items, _ := app.FindAllRecords(catalogCol)
	if len(items) != 2 {
		t.Fatalf("expected 2 catalog items, got %d", len(items))
	}

	// Scope templates
	scopesCol, _ := app.FindCollectionByNameOrId("scope_templates")
	scopes, _ := app.FindAllRecords(scopesCol)
	if len(scopes) != 1 {
		t.Fatalf("expected 1 scope template, got %d", len(scopes))
	}
	tpl := services.ScopeTemplateFromRecord(scopes[0])
	if tpl.ID != "deck-rail" || len(tpl.Lines) != 1 {
		t.Errorf("template not rebuilt: %+v", tpl)
	}
	if tpl.Defaults.MarkupPct != 12 {
		t.Errorf("template defaults not stored: %+v", tpl.Defaults)
	}

	// Base terms land in settings
	if got := collections.GetSetting(app, "base_terms"); got == "" {
		t.Error("base_terms setting not stored")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	dataDir := testhelpers.SeedDataDir(t)

	if err := collections.Seed(app, dataDir); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app, dataDir); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	productsCol, _ := app.FindCollectionByNameOrId("products")
	products, _ := app.FindAllRecords(productsCol)
	if len(products) != 2 {
		t.Errorf("second run duplicated products: got %d", len(products))
	}
}

func TestSeed_MissingDocumentLeavesCollectionEmpty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Empty dir: every document is missing.
	if err := collections.Seed(app, t.TempDir()); err != nil {
		t.Fatalf("Seed() with missing documents should not error, got: %v", err)
	}

	productsCol, _ := app.FindCollectionByNameOrId("products")
	products, _ := app.FindAllRecords(productsCol)
	if len(products) != 0 {
		t.Errorf("expected empty products, got %d", len(products))
	}
}

func TestSeed_MalformedDocumentLeavesCollectionEmpty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "models.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := collections.Seed(app, dir); err != nil {
		t.Fatalf("Seed() with malformed document should not error, got: %v", err)
	}

	productsCol, _ := app.FindCollectionByNameOrId("products")
	products, _ := app.FindAllRecords(productsCol)
	if len(products) != 0 {
		t.Errorf("expected empty products, got %d", len(products))
	}
}

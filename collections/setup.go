package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the products, catalog_items,
// scope_templates, estimates and settings collections exist.
//
// List-valued fields (tags, lines, terms, ...) are stored as JSON text blobs;
// the services package owns their encoding.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "slug", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "subtitle", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false, Max: 4000})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.TextField{Name: "sku", Required: false})
		c.Fields.Add(&core.TextField{Name: "material", Required: false})
		c.Fields.Add(&core.TextField{Name: "finish", Required: false})
		c.Fields.Add(&core.TextField{Name: "dimensions", Required: false})
		c.Fields.Add(&core.TextField{Name: "weight", Required: false})
		c.Fields.Add(&core.TextField{Name: "lead_time", Required: false})
		c.Fields.Add(&core.TextField{Name: "price_note", Required: false})
		c.Fields.Add(&core.TextField{Name: "updated", Required: false})
		c.Fields.Add(&core.TextField{Name: "src", Required: false})
		c.Fields.Add(&core.TextField{Name: "tags", Required: false, Max: 4000})
		c.Fields.Add(&core.TextField{Name: "highlights", Required: false, Max: 4000})
		c.Fields.Add(&core.TextField{Name: "downloads", Required: false, Max: 4000})
		c.Fields.Add(&core.TextField{Name: "images", Required: false, Max: 4000})
	})

	ensureCollection(app, "catalog_items", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.TextField{Name: "note", Required: false})
	})

	ensureCollection(app, "scope_templates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "slug", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "group", Required: false})
		c.Fields.Add(&core.TextField{Name: "summary", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false, Max: 4000})
		c.Fields.Add(&core.NumberField{Name: "default_markup_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "default_discount_amt", Required: false})
		c.Fields.Add(&core.NumberField{Name: "default_tax_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "lines", Required: false, Max: 8000})
		c.Fields.Add(&core.TextField{Name: "terms", Required: false, Max: 4000})
	})

	ensureCollection(app, "estimates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "number", Required: false})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.TextField{Name: "project", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.NumberField{Name: "valid_days", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false, Max: 8000})
		c.Fields.Add(&core.NumberField{Name: "markup_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount_amt", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "scope_slug", Required: false})
		c.Fields.Add(&core.TextField{Name: "scope_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "lines", Required: false, Max: 64000})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "value", Required: false, Max: 8000})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

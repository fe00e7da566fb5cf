package services

import "github.com/pocketbase/pocketbase/core"

// CatalogItem is one entry of the pricing catalog document.
type CatalogItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Note      string  `json:"note"`
}

// LineFromCatalogItem seeds a new estimate line from a catalog entry.
func LineFromCatalogItem(item CatalogItem) LineItem {
	return LineItem{
		Name:      item.Name,
		Qty:       1,
		UnitPrice: item.UnitPrice,
		Note:      item.Note,
	}
}

// CatalogItemFromRecord rebuilds a CatalogItem from its stored record.
func CatalogItemFromRecord(rec *core.Record) CatalogItem {
	return CatalogItem{
		Name:      rec.GetString("name"),
		UnitPrice: rec.GetFloat("unit_price"),
		Note:      rec.GetString("note"),
	}
}

package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/pocketbase/pocketbase/core"
)

// Download is a single entry of a product's downloads list.
type Download struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Hint  string `json:"hint"`
}

// Product is one record of the product list document. Products are read-only
// after seeding; selection is page state, not record state.
type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	SKU         string     `json:"sku"`
	Material    string     `json:"material"`
	Finish      string     `json:"finish"`
	Dimensions  string     `json:"dimensions"`
	Weight      string     `json:"weight"`
	LeadTime    string     `json:"lead_time"`
	PriceNote   string     `json:"price_note"`
	Updated     string     `json:"updated"`
	Src         string     `json:"src"`
	Tags        []string   `json:"tags"`
	Highlights  []string   `json:"highlights"`
	Downloads   []Download `json:"downloads"`
	Images      []string   `json:"images"`
}

// ProductID returns the product's identifier, falling back to the positional
// index for records without one.
func ProductID(p Product, idx int) string {
	if p.ID != "" {
		return p.ID
	}
	return strconv.Itoa(idx)
}

// SafeLetter returns the uppercased first letter of a title for the list
// badge, or "?" when there is nothing usable.
func SafeLetter(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "?"
	}
	r := []rune(trimmed)[0]
	return string(unicode.ToUpper(r))
}

// ProductFromRecord rebuilds a Product from its stored record. Corrupt list
// blobs degrade to empty lists.
func ProductFromRecord(rec *core.Record) Product {
	p := Product{
		ID:          rec.GetString("slug"),
		Title:       rec.GetString("title"),
		Subtitle:    rec.GetString("subtitle"),
		Description: rec.GetString("description"),
		Category:    rec.GetString("category"),
		SKU:         rec.GetString("sku"),
		Material:    rec.GetString("material"),
		Finish:      rec.GetString("finish"),
		Dimensions:  rec.GetString("dimensions"),
		Weight:      rec.GetString("weight"),
		LeadTime:    rec.GetString("lead_time"),
		PriceNote:   rec.GetString("price_note"),
		Updated:     rec.GetString("updated"),
		Src:         rec.GetString("src"),
	}
	decodeList(rec.GetString("tags"), &p.Tags)
	decodeList(rec.GetString("highlights"), &p.Highlights)
	decodeList(rec.GetString("downloads"), &p.Downloads)
	decodeList(rec.GetString("images"), &p.Images)
	return p
}

// ApplyProductToRecord writes every product field onto the record.
func ApplyProductToRecord(p Product, idx int, rec *core.Record) {
	rec.Set("slug", ProductID(p, idx))
	rec.Set("sort_order", idx+1)
	rec.Set("title", p.Title)
	rec.Set("subtitle", p.Subtitle)
	rec.Set("description", p.Description)
	rec.Set("category", p.Category)
	rec.Set("sku", p.SKU)
	rec.Set("material", p.Material)
	rec.Set("finish", p.Finish)
	rec.Set("dimensions", p.Dimensions)
	rec.Set("weight", p.Weight)
	rec.Set("lead_time", p.LeadTime)
	rec.Set("price_note", p.PriceNote)
	rec.Set("updated", p.Updated)
	rec.Set("src", p.Src)
	rec.Set("tags", encodeList(p.Tags))
	rec.Set("highlights", encodeList(p.Highlights))
	rec.Set("downloads", encodeList(p.Downloads))
	rec.Set("images", encodeList(p.Images))
}

func decodeList(raw string, dst any) {
	if raw == "" {
		return
	}
	_ = json.Unmarshal([]byte(raw), dst)
}

func encodeList(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

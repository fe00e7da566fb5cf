package services

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// fieldDelimiter separates fields in the search haystack so a query cannot
// accidentally match across two adjacent fields.
const fieldDelimiter = " | "

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether a product survives the list filters. The category
// filter is an exact case-insensitive match; the query filter is a
// case-insensitive substring match over title, subtitle, description,
// category, sku, material, finish and all tags. An empty query matches
// everything.
func Matches(p Product, query, category string) bool {
	if nc := normalize(category); nc != "" && normalize(p.Category) != nc {
		return false
	}
	nq := normalize(query)
	if nq == "" {
		return true
	}

	fields := []string{
		p.Title, p.Subtitle, p.Description, p.Category,
		p.SKU, p.Material, p.Finish,
	}
	fields = append(fields, p.Tags...)
	for i, f := range fields {
		fields[i] = normalize(f)
	}
	return strings.Contains(strings.Join(fields, fieldDelimiter), nq)
}

// CategoryOptions returns the deduplicated, collation-sorted set of non-empty
// categories across all products, for the filter dropdown.
func CategoryOptions(products []Product) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	collate.New(language.English).SortStrings(cats)
	return cats
}

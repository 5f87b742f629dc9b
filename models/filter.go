package models

import "strings"

// AllCategories is the category selector that matches every product.
const AllCategories = "all"

// Filter returns the products matching both query and category, in their
// original order. The query is a case-insensitive substring of the name or
// description; an empty query matches everything. The category matches when
// it is AllCategories or equals the product category, ignoring case.
func Filter(products []Product, query, category string) []Product {
	q := strings.ToLower(query)
	all := category == "" || strings.EqualFold(category, AllCategories)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !all && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

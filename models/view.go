package models

import "strings"

// View is the navigation and filter state of one visitor.
// SelectedProductID is set only while Route is RouteProduct.
type View struct {
	Route             Route  `json:"route"`
	SelectedProductID string `json:"selected_product_id,omitempty"`
	Category          string `json:"category"`
	Query             string `json:"query"`
}

// NewView returns the initial view: home screen, no filters.
func NewView() View {
	return View{
		Route:    RouteHome,
		Category: AllCategories,
	}
}

// NormalizeCategory lowercases and trims a category selector. Empty means
// AllCategories.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return AllCategories
	}
	return c
}

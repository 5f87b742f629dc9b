package models

import (
	"github.com/shopspring/decimal"
)

// StaticCatalog serves the catalog from memory. It is safe for concurrent use
// because nothing mutates it after construction.
type StaticCatalog struct {
	products   []Product
	categories []Category
}

func NewStaticCatalog(products []Product, categories []Category) *StaticCatalog {
	return &StaticCatalog{
		products:   products,
		categories: categories,
	}
}

// NewDefaultCatalog returns the built-in NEON-X catalog.
func NewDefaultCatalog() *StaticCatalog {
	return NewStaticCatalog(DefaultProducts(), DefaultCategories())
}

func (c *StaticCatalog) GetAllProducts() ([]Product, error) {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *StaticCatalog) GetByID(id string) (*Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (c *StaticCatalog) GetAllCategories() ([]Category, error) {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

// DefaultCategories returns the built-in category table.
func DefaultCategories() []Category {
	return []Category{
		{ID: "electronics", Name: "CYBER-CORE", Image: "https://picsum.photos/seed/cyber1/600/400"},
		{ID: "fashion", Name: "NEO-WEAR", Image: "https://picsum.photos/seed/cyber2/600/400"},
		{ID: "gadgets", Name: "AUGMENTS", Image: "https://picsum.photos/seed/cyber3/600/400"},
		{ID: "vehicles", Name: "DRIFTERS", Image: "https://picsum.photos/seed/cyber4/600/400"},
	}
}

// DefaultProducts returns the built-in product table in display order.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:            "1",
			Position:      1,
			Name:          "Neural Link V2",
			Description:   "Direct cortex interface with 10ms latency. Includes subconscious backup and mood filtering.",
			Price:         price("1299.99"),
			OriginalPrice: pricePtr("1599.99"),
			Image:         "https://picsum.photos/seed/neural/400/500",
			Category:      "electronics",
			Rating:        4.8,
			Tags:          []string{"Cybernetic", "Elite"},
			OnSale:        true,
			IsNew:         true,
		},
		{
			ID:          "2",
			Position:    2,
			Name:        "Holo-Visor G-7",
			Description: "Augmented reality overlay with thermal vision and tactical drone integration.",
			Price:       price("450.00"),
			Image:       "https://picsum.photos/seed/visor/400/500",
			Category:    "electronics",
			Rating:      4.5,
			Tags:        []string{"Tactical", "Visual"},
		},
		{
			ID:          "3",
			Position:    3,
			Name:        "Stealth Weave Trench",
			Description: "Light-bending fabric provides 90% invisibility in low-light environments. Waterproof.",
			Price:       price("899.00"),
			Image:       "https://picsum.photos/seed/trench/400/500",
			Category:    "fashion",
			Rating:      4.9,
			Tags:        []string{"Stealth", "Premium"},
		},
		{
			ID:            "4",
			Position:      4,
			Name:          "Neon Kinetic Boots",
			Description:   "Energy-harvesting footwear that glows with every step. Boosts jump height by 15%.",
			Price:         price("299.00"),
			OriginalPrice: pricePtr("350.00"),
			Image:         "https://picsum.photos/seed/boots/400/500",
			Category:      "fashion",
			Rating:        4.2,
			Tags:          []string{"Kinetic", "Glow"},
			OnSale:        true,
		},
		{
			ID:          "5",
			Position:    5,
			Name:        "Plasma Cutter Tool",
			Description: "Industrial-grade precision tool. Slices through steel like butter.",
			Price:       price("150.00"),
			Image:       "https://picsum.photos/seed/cutter/400/500",
			Category:    "gadgets",
			Rating:      4.7,
			Tags:        []string{"Industrial"},
		},
		{
			ID:          "6",
			Position:    6,
			Name:        "Cipher Hand Augment",
			Description: "Finger-tip based decryption interface. Bypass level 3 security protocols.",
			Price:       price("2100.00"),
			Image:       "https://picsum.photos/seed/cipher/400/500",
			Category:    "gadgets",
			Rating:      5.0,
			Tags:        []string{"Hack-Ready", "Illegal-ish"},
			IsNew:       true,
		},
	}
}

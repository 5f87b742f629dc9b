package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Products are created once from the built-in table and never mutated.
type Product struct {
	ID            string           `gorm:"primaryKey" json:"id"`
	Position      int              `gorm:"not null;index" json:"-"`
	Name          string           `gorm:"not null" json:"name"`
	Description   string           `gorm:"not null" json:"description"`
	Image         string           `json:"image"`
	Category      string           `gorm:"not null;index" json:"category"`
	Tags          []string         `gorm:"serializer:json" json:"tags"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"original_price,omitempty"`
	Rating        float64          `json:"rating"`
	IsNew         bool             `json:"is_new,omitempty"`
	OnSale        bool             `json:"on_sale,omitempty"`
}

func (p *Product) TableName() string {
	return "products"
}

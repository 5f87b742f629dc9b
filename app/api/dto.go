package api

import (
	"github.com/onionfightclub-arch/neon-cyber-store/models"
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Rating        float64  `json:"rating"`
	IsNew         bool     `json:"is_new"`
	OnSale        bool     `json:"on_sale"`
}

type CartItem struct {
	Product
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type Cart struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
}

func NewCategory(c models.Category) Category {
	return Category{
		ID:    c.ID,
		Name:  c.Name,
		Image: c.Image,
	}
}

func NewCategories(categories []models.Category) []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = NewCategory(c)
	}
	return out
}

func NewProduct(p models.Product) Product {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Tags:        tags,
		Price:       p.Price.InexactFloat64(),
		Rating:      p.Rating,
		IsNew:       p.IsNew,
		OnSale:      p.OnSale,
	}
	if p.OriginalPrice != nil {
		original := p.OriginalPrice.InexactFloat64()
		out.OriginalPrice = &original
	}
	return out
}

func NewProducts(products []models.Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = NewProduct(p)
	}
	return out
}

func NewCart(c models.Cart) Cart {
	items := make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItem{
			Product:   NewProduct(item.Product),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().InexactFloat64(),
		}
	}
	return Cart{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal().InexactFloat64(),
	}
}

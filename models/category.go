package models

// Category represents a product category.
// Its ID is the value products carry in their Category field.
type Category struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Image string `json:"image"`
}

func (c *Category) TableName() string {
	return "categories"
}

package models

import (
	"github.com/shopspring/decimal"
)

// CartItem is a line item: a product and how many of it are in the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds line items in the order they were first added.
// There is at most one line per product ID and every quantity is at least 1.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) indexOf(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add increments the line for p, appending a new line with quantity 1 if
// the product is not in the cart yet.
func (c *Cart) Add(p Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// AdjustQuantity adds delta to the line for id. The line is removed when the
// result is zero or less. Unknown ids are ignored.
func (c *Cart) AdjustQuantity(id string, delta int) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	qty := c.Items[i].Quantity + delta
	if qty <= 0 {
		c.removeAt(i)
		return
	}
	c.Items[i].Quantity = qty
}

// Remove deletes the line for id if present.
func (c *Cart) Remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Item returns the line for id.
func (c Cart) Item(id string) (CartItem, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

// ItemCount is the sum of quantities across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal is the sum of price times quantity across all lines.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clone returns a copy that shares no line storage with c.
func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

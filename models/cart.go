package models

import "github.com/shopspring/decimal"

// CartLineItem is a product plus the quantity held in the cart.
// Quantity is always at least 1.
type CartLineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price * quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSnapshot is a read-only copy of the cart handed to renderers.
type CartSnapshot struct {
	Items []CartLineItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line item for name, if present.
func (s CartSnapshot) Find(name string) (CartLineItem, bool) {
	for _, item := range s.Items {
		if item.Name == name {
			return item, true
		}
	}
	return CartLineItem{}, false
}

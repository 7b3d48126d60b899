package domain

import "github.com/shopspring/decimal"

// LineItem pairs a product with a quantity in the cart. Quantity is at least
// 1 while the item is present.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is the unit price multiplied by the quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Product.UnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

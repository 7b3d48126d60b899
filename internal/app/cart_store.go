package app

import (
	"sync"

	"shopfront/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat sales tax applied to the cart subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// CartSummary is the cart contents with its derived totals.
type CartSummary struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Tax        decimal.Decimal   `json:"tax"`
	Total      decimal.Decimal   `json:"total"`
}

// CartStore holds the line items of the active session. At most one line
// item exists per product id and every quantity is at least 1.
type CartStore struct {
	taxRate decimal.Decimal

	mu    sync.Mutex
	items []domain.LineItem
	obs   observers[CartSummary]
}

// NewCartStore creates an empty cart taxed at taxRate.
func NewCartStore(taxRate decimal.Decimal) *CartStore {
	return &CartStore{taxRate: taxRate}
}

// Subscribe registers fn to receive the cart after every change.
func (c *CartStore) Subscribe(fn func(CartSummary)) (unsubscribe func()) {
	return c.obs.subscribe(fn)
}

func (c *CartStore) indexOf(productID string) int {
	for i, li := range c.items {
		if li.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *CartStore) commit() {
	c.obs.enqueue(c.summaryLocked())
	c.mu.Unlock()
	c.obs.flush()
}

// Add puts one more unit of p in the cart.
func (c *CartStore) Add(p domain.Product) {
	c.mu.Lock()
	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, domain.LineItem{Product: p, Quantity: 1})
	}
	c.commit()
}

// Remove drops the line item for p, if any.
func (c *CartStore) Remove(p domain.Product) {
	c.mu.Lock()
	i := c.indexOf(p.ID)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.commit()
}

// UpdateQuantity sets the quantity of p's line item. A quantity of zero or
// less removes it. A product that is not in the cart is never added here,
// unlike Add.
func (c *CartStore) UpdateQuantity(p domain.Product, quantity int) {
	if quantity <= 0 {
		c.Remove(p)
		return
	}
	c.mu.Lock()
	i := c.indexOf(p.ID)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.items[i].Quantity = quantity
	c.commit()
}

// Clear empties the cart.
func (c *CartStore) Clear() {
	c.mu.Lock()
	c.items = nil
	c.commit()
}

// Drain returns the cart summary and empties the cart in one step. Draining
// an empty cart changes nothing and does not notify.
func (c *CartStore) Drain() CartSummary {
	c.mu.Lock()
	sum := c.summaryLocked()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return sum
	}
	c.items = nil
	c.commit()
	return sum
}

// Quantity returns how many units of p are in the cart.
func (c *CartStore) Quantity(p domain.Product) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(p.ID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

// Items returns a copy of the line items in insertion order.
func (c *CartStore) Items() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemsLocked()
}

func (c *CartStore) itemsLocked() []domain.LineItem {
	out := make([]domain.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of all quantities.
func (c *CartStore) TotalItems() int {
	return c.Summary().TotalItems
}

// Subtotal is the sum of unit price times quantity over all line items.
func (c *CartStore) Subtotal() decimal.Decimal {
	return c.Summary().Subtotal
}

// Tax is the subtotal multiplied by the tax rate.
func (c *CartStore) Tax() decimal.Decimal {
	return c.Summary().Tax
}

// Total is subtotal plus tax.
func (c *CartStore) Total() decimal.Decimal {
	return c.Summary().Total
}

// Summary returns the line items and totals computed from them.
func (c *CartStore) Summary() CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

func (c *CartStore) summaryLocked() CartSummary {
	sum := CartSummary{Items: c.itemsLocked(), Subtotal: decimal.Zero}
	for _, li := range c.items {
		sum.TotalItems += li.Quantity
		sum.Subtotal = sum.Subtotal.Add(li.LineTotal())
	}
	sum.Tax = sum.Subtotal.Mul(c.taxRate)
	sum.Total = sum.Subtotal.Add(sum.Tax)
	return sum
}

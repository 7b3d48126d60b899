// Package catalog holds the read-only product list.
package catalog

import (
	"fmt"

	"shopfront/internal/domain"
	"shopfront/internal/search"
)

// Catalog is an immutable, ordered list of products.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New validates products and builds a Catalog. Product ids must be unique.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Default returns the catalog built from SeedProducts.
func Default() *Catalog {
	c, err := New(SeedProducts())
	if err != nil {
		panic(err)
	}
	return c
}

// Query narrows the product list the way the home screen does.
// Zero-valued fields do not filter.
type Query struct {
	Gender   domain.Gender   `schema:"gender"`
	Category domain.Category `schema:"category"`
	Text     string          `schema:"q"`
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []domain.Product {
	return c.filter(func(domain.Product) bool { return true })
}

// ProductsForGender returns the products sold to g.
func (c *Catalog) ProductsForGender(g domain.Gender) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Gender == g })
}

// ProductsForCategory returns the products in category cat sold to g.
func (c *Catalog) ProductsForCategory(cat domain.Category, g domain.Gender) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Category == cat && p.Gender == g })
}

// Product looks a product up by id.
func (c *Catalog) Product(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Filter applies q. The text filter matches name or description ignoring
// case.
func (c *Catalog) Filter(q Query) []domain.Product {
	m := search.NewMatcher(q.Text)
	return c.filter(func(p domain.Product) bool {
		if q.Gender != "" && p.Gender != q.Gender {
			return false
		}
		if q.Category != "" && p.Category != q.Category {
			return false
		}
		return m.Match(p)
	})
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) filter(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

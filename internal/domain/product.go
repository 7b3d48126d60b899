// Package domain contains the core business entities and interfaces.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Category groups products on the home and favorites screens.
type Category string

// Product categories.
const (
	CategoryClothing    Category = "Clothing"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
	CategoryBags        Category = "Bags"
	CategoryJewelry     Category = "Jewelry"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryClothing,
	CategoryShoes,
	CategoryAccessories,
	CategoryBags,
	CategoryJewelry,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Gender is the audience a product is sold to.
type Gender string

// Product genders.
const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// Genders lists every gender in display order.
var Genders = []Gender{GenderMen, GenderWomen, GenderUnisex}

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// ErrInvalidProduct is returned by Product.Validate.
var ErrInvalidProduct = errors.New("invalid product")

// Product is an immutable catalog entry. Identity is ID.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	ImageName   string           `json:"imageName"`
	Category    Category         `json:"category"`
	Gender      Gender           `json:"gender"`
	Rating      float64          `json:"rating"`
	IsOnSale    bool             `json:"isOnSale"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
}

// UnitPrice is the price a buyer pays for one unit: the sale price when the
// product is on sale and has one, the list price otherwise.
func (p Product) UnitPrice() decimal.Decimal {
	if p.IsOnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// DisplayPrice formats UnitPrice for display, e.g. "$59.99".
func (p Product) DisplayPrice() string {
	return FormatPrice(p.UnitPrice())
}

// OriginalPrice formats the list price of an on-sale product. It returns ""
// for products that are not on sale.
func (p Product) OriginalPrice() string {
	if !p.IsOnSale {
		return ""
	}
	return FormatPrice(p.Price)
}

// Validate checks the product's invariants.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w %s: price must be non-negative", ErrInvalidProduct, p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w %s: rating must be within [0, 5]", ErrInvalidProduct, p.ID)
	case !p.Category.Valid():
		return fmt.Errorf("%w %s: unknown category %q", ErrInvalidProduct, p.ID, p.Category)
	case !p.Gender.Valid():
		return fmt.Errorf("%w %s: unknown gender %q", ErrInvalidProduct, p.ID, p.Gender)
	case p.SalePrice != nil && !p.IsOnSale:
		return fmt.Errorf("%w %s: sale price set on a product that is not on sale", ErrInvalidProduct, p.ID)
	case p.SalePrice != nil && p.SalePrice.GreaterThan(p.Price):
		return fmt.Errorf("%w %s: sale price exceeds price", ErrInvalidProduct, p.ID)
	}
	return nil
}

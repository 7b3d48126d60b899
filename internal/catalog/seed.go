package catalog

import (
	"shopfront/internal/domain"

	"github.com/shopspring/decimal"
)

func sale(s string) *decimal.Decimal {
	d := domain.MustPrice(s)
	return &d
}

// SeedProducts returns the twelve demo products: six men's, six women's.
func SeedProducts() []domain.Product {
	p := domain.MustPrice
	return []domain.Product{
		// Men
		{ID: "1", Name: "Classic White T-Shirt", Description: "Premium cotton crew neck t-shirt", Price: p("29.99"), ImageName: "tshirt", Category: domain.CategoryClothing, Gender: domain.GenderMen, Rating: 4.5},
		{ID: "2", Name: "Slim Fit Jeans", Description: "Dark wash slim fit denim jeans", Price: p("79.99"), ImageName: "jeans", Category: domain.CategoryClothing, Gender: domain.GenderMen, Rating: 4.3, IsOnSale: true, SalePrice: sale("59.99")},
		{ID: "3", Name: "Leather Sneakers", Description: "Casual leather sneakers with rubber sole", Price: p("89.99"), ImageName: "sneakers", Category: domain.CategoryShoes, Gender: domain.GenderMen, Rating: 4.7},
		{ID: "4", Name: "Leather Wallet", Description: "Genuine leather bifold wallet", Price: p("49.99"), ImageName: "wallet", Category: domain.CategoryAccessories, Gender: domain.GenderMen, Rating: 4.2},
		{ID: "5", Name: "Denim Jacket", Description: "Classic denim jacket with brass buttons", Price: p("119.99"), ImageName: "jacket", Category: domain.CategoryClothing, Gender: domain.GenderMen, Rating: 4.6, IsOnSale: true, SalePrice: sale("89.99")},
		{ID: "6", Name: "Running Shoes", Description: "Lightweight running shoes with cushioning", Price: p("129.99"), ImageName: "runningshoes", Category: domain.CategoryShoes, Gender: domain.GenderMen, Rating: 4.8},

		// Women
		{ID: "7", Name: "Floral Dress", Description: "Elegant floral print summer dress", Price: p("89.99"), ImageName: "dress", Category: domain.CategoryClothing, Gender: domain.GenderWomen, Rating: 4.6},
		{ID: "8", Name: "High Heel Pumps", Description: "Classic black high heel pumps", Price: p("99.99"), ImageName: "heels", Category: domain.CategoryShoes, Gender: domain.GenderWomen, Rating: 4.4, IsOnSale: true, SalePrice: sale("79.99")},
		{ID: "9", Name: "Leather Handbag", Description: "Stylish leather crossbody handbag", Price: p("149.99"), ImageName: "handbag", Category: domain.CategoryBags, Gender: domain.GenderWomen, Rating: 4.7},
		{ID: "10", Name: "Silver Necklace", Description: "Delicate silver chain necklace", Price: p("69.99"), ImageName: "necklace", Category: domain.CategoryJewelry, Gender: domain.GenderWomen, Rating: 4.3},
		{ID: "11", Name: "Skinny Jeans", Description: "High-waisted skinny jeans in blue", Price: p("89.99"), ImageName: "womensjeans", Category: domain.CategoryClothing, Gender: domain.GenderWomen, Rating: 4.5, IsOnSale: true, SalePrice: sale("69.99")},
		{ID: "12", Name: "Ankle Boots", Description: "Chic ankle boots with block heel", Price: p("119.99"), ImageName: "boots", Category: domain.CategoryShoes, Gender: domain.GenderWomen, Rating: 4.6},
	}
}

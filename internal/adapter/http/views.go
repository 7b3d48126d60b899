package adapthttp

import (
	"time"

	"shopfront/internal/app"
	"shopfront/internal/domain"

	"github.com/shopspring/decimal"
)

// Money fields are rendered as fixed two-decimal strings.

type productView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ImageName     string  `json:"imageName"`
	Category      string  `json:"category"`
	Gender        string  `json:"gender"`
	Rating        float64 `json:"rating"`
	IsOnSale      bool    `json:"isOnSale"`
	Price         string  `json:"price"`
	SalePrice     string  `json:"salePrice,omitempty"`
	DisplayPrice  string  `json:"displayPrice"`
	OriginalPrice string  `json:"originalPrice,omitempty"`
}

func newProductView(p domain.Product) productView {
	v := productView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		ImageName:     p.ImageName,
		Category:      string(p.Category),
		Gender:        string(p.Gender),
		Rating:        p.Rating,
		IsOnSale:      p.IsOnSale,
		Price:         money(p.Price),
		DisplayPrice:  p.DisplayPrice(),
		OriginalPrice: p.OriginalPrice(),
	}
	if p.SalePrice != nil {
		v.SalePrice = money(*p.SalePrice)
	}
	return v
}

func newProductViews(ps []domain.Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, newProductView(p))
	}
	return out
}

type lineItemView struct {
	Product   productView `json:"product"`
	Quantity  int         `json:"quantity"`
	LineTotal string      `json:"lineTotal"`
}

type cartView struct {
	Items      []lineItemView `json:"items"`
	TotalItems int            `json:"totalItems"`
	Subtotal   string         `json:"subtotal"`
	Tax        string         `json:"tax"`
	Total      string         `json:"total"`
}

func newCartView(sum app.CartSummary) cartView {
	v := cartView{
		Items:      make([]lineItemView, 0, len(sum.Items)),
		TotalItems: sum.TotalItems,
		Subtotal:   money(sum.Subtotal),
		Tax:        money(sum.Tax),
		Total:      money(sum.Total),
	}
	for _, li := range sum.Items {
		v.Items = append(v.Items, lineItemView{
			Product:   newProductView(li.Product),
			Quantity:  li.Quantity,
			LineTotal: money(li.LineTotal()),
		})
	}
	return v
}

type receiptView struct {
	cartView
	PlacedAt time.Time `json:"placedAt"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"
)

var (
	// ErrProductNotFound indicates a product id missing from the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrCartEmpty indicates a checkout attempted with nothing in the cart.
	ErrCartEmpty = errors.New("cart is empty")
)

// Receipt summarises a completed checkout.
type Receipt struct {
	CartSummary
	PlacedAt time.Time `json:"placedAt"`
}

// Shop composes the catalog and the three state stores for one session.
// The stores stay independent; Shop is where they meet.
type Shop struct {
	Catalog   *catalog.Catalog
	Session   *SessionStore
	Cart      *CartStore
	Favorites *FavoritesStore

	now func() time.Time
}

// NewShop wires the given catalog and stores together.
func NewShop(c *catalog.Catalog, s *SessionStore, cart *CartStore, fav *FavoritesStore) *Shop {
	return &Shop{Catalog: c, Session: s, Cart: cart, Favorites: fav, now: time.Now}
}

// Trace logs every session, cart and favorites change at debug level. The
// returned func unsubscribes.
func (sh *Shop) Trace(log *slog.Logger) (stop func()) {
	stops := []func(){
		sh.Session.Subscribe(func(st SessionState) {
			userID := ""
			if st.CurrentUser != nil {
				userID = st.CurrentUser.ID
			}
			log.Debug("session changed",
				"authenticated", st.IsAuthenticated,
				"user_id", userID,
				"loading", st.IsLoading,
				"error", st.ErrorMessage,
			)
		}),
		sh.Cart.Subscribe(func(sum CartSummary) {
			log.Debug("cart changed", "items", sum.TotalItems, "total", sum.Total.StringFixed(2))
		}),
		sh.Favorites.Subscribe(func(favs []domain.Product) {
			log.Debug("favorites changed", "count", len(favs))
		}),
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// Product resolves a catalog id.
func (sh *Shop) Product(id string) (domain.Product, error) {
	p, ok := sh.Catalog.Product(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}
	return p, nil
}

// SignOut ends the session and resets the cart and favorites.
func (sh *Shop) SignOut() {
	sh.Session.SignOut()
	sh.Cart.Clear()
	sh.Favorites.Clear()
}

// Checkout completes the order: it returns the cart as it stood and empties
// it.
func (sh *Shop) Checkout() (Receipt, error) {
	sum := sh.Cart.Drain()
	if len(sum.Items) == 0 {
		return Receipt{}, ErrCartEmpty
	}
	return Receipt{CartSummary: sum, PlacedAt: sh.now()}, nil
}

// AddToCart adds one unit of the product with the given id.
func (sh *Shop) AddToCart(id string) error {
	p, err := sh.Product(id)
	if err != nil {
		return err
	}
	sh.Cart.Add(p)
	return nil
}

// RemoveFromCart drops the product's line item.
func (sh *Shop) RemoveFromCart(id string) error {
	p, err := sh.Product(id)
	if err != nil {
		return err
	}
	sh.Cart.Remove(p)
	return nil
}

// UpdateCartQuantity sets the product's quantity in the cart.
func (sh *Shop) UpdateCartQuantity(id string, quantity int) error {
	p, err := sh.Product(id)
	if err != nil {
		return err
	}
	sh.Cart.UpdateQuantity(p, quantity)
	return nil
}

// ToggleFavorite flips the product's favorite flag and returns the new value.
func (sh *Shop) ToggleFavorite(id string) (bool, error) {
	p, err := sh.Product(id)
	if err != nil {
		return false, err
	}
	return sh.Favorites.Toggle(p), nil
}

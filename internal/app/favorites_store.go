package app

import (
	"sync"

	"shopfront/internal/domain"
	"shopfront/internal/search"
)

// FavoritesStore is an insertion-ordered set of products, unique by id.
type FavoritesStore struct {
	mu       sync.Mutex
	products []domain.Product
	obs      observers[[]domain.Product]
}

// NewFavoritesStore creates an empty favorites list.
func NewFavoritesStore() *FavoritesStore {
	return &FavoritesStore{}
}

// Subscribe registers fn to receive the favorites after every change.
func (f *FavoritesStore) Subscribe(fn func([]domain.Product)) (unsubscribe func()) {
	return f.obs.subscribe(fn)
}

func (f *FavoritesStore) commit() {
	f.obs.enqueue(f.snapshotLocked())
	f.mu.Unlock()
	f.obs.flush()
}

func (f *FavoritesStore) containsLocked(id string) bool {
	for _, p := range f.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Add appends p unless a product with the same id is already present.
func (f *FavoritesStore) Add(p domain.Product) {
	f.mu.Lock()
	if f.containsLocked(p.ID) {
		f.mu.Unlock()
		return
	}
	f.products = append(f.products, p)
	f.commit()
}

// Remove drops every entry with p's id.
func (f *FavoritesStore) Remove(p domain.Product) {
	f.mu.Lock()
	if !f.removeLocked(p.ID) {
		f.mu.Unlock()
		return
	}
	f.commit()
}

func (f *FavoritesStore) removeLocked(id string) bool {
	kept := f.products[:0:0]
	for _, q := range f.products {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	removed := len(kept) != len(f.products)
	f.products = kept
	return removed
}

// Toggle removes p if it is a favorite and adds it otherwise. It reports
// whether p is a favorite afterwards.
func (f *FavoritesStore) Toggle(p domain.Product) bool {
	f.mu.Lock()
	added := !f.removeLocked(p.ID)
	if added {
		f.products = append(f.products, p)
	}
	f.commit()
	return added
}

// IsFavorite reports whether a product with p's id is in the list.
func (f *FavoritesStore) IsFavorite(p domain.Product) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.containsLocked(p.ID)
}

// Clear empties the list.
func (f *FavoritesStore) Clear() {
	f.mu.Lock()
	f.products = nil
	f.commit()
}

// Count returns the number of favorites.
func (f *FavoritesStore) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

// Favorites returns every favorite in insertion order.
func (f *FavoritesStore) Favorites() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// FavoritesByGender returns the favorites sold to g.
func (f *FavoritesStore) FavoritesByGender(g domain.Gender) []domain.Product {
	return f.filter(func(p domain.Product) bool { return p.Gender == g })
}

// FavoritesByCategory returns the favorites in category c.
func (f *FavoritesStore) FavoritesByCategory(c domain.Category) []domain.Product {
	return f.filter(func(p domain.Product) bool { return p.Category == c })
}

// Search returns the favorites whose name or description contains query,
// ignoring case. An empty query returns every favorite.
func (f *FavoritesStore) Search(query string) []domain.Product {
	m := search.NewMatcher(query)
	return f.filter(m.Match)
}

func (f *FavoritesStore) filter(keep func(domain.Product) bool) []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f *FavoritesStore) snapshotLocked() []domain.Product {
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out
}

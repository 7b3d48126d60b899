package app_test

import (
	"sync"
	"time"

	"shopfront/internal/domain"

	"github.com/shopspring/decimal"
)

// manualScheduler queues deferred work until the test runs it.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manualScheduler) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// RunNext runs the oldest queued func. It reports false when nothing is
// queued.
func (m *manualScheduler) RunNext() bool {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return false
	}
	f := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	f()
	return true
}

func (m *manualScheduler) RunAll() {
	for m.RunNext() {
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id string, p string, g domain.Gender, c domain.Category) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: price(p), Gender: g, Category: c}
}

func saleProduct(id, p, sale string) domain.Product {
	sp := price(sale)
	return domain.Product{ID: id, Name: "Sale " + id, Price: price(p), IsOnSale: true, SalePrice: &sp,
		Gender: domain.GenderUnisex, Category: domain.CategoryClothing}
}

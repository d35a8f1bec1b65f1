package repo

import (
	"fmt"
	"sync"
	"time"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// InMemoryCheckoutRepository commits checkouts against the in-memory
// repositories. Its own mutex serializes whole checkouts, so the stock
// check, decrements and append form one critical section.
type InMemoryCheckoutRepository struct {
	mu       sync.Mutex
	products *InMemoryProductRepository
	sales    *InMemorySaleRepository
}

func NewInMemoryCheckoutRepository(products *InMemoryProductRepository, sales *InMemorySaleRepository) *InMemoryCheckoutRepository {
	return &InMemoryCheckoutRepository{products: products, sales: sales}
}

func (r *InMemoryCheckoutRepository) Checkout(lines []models.CartLine, payment models.PaymentMethod, now time.Time) (CheckoutResult, error) {
	if err := validateCart(lines, payment); err != nil {
		return CheckoutResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Check every line before touching anything.
	products := make(map[string]models.Product, len(lines))
	updated := make(map[string]int, len(lines))
	for _, line := range lines {
		p, err := r.products.Get(line.Code)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("%w: %q", ErrProductNotFound, line.Code)
		}
		newStock := p.Stock - line.Quantity
		if newStock < 0 {
			return CheckoutResult{}, fmt.Errorf("%w: %q has %d, cart asks %d",
				ErrInsufficientStock, p.Code, p.Stock, line.Quantity)
		}
		products[line.Code] = p
		updated[line.Code] = newStock
	}

	for code, newStock := range updated {
		p := products[code]
		p.Stock = newStock
		if err := r.products.Put(p); err != nil {
			return CheckoutResult{}, fmt.Errorf("checkout: decrement %q: %w", code, err)
		}
	}

	sale, err := r.sales.Append(buildSale(lines, products, payment, now))
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	return CheckoutResult{Sale: sale, UpdatedStocks: updated}, nil
}

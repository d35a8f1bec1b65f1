package repo

import (
	"sort"
	"sync"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository, used by the handler test suites.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products map[string]models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{products: map[string]models.Product{}}
}

// Put inserts or replaces a product keyed by its code.
func (r *InMemoryProductRepository) Put(p models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.Code] = normalizeCategory(p)
	return nil
}

// Get retrieves a product by code.
func (r *InMemoryProductRepository) Get(code string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[code]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// GetAll retrieves all products, ordered by code.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Code < products[j].Code })
	return products, nil
}

// Delete removes a product by code; missing codes are a no-op.
func (r *InMemoryProductRepository) Delete(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, code)
	return nil
}

// Clear removes every product. Test helper.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[string]models.Product{}
}

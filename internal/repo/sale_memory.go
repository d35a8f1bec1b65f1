package repo

import (
	"sync"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// InMemorySaleRepository is an in-memory implementation of SaleRepository,
// used by the handler test suites. Sales are kept in insertion order.
type InMemorySaleRepository struct {
	mu     sync.Mutex
	sales  []models.Sale
	nextID int64
}

// NewInMemorySaleRepository creates a new instance of InMemorySaleRepository.
func NewInMemorySaleRepository() *InMemorySaleRepository {
	return &InMemorySaleRepository{nextID: 1}
}

// Append assigns the next id and stores the sale.
func (r *InMemorySaleRepository) Append(s models.Sale) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	s.LineItems = copyItems(s.LineItems)
	r.sales = append(r.sales, s)
	return s, nil
}

// Get retrieves a sale by id.
func (r *InMemorySaleRepository) Get(id int64) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

// ListAll retrieves every sale in insertion order.
func (r *InMemorySaleRepository) ListAll() ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

// ListByRange retrieves every sale with start <= timestamp <= end.
func (r *InMemorySaleRepository) ListByRange(start, end string) ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Sale
	for _, s := range r.sales {
		if s.Timestamp >= start && s.Timestamp <= end {
			out = append(out, s)
		}
	}
	return out, nil
}

// Clear removes every sale. Test helper.
func (r *InMemorySaleRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = nil
	r.nextID = 1
}

func copyItems(items []models.SaleItem) []models.SaleItem {
	out := make([]models.SaleItem, len(items))
	copy(out, items)
	return out
}

package repo

import (
	"strings"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// ProductRepository defines keyed CRUD over the product catalog.
//
// Put has insert-or-replace semantics on the product code and persists
// immediately; it performs no business-rule validation (uniqueness of EAN,
// format checks) — that is the caller's responsibility before the call.
// Get and Delete treat a missing code as a normal outcome: Get returns
// ErrProductNotFound, Delete is a no-op.
type ProductRepository interface {
	Put(product models.Product) error
	Get(code string) (models.Product, error)
	GetAll() ([]models.Product, error)
	Delete(code string) error
}

// normalizeCategory applies the write-time category sentinel shared by all
// ProductRepository implementations.
func normalizeCategory(p models.Product) models.Product {
	if strings.TrimSpace(p.Category) == "" {
		p.Category = models.Uncategorized
	}
	return p
}

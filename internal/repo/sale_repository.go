package repo

import (
	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// SaleRepository is the append-only sales ledger.
//
// Append assigns the next id and persists the sale; ledger entries are
// never updated or deleted afterward. ListByRange returns every sale whose
// timestamp falls within [start, end] inclusive, comparing the RFC 3339
// strings, and must match filtering ListAll by the same predicate.
type SaleRepository interface {
	Append(sale models.Sale) (models.Sale, error)
	Get(id int64) (models.Sale, error)
	ListAll() ([]models.Sale, error)
	ListByRange(start, end string) ([]models.Sale, error)
}

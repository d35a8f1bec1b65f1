package models

import "github.com/shopspring/decimal"

// PaymentMethod is the fixed payment enumeration. The string values are
// part of the durable contract; changing them requires a schema migration.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentCard PaymentMethod = "Card"
	PaymentPIX  PaymentMethod = "PIX"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPIX:
		return true
	}
	return false
}

// SaleItem is a full snapshot of a product at sale time plus the quantity
// sold. Later edits to the catalog never alter it.
type SaleItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns sellPrice × quantity for the line.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.SellPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale is one entry of the append-only ledger. ID is assigned by the store
// and timestamps are RFC 3339 strings, indexed for range queries.
type Sale struct {
	ID            int64           `json:"id"`
	Timestamp     string          `json:"timestamp"`
	LineItems     []SaleItem      `json:"lineItems"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// CartLine is a transient checkout input: a product reference and the
// quantity to sell.
type CartLine struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

package models

import "github.com/shopspring/decimal"

// Uncategorized is the sentinel category stored for products registered
// without one.
const Uncategorized = "UNCATEGORIZED"

// Product represents a catalog entry. Code is the primary key and is
// immutable once created; sale line items reference it.
type Product struct {
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	EAN                 string          `json:"ean"`
	SellPrice           decimal.Decimal `json:"sellPrice"`
	CostPrice           decimal.Decimal `json:"costPrice"`
	Category            string          `json:"category"`
	Stock               int             `json:"stock"`
	StockAlertThreshold int             `json:"stockAlertThreshold"`
}

// Margin returns the profit margin over cost as a percentage, rounded to
// two decimal places. Zero cost yields a zero margin.
func (p Product) Margin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return p.SellPrice.Sub(p.CostPrice).Div(p.CostPrice).Mul(hundred).Round(2)
}

// LowStock reports whether the product is at or below its alert threshold.
// A zero threshold never fires.
func (p Product) LowStock() bool {
	return p.StockAlertThreshold > 0 && p.Stock <= p.StockAlertThreshold
}

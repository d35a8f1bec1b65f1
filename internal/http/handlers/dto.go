package handlers

import (
	"github.com/shopspring/decimal"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

type ProductRequest struct {
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	EAN                 string          `json:"ean"`
	SellPrice           decimal.Decimal `json:"sellPrice"`
	CostPrice           decimal.Decimal `json:"costPrice"`
	Category            string          `json:"category"`
	Stock               int             `json:"stock"`
	StockAlertThreshold int             `json:"stockAlertThreshold"`
}

type ProductResponse struct {
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	EAN                 string          `json:"ean"`
	SellPrice           decimal.Decimal `json:"sellPrice"`
	CostPrice           decimal.Decimal `json:"costPrice"`
	Category            string          `json:"category"`
	Stock               int             `json:"stock"`
	StockAlertThreshold int             `json:"stockAlertThreshold"`
	Margin              decimal.Decimal `json:"margin"`
	LowStock            bool            `json:"lowStock,omitempty"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Code:                p.Code,
		Name:                p.Name,
		EAN:                 p.EAN,
		SellPrice:           p.SellPrice,
		CostPrice:           p.CostPrice,
		Category:            p.Category,
		Stock:               p.Stock,
		StockAlertThreshold: p.StockAlertThreshold,
		Margin:              p.Margin(),
		LowStock:            p.LowStock(),
	}
}

type CheckoutRequest struct {
	Lines         []models.CartLine `json:"lines"`
	PaymentMethod string            `json:"paymentMethod"`
}

type CheckoutResponse struct {
	SaleID        int64           `json:"saleId"`
	Timestamp     string          `json:"timestamp"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	UpdatedStocks map[string]int  `json:"updatedStocks"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}

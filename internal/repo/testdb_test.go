package repo

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/pos-register/internal/db"
	models "github.com/rogerio-castellano/pos-register/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func price(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testProduct(t *testing.T, code string, stock int) models.Product {
	t.Helper()
	return models.Product{
		Code:                code,
		Name:                "Product " + code,
		EAN:                 "1234567890123",
		SellPrice:           price(t, "5.00"),
		CostPrice:           price(t, "3.00"),
		Category:            "Mercearia",
		Stock:               stock,
		StockAlertThreshold: 2,
	}
}

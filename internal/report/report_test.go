package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/rogerio-castellano/pos-register/internal/models"
	repo "github.com/rogerio-castellano/pos-register/internal/repo"
)

var reportNow = time.Date(2025, 4, 7, 18, 0, 0, 0, time.UTC)

func seedSale(t *testing.T, sales *repo.InMemorySaleRepository, ts string, method models.PaymentMethod, code string, qty int, unit string) {
	t.Helper()
	item := models.SaleItem{
		Product: models.Product{
			Code:      code,
			Name:      "Product " + code,
			SellPrice: decimal.RequireFromString(unit),
		},
		Quantity: qty,
	}
	_, err := sales.Append(models.Sale{
		Timestamp:     ts,
		LineItems:     []models.SaleItem{item},
		Total:         item.Subtotal(),
		PaymentMethod: method,
	})
	require.NoError(t, err)
}

func TestDashboard_DailyTotals(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	sales := repo.NewInMemorySaleRepository()
	svc := NewService(products, sales)

	seedSale(t, sales, "2025-04-07T10:00:00Z", models.PaymentCash, "A1", 2, "5.00") // today, 10.00
	seedSale(t, sales, "2025-04-07T15:00:00Z", models.PaymentCard, "A1", 1, "5.00") // today, 5.00
	seedSale(t, sales, "2025-04-05T12:00:00Z", models.PaymentPIX, "B2", 1, "4.50")  // two days ago
	seedSale(t, sales, "2025-03-20T12:00:00Z", models.PaymentCash, "B2", 9, "4.50") // outside the window

	d, err := svc.Dashboard(reportNow)
	require.NoError(t, err)

	require.Len(t, d.DailyTotals, 7)
	assert.Equal(t, "2025-04-01", d.DailyTotals[0].Day)
	assert.Equal(t, "2025-04-07", d.DailyTotals[6].Day)
	assert.True(t, d.DailyTotals[6].Total.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, d.DailyTotals[4].Total.Equal(decimal.RequireFromString("4.50")))
	assert.True(t, d.DailyTotals[0].Total.IsZero())
}

func TestDashboard_PaymentBreakdown_FixedOrder(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	sales := repo.NewInMemorySaleRepository()
	svc := NewService(products, sales)

	seedSale(t, sales, "2025-04-07T10:00:00Z", models.PaymentCard, "A1", 1, "5.00")
	seedSale(t, sales, "2025-04-07T11:00:00Z", models.PaymentCard, "A1", 1, "5.00")
	seedSale(t, sales, "2025-04-07T12:00:00Z", models.PaymentPIX, "A1", 1, "5.00")

	d, err := svc.Dashboard(reportNow)
	require.NoError(t, err)

	require.Len(t, d.Payments, 3)
	assert.Equal(t, models.PaymentCash, d.Payments[0].Method)
	assert.Equal(t, 0, d.Payments[0].Count)
	assert.Equal(t, models.PaymentCard, d.Payments[1].Method)
	assert.Equal(t, 2, d.Payments[1].Count)
	assert.Equal(t, models.PaymentPIX, d.Payments[2].Method)
	assert.Equal(t, 1, d.Payments[2].Count)
}

func TestDashboard_TopProducts(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	sales := repo.NewInMemorySaleRepository()
	svc := NewService(products, sales)

	seedSale(t, sales, "2025-04-06T10:00:00Z", models.PaymentCash, "A1", 3, "5.00")
	seedSale(t, sales, "2025-04-06T11:00:00Z", models.PaymentCash, "A1", 4, "5.00")
	seedSale(t, sales, "2025-04-06T12:00:00Z", models.PaymentCash, "B2", 5, "4.50")

	d, err := svc.Dashboard(reportNow)
	require.NoError(t, err)

	require.Len(t, d.TopProducts, 2)
	assert.Equal(t, "A1", d.TopProducts[0].Code)
	assert.Equal(t, 7, d.TopProducts[0].Quantity)
	assert.Equal(t, "B2", d.TopProducts[1].Code)
	assert.Equal(t, 5, d.TopProducts[1].Quantity)
}

func TestDashboard_LowStockAlerts(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	sales := repo.NewInMemorySaleRepository()
	svc := NewService(products, sales)

	low := models.Product{Code: "A1", Name: "Cafe", Stock: 1, StockAlertThreshold: 2}
	out := models.Product{Code: "B2", Name: "Acucar", Stock: 0, StockAlertThreshold: 5}
	fine := models.Product{Code: "C3", Name: "Arroz", Stock: 50, StockAlertThreshold: 5}
	noThreshold := models.Product{Code: "D4", Name: "Feijao", Stock: 0}
	for _, p := range []models.Product{low, out, fine, noThreshold} {
		require.NoError(t, products.Put(p))
	}

	d, err := svc.Dashboard(reportNow)
	require.NoError(t, err)

	var levels []string
	for _, a := range d.Alerts {
		levels = append(levels, a.Level)
	}
	// A1 warns, B2 is out of stock; C3 is fine and D4 has no threshold.
	assert.Equal(t, []string{"warning", "danger"}, levels)
	assert.Contains(t, d.Alerts[0].Message, "Cafe")
	assert.Contains(t, d.Alerts[1].Message, "Acucar")
}

func TestDashboard_SlowDayAlert(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	sales := repo.NewInMemorySaleRepository()
	svc := NewService(products, sales)

	// Strong sales earlier in the week, nothing today.
	seedSale(t, sales, "2025-04-02T10:00:00Z", models.PaymentCash, "A1", 10, "5.00")
	seedSale(t, sales, "2025-04-03T10:00:00Z", models.PaymentCash, "A1", 10, "5.00")

	d, err := svc.Dashboard(reportNow)
	require.NoError(t, err)

	require.Len(t, d.Alerts, 1)
	assert.Equal(t, "info", d.Alerts[0].Level)
	assert.Contains(t, d.Alerts[0].Message, "2025-04-07")
}

func TestDashboard_EmptyStore(t *testing.T) {
	svc := NewService(repo.NewInMemoryProductRepository(), repo.NewInMemorySaleRepository())

	d, err := svc.Dashboard(reportNow)
	require.NoError(t, err)

	require.Len(t, d.DailyTotals, 7)
	for _, day := range d.DailyTotals {
		assert.True(t, day.Total.IsZero())
	}
	assert.Empty(t, d.TopProducts)
	assert.Empty(t, d.Alerts)
}

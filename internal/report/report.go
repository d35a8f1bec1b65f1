// Package report derives the dashboard figures from the catalog and the
// sales ledger. Everything here is read-only and computed on demand; the
// core store enforces nothing about it.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	models "github.com/rogerio-castellano/pos-register/internal/models"
	repo "github.com/rogerio-castellano/pos-register/internal/repo"
)

const dailyWindowDays = 7

type DailyTotal struct {
	Day   string          `json:"day"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

type PaymentCount struct {
	Method models.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
}

type TopProduct struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Alert struct {
	Level   string `json:"level"` // info, warning or danger
	Message string `json:"message"`
}

type Dashboard struct {
	DailyTotals []DailyTotal   `json:"dailyTotals"`
	Payments    []PaymentCount `json:"payments"`
	TopProducts []TopProduct   `json:"topProducts"`
	Alerts      []Alert        `json:"alerts"`
}

// Service computes dashboard reports from the repositories.
type Service struct {
	products repo.ProductRepository
	sales    repo.SaleRepository
}

func NewService(products repo.ProductRepository, sales repo.SaleRepository) *Service {
	return &Service{products: products, sales: sales}
}

// Dashboard builds the full dashboard as of now: last-seven-day totals,
// payment method breakdown, the five best selling products, and restocking
// and slow-day alerts.
func (s *Service) Dashboard(now time.Time) (Dashboard, error) {
	sales, err := s.sales.ListAll()
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	products, err := s.products.GetAll()
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}

	d := Dashboard{
		DailyTotals: dailyTotals(sales, now),
		Payments:    paymentBreakdown(sales),
		TopProducts: topProducts(sales, 5),
	}
	d.Alerts = alerts(products, d.DailyTotals)
	return d, nil
}

func dailyTotals(sales []models.Sale, now time.Time) []DailyTotal {
	totals := make([]DailyTotal, dailyWindowDays)
	byDay := make(map[string]int, dailyWindowDays)
	for i := range totals {
		day := now.UTC().AddDate(0, 0, i-dailyWindowDays+1).Format("2006-01-02")
		totals[i] = DailyTotal{Day: day, Total: decimal.Zero}
		byDay[day] = i
	}

	for _, sale := range sales {
		if len(sale.Timestamp) < len("2006-01-02") {
			continue
		}
		if i, ok := byDay[sale.Timestamp[:len("2006-01-02")]]; ok {
			totals[i].Total = totals[i].Total.Add(sale.Total)
		}
	}
	return totals
}

func paymentBreakdown(sales []models.Sale) []PaymentCount {
	counts := map[models.PaymentMethod]int{}
	for _, sale := range sales {
		counts[sale.PaymentMethod]++
	}

	methods := []models.PaymentMethod{models.PaymentCash, models.PaymentCard, models.PaymentPIX}
	out := make([]PaymentCount, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentCount{Method: m, Count: counts[m]})
	}
	return out
}

func topProducts(sales []models.Sale, limit int) []TopProduct {
	type acc struct {
		name     string
		quantity int
	}
	byCode := map[string]*acc{}
	for _, sale := range sales {
		for _, item := range sale.LineItems {
			a, ok := byCode[item.Code]
			if !ok {
				a = &acc{name: item.Name}
				byCode[item.Code] = a
			}
			a.quantity += item.Quantity
		}
	}

	out := make([]TopProduct, 0, len(byCode))
	for code, a := range byCode {
		out = append(out, TopProduct{Code: code, Name: a.name, Quantity: a.quantity})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Code < out[j].Code
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func alerts(products []models.Product, daily []DailyTotal) []Alert {
	var out []Alert
	for _, p := range products {
		switch {
		case p.StockAlertThreshold > 0 && p.Stock == 0:
			out = append(out, Alert{Level: "danger",
				Message: fmt.Sprintf("%s (%s) is out of stock", p.Name, p.Code)})
		case p.LowStock():
			out = append(out, Alert{Level: "warning",
				Message: fmt.Sprintf("%s (%s) is at %d units, restock at %d",
					p.Name, p.Code, p.Stock, p.StockAlertThreshold)})
		}
	}

	sum := decimal.Zero
	for _, d := range daily {
		sum = sum.Add(d.Total)
	}
	if len(daily) > 0 && sum.IsPositive() {
		average := sum.Div(decimal.NewFromInt(int64(len(daily))))
		last := daily[len(daily)-1]
		if last.Total.LessThan(average.Div(decimal.NewFromInt(2))) {
			out = append(out, Alert{Level: "info",
				Message: fmt.Sprintf("sales on %s are below half the %d-day average", last.Day, len(daily))})
		}
	}
	return out
}

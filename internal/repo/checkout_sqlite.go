package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// SQLiteCheckoutRepository commits checkouts against the embedded database.
// The stock re-check, the decrements and the sale append all run inside one
// transaction, so readers either see the whole sale or none of it, and a
// concurrent checkout cannot pass the stock check against pre-decrement
// values.
type SQLiteCheckoutRepository struct {
	db *sql.DB
}

func NewSQLiteCheckoutRepository(db *sql.DB) *SQLiteCheckoutRepository {
	return &SQLiteCheckoutRepository{db: db}
}

func (r *SQLiteCheckoutRepository) Checkout(lines []models.CartLine, payment models.PaymentMethod, now time.Time) (CheckoutResult, error) {
	if err := validateCart(lines, payment); err != nil {
		return CheckoutResult{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}
	defer tx.Rollback()

	// Re-check every line against stored stock before any write; a single
	// shortfall aborts the whole cart.
	products := make(map[string]models.Product, len(lines))
	updated := make(map[string]int, len(lines))
	for _, line := range lines {
		row := tx.QueryRowContext(ctx,
			`SELECT code, name, ean, sell_price, cost_price, category, stock, stock_alert_threshold
				FROM products WHERE code = ?`, line.Code)
		p, err := scanProduct(row)
		if errors.Is(err, sql.ErrNoRows) {
			return CheckoutResult{}, fmt.Errorf("%w: %q", ErrProductNotFound, line.Code)
		}
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
		}
		newStock := p.Stock - line.Quantity
		if newStock < 0 {
			return CheckoutResult{}, fmt.Errorf("%w: %q has %d, cart asks %d",
				ErrInsufficientStock, p.Code, p.Stock, line.Quantity)
		}
		products[line.Code] = p
		updated[line.Code] = newStock
	}

	for code, newStock := range updated {
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = ? WHERE code = ?`, newStock, code); err != nil {
			return CheckoutResult{}, fmt.Errorf("checkout: decrement %q: %w", code, err)
		}
	}

	sale := buildSale(lines, products, payment, now)
	id, err := insertSale(ctx, tx, sale)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	sale.ID = id
	return CheckoutResult{Sale: sale, UpdatedStocks: updated}, nil
}

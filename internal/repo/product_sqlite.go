package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// SQLiteProductRepository stores the catalog in the register's embedded
// database.
type SQLiteProductRepository struct {
	db *sql.DB
}

func NewSQLiteProductRepository(db *sql.DB) *SQLiteProductRepository {
	return &SQLiteProductRepository{db: db}
}

func (r *SQLiteProductRepository) Put(p models.Product) error {
	p = normalizeCategory(p)

	query := `INSERT INTO products (code, name, ean, sell_price, cost_price, category, stock, stock_alert_threshold)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			ean = excluded.ean,
			sell_price = excluded.sell_price,
			cost_price = excluded.cost_price,
			category = excluded.category,
			stock = excluded.stock,
			stock_alert_threshold = excluded.stock_alert_threshold`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query,
		p.Code, p.Name, p.EAN, p.SellPrice.String(), p.CostPrice.String(),
		p.Category, p.Stock, p.StockAlertThreshold)
	if err != nil {
		return fmt.Errorf("put product %q: %w", p.Code, err)
	}
	return nil
}

func (r *SQLiteProductRepository) Get(code string) (models.Product, error) {
	query := `SELECT code, name, ean, sell_price, cost_price, category, stock, stock_alert_threshold
		FROM products WHERE code = ?`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *SQLiteProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT code, name, ean, sell_price, cost_price, category, stock, stock_alert_threshold
		FROM products ORDER BY code`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *SQLiteProductRepository) Delete(code string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Deleting a missing code is a no-op, not an error.
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete product %q: %w", code, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p                    models.Product
		sellPrice, costPrice string
	)
	err := row.Scan(&p.Code, &p.Name, &p.EAN, &sellPrice, &costPrice,
		&p.Category, &p.Stock, &p.StockAlertThreshold)
	if err != nil {
		return models.Product{}, err
	}
	if p.SellPrice, err = decimal.NewFromString(sellPrice); err != nil {
		return models.Product{}, fmt.Errorf("product %q: bad sell_price %q: %w", p.Code, sellPrice, err)
	}
	if p.CostPrice, err = decimal.NewFromString(costPrice); err != nil {
		return models.Product{}, fmt.Errorf("product %q: bad cost_price %q: %w", p.Code, costPrice, err)
	}
	return p, nil
}

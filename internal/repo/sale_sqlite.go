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

// SQLiteSaleRepository stores the append-only ledger in the register's
// embedded database. Line item snapshots live in the sale_items table.
type SQLiteSaleRepository struct {
	db *sql.DB
}

func NewSQLiteSaleRepository(db *sql.DB) *SQLiteSaleRepository {
	return &SQLiteSaleRepository{db: db}
}

// Append persists the sale and its line item snapshots, assigning the next
// ledger id. The sale row and its items commit together.
func (r *SQLiteSaleRepository) Append(s models.Sale) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, fmt.Errorf("append sale: %w", err)
	}
	defer tx.Rollback()

	id, err := insertSale(ctx, tx, s)
	if err != nil {
		return models.Sale{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Sale{}, fmt.Errorf("append sale: %w", err)
	}

	s.ID = id
	return s, nil
}

// insertSale writes the sale row plus its items inside the caller's
// transaction and returns the assigned id. Shared with the checkout path,
// which needs the append and the stock decrements in one transaction.
func insertSale(ctx context.Context, tx *sql.Tx, s models.Sale) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sales (timestamp, total, payment_method) VALUES (?, ?, ?)`,
		s.Timestamp, s.Total.String(), string(s.PaymentMethod))
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}

	for i, item := range s.LineItems {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sale_items
				(sale_id, position, code, name, ean, sell_price, cost_price, category, stock, stock_alert_threshold, quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, item.Code, item.Name, item.EAN,
			item.SellPrice.String(), item.CostPrice.String(),
			item.Category, item.Stock, item.StockAlertThreshold, item.Quantity)
		if err != nil {
			return 0, fmt.Errorf("insert sale item %d: %w", i, err)
		}
	}
	return id, nil
}

func (r *SQLiteSaleRepository) Get(id int64) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, total, payment_method FROM sales WHERE id = ?`, id)
	s, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return models.Sale{}, err
	}

	items, err := r.itemsFor(ctx, []int64{s.ID})
	if err != nil {
		return models.Sale{}, err
	}
	s.LineItems = items[s.ID]
	return s, nil
}

func (r *SQLiteSaleRepository) ListAll() ([]models.Sale, error) {
	return r.list(`SELECT id, timestamp, total, payment_method FROM sales ORDER BY id`)
}

// ListByRange serves the reporting range scan from the timestamp index;
// bounds are inclusive, exactly like filtering ListAll on the raw strings.
func (r *SQLiteSaleRepository) ListByRange(start, end string) ([]models.Sale, error) {
	return r.list(
		`SELECT id, timestamp, total, payment_method FROM sales
			WHERE timestamp >= ? AND timestamp <= ? ORDER BY id`,
		start, end)
}

func (r *SQLiteSaleRepository) list(query string, args ...any) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []models.Sale
	var ids []int64
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].LineItems = items[sales[i].ID]
	}
	return sales, nil
}

func (r *SQLiteSaleRepository) itemsFor(ctx context.Context, ids []int64) (map[int64][]models.SaleItem, error) {
	items := make(map[int64][]models.SaleItem, len(ids))
	for _, id := range ids {
		rows, err := r.db.QueryContext(ctx,
			`SELECT sale_id, code, name, ean, sell_price, cost_price, category, stock, stock_alert_threshold, quantity
				FROM sale_items WHERE sale_id = ? ORDER BY position`, id)
		if err != nil {
			return nil, fmt.Errorf("list sale items: %w", err)
		}
		for rows.Next() {
			var (
				saleID               int64
				item                 models.SaleItem
				sellPrice, costPrice string
			)
			err := rows.Scan(&saleID, &item.Code, &item.Name, &item.EAN, &sellPrice, &costPrice,
				&item.Category, &item.Stock, &item.StockAlertThreshold, &item.Quantity)
			if err != nil {
				rows.Close()
				return nil, err
			}
			if item.SellPrice, err = decimal.NewFromString(sellPrice); err != nil {
				rows.Close()
				return nil, fmt.Errorf("sale %d: bad sell_price %q: %w", saleID, sellPrice, err)
			}
			if item.CostPrice, err = decimal.NewFromString(costPrice); err != nil {
				rows.Close()
				return nil, fmt.Errorf("sale %d: bad cost_price %q: %w", saleID, costPrice, err)
			}
			items[saleID] = append(items[saleID], item)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return items, nil
}

func scanSale(row rowScanner) (models.Sale, error) {
	var (
		s             models.Sale
		total, method string
	)
	if err := row.Scan(&s.ID, &s.Timestamp, &total, &method); err != nil {
		return models.Sale{}, err
	}
	var err error
	if s.Total, err = decimal.NewFromString(total); err != nil {
		return models.Sale{}, fmt.Errorf("sale %d: bad total %q: %w", s.ID, total, err)
	}
	s.PaymentMethod = models.PaymentMethod(method)
	return s, nil
}

package db

import (
	"database/sql"
	"fmt"
)

// Schema version history:
//
//	1 - products table, keyed by code
//	2 - sales ledger with AUTOINCREMENT id, sale_items snapshots,
//	    index on sales.timestamp
//	3 - products.stock_alert_threshold, defaulting to 0 for existing rows
const TargetSchemaVersion = 3

type migration struct {
	version int
	apply   func(tx *sql.Tx) error
}

// migrations must stay in ascending version order; Migrate applies every
// entry above the stored user_version exactly once.
var migrations = []migration{
	{1, createProducts},
	{2, createSalesLedger},
	{3, addStockAlertThreshold},
}

// Migrate brings the database schema to TargetSchemaVersion. Each step runs
// inside its own transaction and records the new user_version before
// committing, so a failed step leaves the previous version intact and no
// later step runs. Safe to call on an already-migrated database.
func Migrate(database *sql.DB) error {
	return migrateUpTo(database, TargetSchemaVersion)
}

func migrateUpTo(database *sql.DB, target int) error {
	version, err := schemaVersion(database)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= version || m.version > target {
			continue
		}

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("migration to v%d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration to v%d: %w", m.version, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration to v%d: set user_version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration to v%d: %w", m.version, err)
		}
		version = m.version
	}

	return nil
}

func schemaVersion(database *sql.DB) (int, error) {
	var version int
	if err := database.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

func createProducts(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			code       TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			ean        TEXT NOT NULL,
			sell_price TEXT NOT NULL,
			cost_price TEXT NOT NULL,
			category   TEXT NOT NULL,
			stock      INTEGER NOT NULL
		)
	`)
	return err
}

func createSalesLedger(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sales (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      TEXT NOT NULL,
			total          TEXT NOT NULL,
			payment_method TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_timestamp ON sales(timestamp)`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			sale_id               INTEGER NOT NULL REFERENCES sales(id),
			position              INTEGER NOT NULL,
			code                  TEXT NOT NULL,
			name                  TEXT NOT NULL,
			ean                   TEXT NOT NULL,
			sell_price            TEXT NOT NULL,
			cost_price            TEXT NOT NULL,
			category              TEXT NOT NULL,
			stock                 INTEGER NOT NULL,
			stock_alert_threshold INTEGER NOT NULL,
			quantity              INTEGER NOT NULL,
			PRIMARY KEY (sale_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// addStockAlertThreshold backfills the v3 column. ADD COLUMN with a default
// fills every existing row, matching the original per-record backfill; the
// pragma check makes the step a no-op when the column already exists.
func addStockAlertThreshold(tx *sql.Tx) error {
	exists, err := columnExists(tx, "products", "stock_alert_threshold")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = tx.Exec(`ALTER TABLE products ADD COLUMN stock_alert_threshold INTEGER NOT NULL DEFAULT 0`)
	return err
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

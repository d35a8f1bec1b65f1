package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRaw(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func version(t *testing.T, database *sql.DB) int {
	t.Helper()
	v, err := schemaVersion(database)
	require.NoError(t, err)
	return v
}

func columnNames(t *testing.T, database *sql.DB, table string) []string {
	t.Helper()
	rows, err := database.Query("PRAGMA table_info(" + table + ")")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestOpen_FreshDatabase(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	defer database.Close()

	assert.Equal(t, TargetSchemaVersion, version(t, database))

	for _, table := range []string{"products", "sales", "sale_items"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	var index string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_sales_timestamp'`).Scan(&index)
	assert.NoError(t, err, "timestamp index should exist")

	assert.Contains(t, columnNames(t, database, "products"), "stock_alert_threshold")
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openRaw(t)

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))

	assert.Equal(t, TargetSchemaVersion, version(t, database))
}

func TestMigrate_BackfillsThresholdForExistingRows(t *testing.T) {
	database := openRaw(t)

	// Bring the store to v2 and register a product the way a pre-v3
	// deployment would have.
	require.NoError(t, migrateUpTo(database, 2))
	assert.Equal(t, 2, version(t, database))
	assert.NotContains(t, columnNames(t, database, "products"), "stock_alert_threshold")

	_, err := database.Exec(
		`INSERT INTO products (code, name, ean, sell_price, cost_price, category, stock)
			VALUES ('A1', 'Cafe', '1234567890123', '5.00', '3.00', 'Mercearia', 10)`)
	require.NoError(t, err)

	require.NoError(t, migrateUpTo(database, 3))

	var threshold int
	err = database.QueryRow(
		`SELECT stock_alert_threshold FROM products WHERE code = 'A1'`).Scan(&threshold)
	require.NoError(t, err)
	assert.Equal(t, 0, threshold)
	assert.Equal(t, TargetSchemaVersion, version(t, database))
}

func TestMigrate_DirectEqualsStepwise(t *testing.T) {
	direct := openRaw(t)
	require.NoError(t, Migrate(direct))

	stepwise := openRaw(t)
	for v := 1; v <= TargetSchemaVersion; v++ {
		require.NoError(t, migrateUpTo(stepwise, v))
		assert.Equal(t, v, version(t, stepwise))
	}

	assert.Equal(t, version(t, direct), version(t, stepwise))
	for _, table := range []string{"products", "sales", "sale_items"} {
		assert.Equal(t, columnNames(t, direct, table), columnNames(t, stepwise, table), table)
	}
}

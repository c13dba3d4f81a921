package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tally-lab/project-tally/internal/dataset"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_SQLite(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, RunMigrations(db, "sqlite3", true))
	// Second run is a no-op.
	require.NoError(t, RunMigrations(db, "sqlite3", true))

	_, err := db.Exec(`
		INSERT INTO sales_records (
			order_id, order_date, customer_id, customer_name, state, region, city,
			product_name, category, sub_category, segment, sales, profit, quantity, discount
		) VALUES
			('CA-1', '2016-11-08', 'CG-12520', 'Claire Gute', 'Kentucky', 'South', 'Henderson',
			 'Bookcase', 'Furniture', 'Bookcases', 'Consumer', '261.96', '41.9136', 2, '0'),
			('CA-2', '2016-06-12', 'DV-13045', 'Darrin Van Huff', 'California', 'West', 'Los Angeles',
			 'Labels', 'Office Supplies', 'Labels', 'Corporate', '14.62', '6.8714', 2, '0.2')`)
	require.NoError(t, err)

	src, err := dataset.NewSQLSource(db, "sqlite3", dataset.DefaultTable)
	require.NoError(t, err)

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "CA-1", records[0].OrderID)
	require.Equal(t, "2016-11-08", records[0].OrderDate.String())
	require.Equal(t, "261.96", records[0].Sales.String())
	require.True(t, records[1].Discounted())
}

func TestRunMigrations_AutoMigrateDisabled(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, RunMigrations(db, "sqlite3", false))

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'sales_records'`).Scan(&name)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRunMigrations_UnsupportedDriver(t *testing.T) {
	db := openSQLite(t)

	err := RunMigrations(db, "mysql", true)
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

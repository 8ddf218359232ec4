package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProductsTable, downCreateProductsTable)
}

// The products table mirrors the commerce catalog. Rows are synced in by an
// external job; this service only reads them.
func upCreateProductsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE products (
	  id SERIAL PRIMARY KEY,
	  name TEXT NOT NULL
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateProductsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS products;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

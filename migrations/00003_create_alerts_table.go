package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAlertsTable, downCreateAlertsTable)
}

func upCreateAlertsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE alerts (
	  id SERIAL PRIMARY KEY,
	  product_id INTEGER NOT NULL UNIQUE,
	  threshold NUMERIC(12, 2) NOT NULL,
	  is_active BOOLEAN NOT NULL DEFAULT TRUE,
	  created_by UUID NOT NULL
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateAlertsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS alerts;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

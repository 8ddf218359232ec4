package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"dashboard-service/internal/model"
)

type AlertRepository interface {
	List(ctx context.Context) ([]model.Alert, error)
	FindByID(ctx context.Context, id int) (*model.Alert, error)
	Create(ctx context.Context, alert *model.Alert) (int, error)
	Update(ctx context.Context, id int, threshold *decimal.Decimal, isActive *bool) error
	Delete(ctx context.Context, id int) error
	ListProducts(ctx context.Context) ([]model.Product, error)
}

type postgresAlertRepository struct {
	db *sqlx.DB
}

func NewPostgresAlertRepository(db *sqlx.DB) AlertRepository {
	return &postgresAlertRepository{db: db}
}

func (r *postgresAlertRepository) List(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	query := `
		SELECT a.id, a.product_id, p.name AS product_name, a.threshold, a.is_active, a.created_by
		FROM alerts a
		JOIN products p ON a.product_id = p.id
		ORDER BY p.name ASC
	`
	err := r.db.SelectContext(ctx, &alerts, query)

	if err != nil {
		return nil, err
	}

	if alerts == nil {
		alerts = []model.Alert{}
	}

	return alerts, nil
}

func (r *postgresAlertRepository) FindByID(ctx context.Context, id int) (*model.Alert, error) {
	var alert model.Alert
	query := `
		SELECT a.id, a.product_id, p.name AS product_name, a.threshold, a.is_active, a.created_by
		FROM alerts a
		JOIN products p ON a.product_id = p.id
		WHERE a.id = $1
	`
	err := r.db.GetContext(ctx, &alert, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &alert, nil
}

func (r *postgresAlertRepository) Create(ctx context.Context, alert *model.Alert) (int, error) {
	query := `
		INSERT INTO alerts (product_id, threshold, is_active, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var newID int
	row := r.db.QueryRowxContext(ctx, query, alert.ProductID, alert.Threshold, alert.IsActive, alert.CreatedBy)
	if err := row.Scan(&newID); err != nil {
		return 0, err
	}

	return newID, nil
}

func (r *postgresAlertRepository) Update(ctx context.Context, id int, threshold *decimal.Decimal, isActive *bool) error {
	var setClauses []string
	var args []interface{}
	argId := 1

	if threshold != nil {
		setClauses = append(setClauses, fmt.Sprintf("threshold = $%d", argId))
		args = append(args, *threshold)
		argId++
	}
	if isActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argId))
		args = append(args, *isActive)
		argId++
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE alerts SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argId)
	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *postgresAlertRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *postgresAlertRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	query := `SELECT id, name FROM products ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &products, query)

	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

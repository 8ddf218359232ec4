package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"dashboard-service/internal/model"
)

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error)
	UpdateChannels(ctx context.Context, id uuid.UUID, channels []string) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	query := `
		SELECT user_id, email, full_name, role, assigned_channels, created_at
		FROM users
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &users, query)

	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []model.User{}
	}

	return users, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `
		SELECT user_id, email, full_name, role, assigned_channels, created_at
		FROM users
		WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error) {
	var user model.User
	query := `
		UPDATE users
		SET role = $1
		WHERE user_id = $2
		RETURNING user_id, email, full_name, role, assigned_channels, created_at
	`
	err := r.db.GetContext(ctx, &user, query, role, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) UpdateChannels(ctx context.Context, id uuid.UUID, channels []string) (*model.User, error) {
	var user model.User
	query := `
		UPDATE users
		SET assigned_channels = $1
		WHERE user_id = $2
		RETURNING user_id, email, full_name, role, assigned_channels, created_at
	`
	err := r.db.GetContext(ctx, &user, query, pq.StringArray(channels), id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
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

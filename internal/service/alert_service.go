package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"dashboard-service/internal/events"
	"dashboard-service/internal/model"
	"dashboard-service/internal/repository"
)

var (
	ErrAlertNotFound = errors.New("alert not found")
	ErrAlertExists   = errors.New("an alert already exists for this product")
)

const uniqueViolationCode = "23505"

type AlertService interface {
	ListAlerts(ctx context.Context) ([]model.Alert, error)
	CreateAlert(ctx context.Context, productID int, threshold decimal.Decimal, createdBy uuid.UUID) (*model.Alert, error)
	UpdateAlert(ctx context.Context, id int, threshold *decimal.Decimal, isActive *bool) (*model.Alert, error)
	DeleteAlert(ctx context.Context, id int) error
	ListProducts(ctx context.Context) ([]model.Product, error)
}

type alertService struct {
	alertRepo repository.AlertRepository
	publisher events.Publisher
}

func NewAlertService(repo repository.AlertRepository, pub events.Publisher) AlertService {
	return &alertService{alertRepo: repo, publisher: pub}
}

func (s *alertService) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	return s.alertRepo.List(ctx)
}

func (s *alertService) CreateAlert(ctx context.Context, productID int, threshold decimal.Decimal, createdBy uuid.UUID) (*model.Alert, error) {
	alert := &model.Alert{
		ProductID: productID,
		Threshold: threshold,
		IsActive:  true,
		CreatedBy: createdBy,
	}

	newID, err := s.alertRepo.Create(ctx, alert)

	if err != nil {
		// The alerts table carries a UNIQUE constraint on product_id, so a
		// concurrent create for the same product surfaces here instead of
		// racing a prior existence check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrAlertExists
		}

		return nil, err
	}

	created, err := s.alertRepo.FindByID(ctx, newID)

	if err != nil {
		return nil, err
	}

	if created == nil {
		return nil, ErrAlertNotFound
	}

	go s.publisher.PublishAlertCreated(created)

	return created, nil
}

func (s *alertService) UpdateAlert(ctx context.Context, id int, threshold *decimal.Decimal, isActive *bool) (*model.Alert, error) {
	if err := s.alertRepo.Update(ctx, id, threshold, isActive); err != nil {
		return nil, err
	}

	updated, err := s.alertRepo.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, ErrAlertNotFound
	}

	go s.publisher.PublishAlertUpdated(updated)

	return updated, nil
}

func (s *alertService) DeleteAlert(ctx context.Context, id int) error {
	err := s.alertRepo.Delete(ctx, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlertNotFound
		}

		return err
	}

	go s.publisher.PublishAlertDeleted(id)

	return nil
}

func (s *alertService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.alertRepo.ListProducts(ctx)
}

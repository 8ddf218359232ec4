package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"dashboard-service/internal/events"
	"dashboard-service/internal/model"
	"dashboard-service/internal/repository"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrSelfRoleChange = errors.New("cannot change your own role")
	ErrSelfDelete     = errors.New("cannot delete your own account")
)

type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateRole(ctx context.Context, callerID, targetID uuid.UUID, role string) (*model.User, error)
	UpdateChannels(ctx context.Context, targetID uuid.UUID, channels []string) (*model.User, error)
	DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error
}

type userService struct {
	userRepo  repository.UserRepository
	publisher events.Publisher
}

func NewUserService(repo repository.UserRepository, pub events.Publisher) UserService {
	return &userService{userRepo: repo, publisher: pub}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, callerID, targetID uuid.UUID, role string) (*model.User, error) {
	// Admins cannot demote themselves; it would leave the dashboard without
	// a guaranteed administrator.
	if callerID == targetID {
		return nil, ErrSelfRoleChange
	}

	updated, err := s.userRepo.UpdateRole(ctx, targetID, role)

	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, ErrUserNotFound
	}

	go s.publisher.PublishUserRoleChanged(updated.ID, updated.Role)

	return updated, nil
}

func (s *userService) UpdateChannels(ctx context.Context, targetID uuid.UUID, channels []string) (*model.User, error) {
	updated, err := s.userRepo.UpdateChannels(ctx, targetID, channels)

	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, ErrUserNotFound
	}

	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error {
	if callerID == targetID {
		return ErrSelfDelete
	}

	err := s.userRepo.Delete(ctx, targetID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}

		return err
	}

	go s.publisher.PublishUserDeleted(targetID)

	return nil
}

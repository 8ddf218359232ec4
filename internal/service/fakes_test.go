package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dashboard-service/internal/model"
)

type fakeAlertRepo struct {
	listResult []model.Alert
	findResult *model.Alert
	findErr    error
	createID   int
	createErr  error
	updateErr  error
	deleteErr  error
	products   []model.Product

	created          *model.Alert
	updatedID        int
	updatedThreshold *decimal.Decimal
	updatedActive    *bool
	deletedID        int
}

func (f *fakeAlertRepo) List(ctx context.Context) ([]model.Alert, error) {
	return f.listResult, nil
}

func (f *fakeAlertRepo) FindByID(ctx context.Context, id int) (*model.Alert, error) {
	return f.findResult, f.findErr
}

func (f *fakeAlertRepo) Create(ctx context.Context, alert *model.Alert) (int, error) {
	f.created = alert
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.createID, nil
}

func (f *fakeAlertRepo) Update(ctx context.Context, id int, threshold *decimal.Decimal, isActive *bool) error {
	f.updatedID = id
	f.updatedThreshold = threshold
	f.updatedActive = isActive
	return f.updateErr
}

func (f *fakeAlertRepo) Delete(ctx context.Context, id int) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeAlertRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	return f.products, nil
}

type fakeUserRepo struct {
	listResult    []model.User
	findResult    *model.User
	findErr       error
	updateResult  *model.User
	updateErr     error
	deleteErr     error
	roleCalled    bool
	channelCalled bool
	deleteCalled  bool

	updatedRole     string
	updatedChannels []string
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	return f.listResult, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return f.findResult, f.findErr
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error) {
	f.roleCalled = true
	f.updatedRole = role
	return f.updateResult, f.updateErr
}

func (f *fakeUserRepo) UpdateChannels(ctx context.Context, id uuid.UUID, channels []string) (*model.User, error) {
	f.channelCalled = true
	f.updatedChannels = channels
	return f.updateResult, f.updateErr
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteCalled = true
	return f.deleteErr
}

// fakePublisher records subjects on a buffered channel so tests can wait for
// the fire-and-forget publish goroutines.
type fakePublisher struct {
	published chan string
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(chan string, 8)}
}

func (f *fakePublisher) PublishAlertCreated(alert *model.Alert) error {
	f.published <- "alert.created"
	return nil
}

func (f *fakePublisher) PublishAlertUpdated(alert *model.Alert) error {
	f.published <- "alert.updated"
	return nil
}

func (f *fakePublisher) PublishAlertDeleted(alertID int) error {
	f.published <- "alert.deleted"
	return nil
}

func (f *fakePublisher) PublishUserRoleChanged(userID uuid.UUID, role string) error {
	f.published <- "user.role_changed"
	return nil
}

func (f *fakePublisher) PublishUserDeleted(userID uuid.UUID) error {
	f.published <- "user.deleted"
	return nil
}

func requirePublished(t *testing.T, pub *fakePublisher, subject string) {
	t.Helper()
	select {
	case got := <-pub.published:
		if got != subject {
			t.Fatalf("published %q, want %q", got, subject)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event published on %q", subject)
	}
}

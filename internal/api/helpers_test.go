package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dashboard-service/internal/model"
)

var testSecret = []byte("test-secret")

func signTestToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwtv5.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func expiredTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := jwtv5.MapClaims{
		"sub":  userID.String(),
		"role": model.RoleAdmin,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func newJSONRequest(method, target, body, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

type fakeAlertService struct {
	listResult   []model.Alert
	listErr      error
	createResult *model.Alert
	createErr    error
	updateResult *model.Alert
	updateErr    error
	deleteErr    error
	products     []model.Product

	createCalled    bool
	createProductID int
	createThreshold decimal.Decimal
	createCreatedBy uuid.UUID
	updateID        int
	updateThreshold *decimal.Decimal
	updateIsActive  *bool
	deleteID        int
}

func (f *fakeAlertService) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	return f.listResult, f.listErr
}

func (f *fakeAlertService) CreateAlert(ctx context.Context, productID int, threshold decimal.Decimal, createdBy uuid.UUID) (*model.Alert, error) {
	f.createCalled = true
	f.createProductID = productID
	f.createThreshold = threshold
	f.createCreatedBy = createdBy
	return f.createResult, f.createErr
}

func (f *fakeAlertService) UpdateAlert(ctx context.Context, id int, threshold *decimal.Decimal, isActive *bool) (*model.Alert, error) {
	f.updateID = id
	f.updateThreshold = threshold
	f.updateIsActive = isActive
	return f.updateResult, f.updateErr
}

func (f *fakeAlertService) DeleteAlert(ctx context.Context, id int) error {
	f.deleteID = id
	return f.deleteErr
}

func (f *fakeAlertService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return f.products, nil
}

type fakeUserService struct {
	listResult  []model.User
	getResult   *model.User
	getErr      error
	roleResult  *model.User
	roleErr     error
	chanResult  *model.User
	chanErr     error
	deleteErr   error

	roleCalled  bool
	chanCalled  bool
	gotCallerID uuid.UUID
	gotTargetID uuid.UUID
	gotRole     string
	gotChannels []string
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return f.listResult, nil
}

func (f *fakeUserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return f.getResult, f.getErr
}

func (f *fakeUserService) UpdateRole(ctx context.Context, callerID, targetID uuid.UUID, role string) (*model.User, error) {
	f.roleCalled = true
	f.gotCallerID = callerID
	f.gotTargetID = targetID
	f.gotRole = role
	return f.roleResult, f.roleErr
}

func (f *fakeUserService) UpdateChannels(ctx context.Context, targetID uuid.UUID, channels []string) (*model.User, error) {
	f.chanCalled = true
	f.gotTargetID = targetID
	f.gotChannels = channels
	return f.chanResult, f.chanErr
}

func (f *fakeUserService) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error {
	f.gotCallerID = callerID
	f.gotTargetID = targetID
	return f.deleteErr
}

package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"dashboard-service/internal/api"
	"dashboard-service/internal/model"
	"dashboard-service/internal/reports"
)

func newReportApp(wms *reports.WMSClient, metabase *reports.MetabaseClient) *fiber.App {
	h := api.NewReportHandler(wms, metabase)
	app := fiber.New()

	group := app.Group("/reports", api.AuthMiddleware(testSecret))
	group.Get("/daily-shipping", h.GetDailyShipping)
	group.Get("/b2b-bulk-orders", h.GetB2BBulkOrders)
	group.Get("/inventory", h.GetInventory)

	return app
}

func TestGetDailyShipping(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/daily-shipping", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"order_id":101,"packages":4},{"order_id":102,"packages":1}]`))
	}))
	defer upstream.Close()

	wms := reports.NewWMSClient(upstream.URL, "wms-token", 5*time.Second)
	app := newReportApp(wms, nil)

	token := signTestToken(t, uuid.New(), model.RoleViewer)
	resp, err := app.Test(newJSONRequest(http.MethodGet, "/reports/daily-shipping", "", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `[{"order_id":101,"packages":4},{"order_id":102,"packages":1}]`, string(body))
}

func TestGetDailyShipping_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	wms := reports.NewWMSClient(upstream.URL, "wms-token", 5*time.Second)
	app := newReportApp(wms, nil)

	token := signTestToken(t, uuid.New(), model.RoleViewer)
	resp, err := app.Test(newJSONRequest(http.MethodGet, "/reports/daily-shipping", "", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Failed to fetch daily shipping report", body["error"])
	require.Contains(t, body["details"], "status 502")
}

func TestGetDailyShipping_TokenNotConfigured(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer upstream.Close()

	wms := reports.NewWMSClient(upstream.URL, "", 5*time.Second)
	app := newReportApp(wms, nil)

	token := signTestToken(t, uuid.New(), model.RoleViewer)
	resp, err := app.Test(newJSONRequest(http.MethodGet, "/reports/daily-shipping", "", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, reports.ErrNotConfigured.Error(), body["details"])
	require.Equal(t, int32(0), hits.Load())
}

func TestGetB2BBulkOrders(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/b2b-bulk-orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"orders":[],"total":0}`))
	}))
	defer upstream.Close()

	wms := reports.NewWMSClient(upstream.URL, "wms-token", 5*time.Second)
	app := newReportApp(wms, nil)

	token := signTestToken(t, uuid.New(), model.RoleAnalyst)
	resp, err := app.Test(newJSONRequest(http.MethodGet, "/reports/b2b-bulk-orders", "", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"orders":[],"total":0}`, string(body))
}

func TestGetInventory(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/card/7/query/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"SKU":"FLR-001","Stock":40},{"SKU":"RCE-002","Stock":12}]`))
	}))
	defer upstream.Close()

	metabase := reports.NewMetabaseClient(upstream.URL, "mb-key", 7, 5*time.Second)
	app := newReportApp(nil, metabase)

	token := signTestToken(t, uuid.New(), model.RoleViewer)
	resp, err := app.Test(newJSONRequest(http.MethodGet, "/reports/inventory", "", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(2), body["row_count"])

	rows, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 2)
}

func TestGetInventory_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	metabase := reports.NewMetabaseClient(upstream.URL, "mb-key", 7, 5*time.Second)
	app := newReportApp(nil, metabase)

	token := signTestToken(t, uuid.New(), model.RoleViewer)
	resp, err := app.Test(newJSONRequest(http.MethodGet, "/reports/inventory", "", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Failed to fetch inventory report", body["error"])
	require.Contains(t, body["details"], "status 500")
}

func TestReports_RequireAuth(t *testing.T) {
	app := newReportApp(nil, nil)

	resp, err := app.Test(newJSONRequest(http.MethodGet, "/reports/daily-shipping", "", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

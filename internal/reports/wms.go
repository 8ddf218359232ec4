package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNotConfigured is returned before any request is made when the upstream
// credential is missing from the environment.
var ErrNotConfigured = errors.New("upstream credential is not configured")

// WMSClient reads operational reports from the warehouse management system.
// Responses are passed through verbatim; the WMS owns the payload shape.
type WMSClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewWMSClient(baseURL, token string, timeout time.Duration) *WMSClient {
	return &WMSClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *WMSClient) FetchDailyShipping(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, "/reports/daily-shipping")
}

func (c *WMSClient) FetchB2BBulkOrders(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, "/reports/b2b-bulk-orders")
}

func (c *WMSClient) fetch(ctx context.Context, path string) (json.RawMessage, error) {
	if c.token == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wms error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

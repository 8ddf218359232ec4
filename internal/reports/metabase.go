package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MetabaseClient executes a saved Metabase question and returns its rows.
type MetabaseClient struct {
	baseURL string
	apiKey  string
	cardID  int
	client  *http.Client
}

func NewMetabaseClient(baseURL, apiKey string, cardID int, timeout time.Duration) *MetabaseClient {
	return &MetabaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		cardID:  cardID,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// RunInventoryCard runs the saved inventory question. Metabase's
// /query/json endpoint answers with a flat array of row objects.
func (c *MetabaseClient) RunInventoryCard(ctx context.Context) ([]map[string]interface{}, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/api/card/%d/query/json", c.baseURL, c.cardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("{}"))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("metabase error: status %d", resp.StatusCode)
	}

	var rows []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []map[string]interface{}{}
	}

	return rows, nil
}

package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// HTTPClient queries an external catalog service at GET /api/v1/lookup?q=.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Search(ctx context.Context, query string) (*store.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/lookup?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("lookup %q: %w", query, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrLookupFailed, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: GET lookup %q: %d %s", ErrLookupFailed, query, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var item store.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLookupFailed, err)
	}
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	item.Source = store.SourceDiscovery
	return &item, nil
}

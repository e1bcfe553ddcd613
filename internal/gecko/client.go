package gecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public GeckoTerminal API root.
const DefaultBaseURL = "https://api.geckoterminal.com/api/v2"

const includeTokens = "base_token,quote_token"

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client is a read-only GeckoTerminal pools API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a Client, filling in defaults for unset options.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gecko http %d %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("gecko http %d %s: %s", e.StatusCode, e.URL, e.Body)
}

// NewestPools fetches one page of the most recently created pools on network.
func (c *Client) NewestPools(ctx context.Context, network string, page int) (*Document, error) {
	if strings.TrimSpace(network) == "" {
		return nil, fmt.Errorf("network is required")
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("include", includeTokens)

	doc, err := c.getDocument(ctx, "/networks/"+url.PathEscape(network)+"/pools", q)
	if err != nil {
		return nil, fmt.Errorf("newest pools %s: %w", network, err)
	}
	return doc, nil
}

// SearchPools searches pools on network matching query (typically a token address).
func (c *Client) SearchPools(ctx context.Context, network, query string) (*Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required")
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("network", network)
	q.Set("include", includeTokens)

	doc, err := c.getDocument(ctx, "/search/pools", q)
	if err != nil {
		return nil, fmt.Errorf("search pools %q: %w", query, err)
	}
	return doc, nil
}

func (c *Client) getDocument(ctx context.Context, path string, q url.Values) (*Document, error) {
	u := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        u,
			Body:       truncate(strings.TrimSpace(string(body)), 256),
		}
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &doc, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

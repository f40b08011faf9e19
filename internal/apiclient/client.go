// Package apiclient is a thin HTTP client for the public catalog API.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"academy_portal/internal/model"
)

const (
	BaseURLEnv     = "NEXT_PUBLIC_API_URL"
	DefaultBaseURL = "http://localhost:3001/api"

	// maxErrorBody caps how much of a non-2xx body is kept on StatusError.
	maxErrorBody = 4 << 10
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Body)
}

// Client issues GET requests against a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client

	Products *ProductsService
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for baseURL. A trailing slash is dropped.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Products = &ProductsService{client: c}
	return c
}

// NewFromEnv reads the base URL from NEXT_PUBLIC_API_URL, falling back to
// DefaultBaseURL.
func NewFromEnv(opts ...Option) *Client {
	base := os.Getenv(BaseURLEnv)
	if base == "" {
		base = DefaultBaseURL
	}
	return New(base, opts...)
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get decodes the JSON body of GET {base}{path} into out. There is no retry,
// no auth header and no timeout beyond ctx.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ProductsService groups the /products endpoints.
type ProductsService struct {
	client *Client
}

// List fetches every public product.
func (s *ProductsService) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.client.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches one product. id is inserted into the path as is; callers must
// pass a URL-safe identifier.
func (s *ProductsService) Get(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := s.client.get(ctx, "/products/"+id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

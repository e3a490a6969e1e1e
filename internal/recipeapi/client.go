package recipeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

// Fetcher defines the two read-only calls the controller makes.
// This interface is implemented by *Client and can be replaced in tests.
type Fetcher interface {
	FetchSummaries(ctx context.Context, limit int) ([]Recipe, error)
	FetchRecipe(ctx context.Context, id int) (*Recipe, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the DummyJSON recipe API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	breaker   *gobreaker.CircuitBreaker[struct{}]
}

// Options tune a Client. The zero value is usable.
type Options struct {
	Timeout        time.Duration
	CircuitBreaker bool
	Logger         logrus.FieldLogger
}

const (
	DefaultBaseURL   = "https://dummyjson.com"
	defaultUserAgent = "recipemama/0.1"
	defaultTimeout   = 10 * time.Second
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}
	if opts.CircuitBreaker {
		log := opts.Logger
		if log == nil {
			log = logrus.StandardLogger()
		}
		c.breaker = newBreaker(base.Host, log)
	}
	return c, nil
}

// FetchSummaries retrieves one page of recipe summaries.
func (c *Client) FetchSummaries(ctx context.Context, limit int) ([]Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: "/recipes", RawQuery: values.Encode()}
	var payload ListResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	out := make([]Recipe, 0, len(payload.Recipes))
	for _, r := range payload.Recipes {
		out = append(out, r.Summary())
	}
	return out, nil
}

// FetchRecipe retrieves one recipe in detail form.
func (c *Client) FetchRecipe(ctx context.Context, id int) (*Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("recipe id required")
	}
	var payload Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/"+strconv.Itoa(id), &payload); err != nil {
		return nil, err
	}
	payload.Detailed = true
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	if c.breaker == nil {
		return c.roundTrip(ctx, method, rel, dest)
	}
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.roundTrip(ctx, method, rel, dest)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("api %s: %w", rel.Path, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.String(), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

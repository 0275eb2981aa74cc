// Package frankfurter provides a minimal client for the Frankfurter
// exchange-rate API (https://api.frankfurter.app).
//
// The API is GET-only and unauthenticated. Every method performs exactly one
// request-response round trip; failures are classified into a small error
// taxonomy ([Kind]) and surfaced as user-facing [APIError] values. The client
// never retries.
//
// Usage:
//
//	c := frankfurter.New(
//	    frankfurter.WithTimeout(10*time.Second),
//	)
//	snap, err := c.Latest(ctx, "EUR", []string{"USD", "GBP"})
package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DrTrips-Comp/frankfurter-mcp-server/internal/observe"
)

const (
	// DefaultBaseURL is the public Frankfurter API endpoint.
	DefaultBaseURL = "https://api.frankfurter.app"

	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 10 * time.Second
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream endpoint. Useful for tests and for
// self-hosted Frankfurter instances. A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout. Defaults to [DefaultTimeout].
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. The caller is
// then responsible for timeout configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics attaches upstream request instrumentation. When nil (the
// default), no metrics are recorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client issues requests against one Frankfurter endpoint. The zero value is
// not usable; create instances with [New]. A Client is safe for concurrent
// use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observe.Metrics
}

// New creates a ready-to-use Client with the default base URL and timeout.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Latest fetches the most recent rate snapshot. base and symbols are
// optional; when base is empty the upstream's own default base (EUR)
// applies, and when symbols is empty all currencies are returned.
func (c *Client) Latest(ctx context.Context, base string, symbols []string) (*RateSnapshot, error) {
	snap := &RateSnapshot{}
	if err := c.get(ctx, "latest", "/latest", rateQuery(base, symbols), snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Historical fetches the rate snapshot for the given ISO date (YYYY-MM-DD).
// The upstream snaps non-trading days back to the closest prior trading day
// and echoes the effective date in the response.
func (c *Client) Historical(ctx context.Context, date, base string, symbols []string) (*RateSnapshot, error) {
	snap := &RateSnapshot{}
	if err := c.get(ctx, "historical", "/"+date, rateQuery(base, symbols), snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Series fetches rates for every trading day in [start, end], both ISO dates.
func (c *Client) Series(ctx context.Context, start, end, base string, symbols []string) (*TimeSeries, error) {
	series := &TimeSeries{}
	path := fmt.Sprintf("/%s..%s", start, end)
	if err := c.get(ctx, "series", path, rateQuery(base, symbols), series); err != nil {
		return nil, err
	}
	return series, nil
}

// Currencies fetches the full catalogue of supported currencies.
func (c *Client) Currencies(ctx context.Context) (*Catalog, error) {
	catalog := &Catalog{}
	if err := c.get(ctx, "currencies", "/currencies", nil, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Ping probes upstream reachability for readiness checks. It hits the
// currencies endpoint, the cheapest one the API offers, and discards the
// payload.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Currencies(ctx)
	return err
}

// rateQuery builds the shared query parameters of the rate endpoints.
// Multi-value symbol filters are comma-joined, which is the API's convention.
func rateQuery(base string, symbols []string) url.Values {
	q := url.Values{}
	if base != "" {
		q.Set("base", base)
	}
	if len(symbols) > 0 {
		q.Set("symbols", strings.Join(symbols, ","))
	}
	return q
}

// get performs one GET round trip and decodes the JSON body into out.
// endpoint is a stable low-cardinality name used for metrics; path is the
// actual URL suffix.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("frankfurter: build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		c.record(ctx, endpoint, string(apiErr.Kind), time.Since(start))
		return apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.record(ctx, endpoint, fmt.Sprintf("%d", resp.StatusCode), time.Since(start))
		return &APIError{
			Kind:       KindRemote,
			StatusCode: resp.StatusCode,
			Message:    classifyStatus(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(ctx, endpoint, "read_error", time.Since(start))
		return classifyTransport(err)
	}
	c.record(ctx, endpoint, "ok", time.Since(start))

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("frankfurter: decode %s response: %w", path, err)
	}
	return nil
}

// record forwards a measurement to the attached metrics, if any.
func (c *Client) record(ctx context.Context, endpoint, status string, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordUpstreamRequest(ctx, endpoint, status, d.Seconds())
}

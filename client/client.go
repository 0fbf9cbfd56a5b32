/*
Package client is the Go consumer of the district performance API.

PURPOSE:
  A thin request/response client for dashboards and tooling: every
  operation is a single attempt with the failure surfaced to the caller.
  There is no retry or backoff here; the dashboard offers a manual
  Retry action instead.

ORDERING CONTRACT:
  The server delivers performance history newest-first, but that is a
  collaborator habit, not a documented guarantee. The client re-sorts by
  month descending at the boundary so downstream "index 0 is latest"
  logic holds no matter what arrives.

ERRORS:
  - ErrNotFound for 404s (unknown district, no data yet), testable with
    errors.Is
  - Any other transport failure or non-2xx status wraps into a generic
    request error

SEE ALSO:
  - dashboard: Loaders composing these calls into view state
*/
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gramseva/district-pulse/district"
)

// ErrNotFound marks 404 responses: unknown district code or no synced
// data yet.
var ErrNotFound = errors.New("not found")

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// Client talks to the district performance API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL (e.g.
// "http://localhost:8000/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied *http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// GetDistricts returns all districts in server order.
func (c *Client) GetDistricts(ctx context.Context) ([]district.District, error) {
	var out []district.District
	if err := c.get(ctx, "/districts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDistrict returns one district. Unknown codes yield ErrNotFound.
func (c *Client) GetDistrict(ctx context.Context, code string) (*district.District, error) {
	var out district.District
	if err := c.get(ctx, "/districts/"+url.PathEscape(code), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDistrictPerformance returns up to `months` rows, newest first.
// Ordering is enforced locally, not trusted from the wire.
func (c *Client) GetDistrictPerformance(ctx context.Context, code string, months int) ([]district.PerformanceRecord, error) {
	var out []district.PerformanceRecord
	q := url.Values{"months": {strconv.Itoa(months)}}
	if err := c.get(ctx, "/districts/"+url.PathEscape(code)+"/performance", q, &out); err != nil {
		return nil, err
	}
	district.SortNewestFirst(out)
	return out, nil
}

// GetLatestPerformance returns the newest row for a district.
func (c *Client) GetLatestPerformance(ctx context.Context, code string) (*district.PerformanceRecord, error) {
	var out district.PerformanceRecord
	if err := c.get(ctx, "/districts/"+url.PathEscape(code)+"/latest", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPerformanceSummary returns one latest-month row per district.
func (c *Client) GetPerformanceSummary(ctx context.Context) ([]district.SummaryRow, error) {
	var out []district.SummaryRow
	if err := c.get(ctx, "/performance/summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CompareDistricts returns a bundle restricted to the given codes, each
// series re-sorted newest first.
func (c *Client) CompareDistricts(ctx context.Context, codes []string, months int) (district.ComparisonBundle, error) {
	q := url.Values{
		"district_codes": {strings.Join(codes, ",")},
		"months":         {strconv.Itoa(months)},
	}
	var out district.ComparisonBundle
	if err := c.get(ctx, "/compare", q, &out); err != nil {
		return nil, err
	}
	for code := range out {
		district.SortNewestFirst(out[code])
	}
	return out, nil
}

// TriggerSync asks the server to refresh a district in the background.
// The acknowledgement only means the request was accepted.
func (c *Client) TriggerSync(ctx context.Context, code string, months int) error {
	q := url.Values{"months": {strconv.Itoa(months)}}
	return c.do(ctx, http.MethodPost, "/sync/"+url.PathEscape(code), q, nil)
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request %s %s failed: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

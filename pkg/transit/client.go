package transit

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

	"github.com/AimceptionGian/FlexiPlan/pkg/logging"

	"github.com/charmbracelet/log"
	"github.com/patrickmn/go-cache"
)

var baseURL = "https://transport.opendata.ch/v1"

const (
	userAgent = "flexiplan/1.0 (https://github.com/AimceptionGian/FlexiPlan)"

	locationCacheTTL     = 12 * time.Hour
	locationCacheCleanup = 24 * time.Hour
)

// ErrUnexpectedStatus is wrapped by every error caused by a non-200 API reply
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client interacts with the transport.opendata.ch API
type Client struct {
	httpClient *http.Client
	baseURL    string
	retries    int
	limit      int
	logger     *log.Logger
	locations  *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRetries enables retrying 502/503/504 and transport errors n extra times.
// Defaults to 0: a failed request is reported straight away.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithLimit sets the number of connections requested per page (API allows 1-16).
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= 16 {
			c.limit = n
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the journey API
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		logger:     logging.Discard(),
		locations:  cache.New(locationCacheTTL, locationCacheCleanup),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query describes a single page request against /connections
type Query struct {
	From string
	To   string
	Page int

	// FromCoordinate and ToCoordinate replace the station names when set
	FromCoordinate *Coordinate
	ToCoordinate   *Coordinate

	// Departure restricts results to connections leaving at or after this time.
	// Zero means "now" as decided by the API.
	Departure time.Time
}

// Values builds the query string parameters for q
func (q Query) Values(limit int) url.Values {
	v := url.Values{}
	v.Set("from", q.From)
	if q.FromCoordinate != nil {
		v.Set("from", q.FromCoordinate.String())
	}
	v.Set("to", q.To)
	if q.ToCoordinate != nil {
		v.Set("to", q.ToCoordinate.String())
	}
	v.Set("page", strconv.Itoa(q.Page))
	if !q.Departure.IsZero() {
		v.Set("date", q.Departure.Format("2006-01-02"))
		v.Set("time", q.Departure.Format("15:04"))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

// String renders the coordinate the way the API accepts it in from/to
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', 6, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', 6, 64)
}

// get performs a GET request, retrying 502/503/504 and transport errors up to c.retries times
func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		// Public APIs often block default Go user agents
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode == http.StatusBadGateway ||
			resp.StatusCode == http.StatusServiceUnavailable ||
			resp.StatusCode == http.StatusGatewayTimeout:
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		default:
			return resp, nil
		}

		if attempt == c.retries || ctx.Err() != nil {
			break
		}

		c.logger.Warn("transit API congested, retrying", "attempt", attempt+1, "of", c.retries+1, "err", lastErr)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * time.Second):
		}
	}

	if c.retries > 0 {
		return nil, fmt.Errorf("failed after %d attempts: %w", c.retries+1, lastErr)
	}
	return nil, lastErr
}

// getJSON fetches reqURL and decodes the body into out
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// FetchConnections requests one page of connections. Page 0 is the initial
// result set, negative pages go back in time and positive pages go forward.
func (c *Client) FetchConnections(ctx context.Context, q Query) ([]Connection, error) {
	reqURL := fmt.Sprintf("%s/connections?%s", c.baseURL, q.Values(c.limit).Encode())

	c.logger.Debug("fetching connections", "from", q.From, "to", q.To, "page", q.Page)

	var connResp ConnectionResponse
	if err := c.getJSON(ctx, reqURL, &connResp); err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}

	return connResp.Connections, nil
}

// FetchLocations searches for stations matching a text query.
// Results are cached in memory since station names rarely change.
func (c *Client) FetchLocations(ctx context.Context, query string) ([]Location, error) {
	key := "query:" + strings.ToLower(strings.TrimSpace(query))
	if cached, ok := c.locations.Get(key); ok {
		return cached.([]Location), nil
	}

	v := url.Values{}
	v.Set("query", query)
	v.Set("type", "station")
	reqURL := fmt.Sprintf("%s/locations?%s", c.baseURL, v.Encode())

	var locResp LocationResponse
	if err := c.getJSON(ctx, reqURL, &locResp); err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	// Filter down to entries that can actually be routed from
	var filtered []Location
	for _, l := range locResp.Stations {
		if l.ID != "" && l.Name != "" {
			filtered = append(filtered, l)
		}
	}

	c.locations.SetDefault(key, filtered)
	return filtered, nil
}

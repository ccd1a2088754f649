package airtable

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/globetraiteurs/plats/pkg/defaults"
	apperrors "github.com/globetraiteurs/plats/pkg/errors"
	"github.com/globetraiteurs/plats/pkg/formula"
)

const (
	// DefaultUserAgent identifies the service to the record store.
	DefaultUserAgent = "plats/1.0"

	paramFilter     = "filterByFormula"
	paramMaxRecords = "maxRecords"
	paramPageSize   = "pageSize"
)

// Connection pool sizing for the shared transport.
var (
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
)

// Option defines a configuration option for Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent on every call.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithPageSize sets the page size of FetchMany queries.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithTimeout sets the total timeout of a single call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Client reads records from a base of the tabular record store. It holds the
// server-side credential and is safe for concurrent use. It never caches,
// never retries and never follows pagination cursors.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	pageSize   int
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a client for the base reachable at apiURL/baseID.
func New(apiURL, baseID, token string, opts ...Option) (*Client, error) {
	if apiURL == "" {
		return nil, errors.New("api url is empty")
	}
	if baseID == "" {
		return nil, errors.New("base id is empty")
	}
	if token == "" {
		return nil, errors.New("access token is empty")
	}

	c := &Client{
		baseURL:   strings.TrimRight(apiURL, "/") + "/" + url.PathEscape(baseID),
		token:     token,
		userAgent: DefaultUserAgent,
		pageSize:  defaults.PageSize,
		timeout:   defaults.HTTPClientTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.pageSize < 1 || c.pageSize > defaults.MaxPageSize {
		return nil, fmt.Errorf("invalid page size %d", c.pageSize)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: newDefaultTransport(),
		}
	}
	return c, nil
}

func newDefaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// PageSize returns the configured page size.
func (c *Client) PageSize() int {
	return c.pageSize
}

// FetchOne returns the first record of table matching filter. An empty result
// is reported as ErrCodeNotFound.
func (c *Client) FetchOne(ctx context.Context, table, filter string) (*Record, error) {
	q := url.Values{}
	q.Set(paramFilter, filter)
	q.Set(paramMaxRecords, "1")

	recs, err := c.list(ctx, table, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound, "no matching record",
			map[string]any{"table": table})
	}
	return &recs[0], nil
}

// FetchMany returns the first page of records of table matching filter.
func (c *Client) FetchMany(ctx context.Context, table, filter string) ([]Record, error) {
	q := url.Values{}
	q.Set(paramFilter, filter)
	q.Set(paramPageSize, strconv.Itoa(c.pageSize))

	return c.list(ctx, table, q)
}

// FetchByIDs returns the records of table whose identifiers are in ids, read
// from the first page.
func (c *Client) FetchByIDs(ctx context.Context, table string, ids []string) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return c.FetchMany(ctx, table, formula.RecordIDIn(ids))
}

func (c *Client) list(ctx context.Context, table string, q url.Values) ([]Record, error) {
	if table == "" {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "table name is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	u := c.baseURL + "/" + url.PathEscape(table) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(table, outcomeTransport, start)
		return nil, upstreamError(table, err, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(table, outcomeStatus, start)
		apiErr := decodeAPIError(resp)
		slog.Warn("record store returned error",
			"table", table,
			"status", resp.StatusCode,
			"error", apiErr.Error(),
		)
		return nil, upstreamError(table, apiErr, resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observe(table, outcomeDecode, start)
		return nil, upstreamError(table, fmt.Errorf("invalid response body: %w", err), resp.StatusCode)
	}
	observe(table, outcomeOK, start)

	slog.Debug("record store query",
		"table", table,
		"records", len(body.Records),
		"duration", time.Since(start).String(),
	)
	return body.Records, nil
}

func upstreamError(table string, cause error, status int) error {
	ctx := map[string]any{"table": table}
	if status != 0 {
		ctx["status"] = status
	}
	return apperrors.WrapWithContext(apperrors.ErrCodeUpstream,
		fmt.Sprintf("Airtable error (%s): %v", table, cause), cause, ctx)
}

// APIError is a non-success response from the record store.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Type != "" {
		b.WriteString(": " + e.Type)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// decodeAPIError reads the error payload, which is either
// {"error": {"type": ..., "message": ...}} or {"error": "TYPE"}.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, defaults.UpstreamErrorBodyLimit))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}

	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Error) == 0 {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	var detail struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(env.Error, &detail); err == nil {
		apiErr.Type, apiErr.Message = detail.Type, detail.Message
		return apiErr
	}

	var typ string
	if err := json.Unmarshal(env.Error, &typ); err == nil {
		apiErr.Type = typ
	}
	return apiErr
}

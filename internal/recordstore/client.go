// Package recordstore reads tickets and comments from the hosted record store
// (Airtable REST API v0).
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/config"
)

// maxPages bounds offset pagination so a misbehaving store cannot loop forever.
const maxPages = 1000

// FetchObserver receives the outcome of every remote list call.
type FetchObserver interface {
	RecordFetch(table, outcome string, duration time.Duration)
}

// Client issues authenticated read requests against the record store.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	baseID        string
	token         string
	ticketsTable  string
	commentsTable string
	pageSize      int
	logger        *zap.Logger
	observer      FetchObserver
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithBaseURL overrides the API root (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLogger attaches a logger for per-page debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver reports fetch outcomes, typically to metrics.
func WithObserver(observer FetchObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.RecordStoreConfig, opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout()},
		baseURL:       cfg.BaseURL,
		baseID:        cfg.BaseID,
		token:         cfg.Token,
		ticketsTable:  cfg.TicketsTable,
		commentsTable: cfg.CommentsTable,
		pageSize:      cfg.PageSize,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll returns every record of the tickets table, following pagination.
func (c *Client) FetchAll(ctx context.Context) ([]Record, error) {
	return c.list(ctx, c.ticketsTable, url.Values{})
}

// FetchRelated returns the comment records whose identity matches any of ids.
// No request is made when ids is empty.
func (c *Client) FetchRelated(ctx context.Context, ids []string) ([]Record, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []Record{}, nil
	}
	query := url.Values{}
	query.Set("filterByFormula", RecordIDFormula(ids))
	return c.list(ctx, c.commentsTable, query)
}

// Ping requests a single ticket record to verify credentials and reachability.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("maxRecords", "1")
	_, err := c.fetchPage(ctx, c.ticketsTable, query)
	return err
}

func (c *Client) list(ctx context.Context, table string, query url.Values) ([]Record, error) {
	start := time.Now()
	records, err := c.listPages(ctx, table, query)
	c.observe(table, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) listPages(ctx context.Context, table string, query url.Values) ([]Record, error) {
	if c.pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(c.pageSize))
	}

	records := []Record{}
	for page := 0; page < maxPages; page++ {
		resp, err := c.fetchPage(ctx, table, query)
		if err != nil {
			return nil, err
		}
		records = append(records, resp.Records...)
		c.logger.Debug("record page fetched",
			zap.String("table", table),
			zap.Int("page", page),
			zap.Int("records", len(resp.Records)))
		if resp.Offset == "" {
			return records, nil
		}
		query.Set("offset", resp.Offset)
	}
	return nil, &TransportError{Op: "list " + table, Err: fmt.Errorf("pagination exceeded %d pages", maxPages)}
}

func (c *Client) fetchPage(ctx context.Context, table string, query url.Values) (*listResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "list " + table, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + table, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var page listResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &TransportError{Op: "decode " + table, Err: err}
	}
	return &page, nil
}

func (c *Client) observe(table string, err error, d time.Duration) {
	if c.observer == nil {
		return
	}
	outcome := "ok"
	var apiErr *APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		outcome = "api_" + strconv.Itoa(apiErr.Status)
	default:
		outcome = "transport"
	}
	c.observer.RecordFetch(table, outcome, d)
}

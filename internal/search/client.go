package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/valyala/fastjson"

	"logscout/internal/domain"
)

// SearchPath is the search endpoint path relative to the configured base URL
const SearchPath = "/api/search/filters"

// maxBodySize caps how much of a (decompressed) response body is read
const maxBodySize = 64 << 20

var (
	// ErrTransport covers dial failures, timeouts, non-2xx statuses and unreadable bodies
	ErrTransport = errors.New("search transport error")
	// ErrMalformedResponse means a 2xx body without a usable results array
	ErrMalformedResponse = errors.New("malformed search response")
)

// Searcher runs one page request against the search service
type Searcher interface {
	Search(ctx context.Context, req domain.FetchRequest) (domain.FetchResponse, error)
}

// Client is the HTTP implementation of Searcher
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     zerolog.Logger
	parser     fastjson.ParserPool
	newID      func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the client's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "search").Logger()
	}
}

// NewClient creates a client for the service at endpoint, e.g. http://localhost:3000
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}

	c := &Client{
		base:       base,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     zerolog.Nop(),
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL builds the request URL for req. Empty filters are left out.
func (c *Client) URL(req domain.FetchRequest) string {
	u := *c.base
	u.Path = c.base.Path + SearchPath

	q := url.Values{}
	q.Set("query", req.Identity.Term)
	q.Set("page", strconv.Itoa(req.Page))
	for _, k := range domain.FilterKeys {
		if v := req.Identity.Filters[k]; v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Search fetches one page. Errors wrap ErrTransport or ErrMalformedResponse.
func (c *Client) Search(ctx context.Context, req domain.FetchRequest) (domain.FetchResponse, error) {
	reqID := c.newID()
	start := time.Now()
	log := c.logger.With().Str("request_id", reqID).Uint64("seq", req.Seq).Int("page", req.Page).Logger()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(req), nil)
	if err != nil {
		return domain.FetchResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Accept-Encoding", "gzip, zstd")
	httpReq.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Debug().Err(err).Msg("search request failed")
		return domain.FetchResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.FetchResponse{}, fmt.Errorf("%w: unexpected status %s", ErrTransport, resp.Status)
	}

	body, err := readBody(resp)
	if err != nil {
		return domain.FetchResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	records, err := c.parse(body)
	if err != nil {
		log.Debug().Err(err).Int("bytes", len(body)).Msg("malformed search response")
		return domain.FetchResponse{}, err
	}

	log.Debug().
		Int("records", len(records)).
		Str("encoding", resp.Header.Get("Content-Encoding")).
		Dur("took", time.Since(start)).
		Msg("search page received")
	return domain.FetchResponse{Records: records}, nil
}

// readBody undoes the response's content encoding
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body

	switch enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))); enc {
	case "", "identity":
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		defer gz.Close()
		r = gz
	case "zstd":
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd body: %w", err)
		}
		defer dec.Close()
		r = dec
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", enc)
	}

	body, err := io.ReadAll(io.LimitReader(r, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// parse extracts the results array. A missing, null or non-array results
// field is malformed; an empty array is a valid empty page.
func (c *Client) parse(body []byte) ([]domain.Record, error) {
	p := c.parser.Get()
	defer c.parser.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: body is %s, not an object", ErrMalformedResponse, v.Type())
	}

	results := v.Get("results")
	if results == nil {
		return nil, fmt.Errorf("%w: results field missing", ErrMalformedResponse)
	}
	if results.Type() != fastjson.TypeArray {
		return nil, fmt.Errorf("%w: results is %s, not an array", ErrMalformedResponse, results.Type())
	}

	items, _ := results.Array()
	records := make([]domain.Record, 0, len(items))
	for _, item := range items {
		// MarshalTo copies out of the parser's buffer, which is reused
		records = append(records, domain.Record(item.MarshalTo(nil)))
	}
	return records, nil
}

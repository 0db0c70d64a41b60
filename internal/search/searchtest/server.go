// Package searchtest is an in-memory log search service speaking the same
// HTTP protocol as the real one. Tests use it through httptest; the demo
// command serves it on a local port.
package searchtest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"logscout/internal/domain"
)

// LogEntry is one stored log record
type LogEntry struct {
	Level      string    `json:"level"`
	Message    string    `json:"message"`
	ResourceID string    `json:"resourceId"`
	Timestamp  time.Time `json:"timestamp"`
	TraceID    string    `json:"traceId"`
	SpanID     string    `json:"spanId"`
	Commit     string    `json:"commit"`
	Metadata   Metadata  `json:"metadata"`
}

// Metadata is the nested part of a LogEntry
type Metadata struct {
	ParentResourceID string `json:"parentResourceId"`
}

// field returns the value a filter key is matched against
func (e LogEntry) field(key string) string {
	switch key {
	case domain.FilterLevel:
		return e.Level
	case domain.FilterMessage:
		return e.Message
	case domain.FilterResourceID:
		return e.ResourceID
	case domain.FilterTimestamp:
		return e.Timestamp.UTC().Format(time.RFC3339)
	case domain.FilterTraceID:
		return e.TraceID
	case domain.FilterSpanID:
		return e.SpanID
	case domain.FilterCommit:
		return e.Commit
	case domain.FilterParentResourceID:
		return e.Metadata.ParentResourceID
	}
	return ""
}

// Server is the fake search service
type Server struct {
	mu       sync.RWMutex
	entries  []LogEntry
	requests []url.Values

	status       int
	rawBody      *string
	latency      time.Duration
	encoding     string
	nullForEmpty bool

	router chi.Router
	logger zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithLogger logs every request at debug level
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger.With().Str("component", "searchtest").Logger()
	}
}

// WithNullForEmpty controls whether a page past the end is encoded as
// {"results": null}, which is what the production service sends. Default true.
func WithNullForEmpty(null bool) Option {
	return func(s *Server) { s.nullForEmpty = null }
}

// WithEntries seeds the store
func WithEntries(entries ...LogEntry) Option {
	return func(s *Server) { s.entries = append(s.entries, entries...) }
}

// New creates a server with an empty store
func New(opts ...Option) *Server {
	s := &Server{
		nullForEmpty: true,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "logscout search service")
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/logs", s.handleIngest)
		r.Get("/search/filters", s.handleSearch)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler { return s.router }

// Add stores entries in insertion order
func (s *Server) Add(entries ...LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
}

// Len returns the number of stored entries
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// FailWith makes every search answer with status. 0 restores normal answers.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// RespondWith makes every search answer 200 with body verbatim
func (s *Server) RespondWith(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawBody = &body
}

// SetLatency delays every search answer by d
func (s *Server) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// SetEncoding compresses search answers with "gzip" or "zstd" when the
// client accepts it. "" sends plain bodies.
func (s *Server) SetEncoding(enc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encoding = enc
}

// Reset clears every failure knob. Stored entries are kept.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = 0
	s.rawBody = nil
	s.latency = 0
	s.encoding = ""
}

// Requests returns the query strings of every search received so far
func (s *Server) Requests() []url.Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]url.Values, len(s.requests))
	copy(out, s.requests)
	return out
}

// Start serves on addr (e.g. "127.0.0.1:0") and returns the base URL and a
// shutdown function.
func (s *Server) Start(addr string) (string, func(context.Context) error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("search service stopped")
		}
	}()
	return "http://" + ln.Addr().String(), srv.Shutdown, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request served")
	})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var entry LogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	s.Add(entry)
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintln(w, "Log request accepted successfully")
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	s.requests = append(s.requests, q)
	status, rawBody, latency, encoding := s.status, s.rawBody, s.latency, s.encoding
	s.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	var body []byte
	if rawBody != nil {
		body = []byte(*rawBody)
	} else {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		filters := make(map[string]string)
		for _, k := range domain.FilterKeys {
			if v := q.Get(k); v != "" {
				filters[k] = v
			}
		}

		results, err := s.Search(q.Get("query"), filters, page, domain.PageSize)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error: %s", err.Error()), http.StatusInternalServerError)
			return
		}
		body, err = s.envelope(results)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error: %s", err.Error()), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if encoding != "" && strings.Contains(r.Header.Get("Accept-Encoding"), encoding) {
		compressed, err := compress(encoding, body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Encoding", encoding)
		body = compressed
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) envelope(results []LogEntry) ([]byte, error) {
	var payload any = results
	if len(results) == 0 && s.nullForEmpty {
		payload = nil
	} else if results == nil {
		payload = []LogEntry{}
	}
	return json.Marshal(map[string]any{"results": payload})
}

// Search returns one page of entries. query is matched as a case-insensitive
// regular expression against the message; each filter must match its field
// exactly. A message filter replaces the query match.
func (s *Server) Search(query string, filters map[string]string, page, pageSize int) ([]LogEntry, error) {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, fmt.Errorf("error performing text search: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	skip := (page - 1) * pageSize
	var out []LogEntry
	for _, e := range s.entries {
		if _, ok := filters[domain.FilterMessage]; !ok && !re.MatchString(e.Message) {
			continue
		}
		if !matches(e, filters) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, e)
		if len(out) == pageSize {
			break
		}
	}
	return out, nil
}

func matches(e LogEntry, filters map[string]string) bool {
	for k, v := range filters {
		if e.field(k) != v {
			return false
		}
	}
	return true
}

func compress(encoding string, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(body); err != nil {
			return nil, err
		}
		if err := gz.Close(); err != nil {
			return nil, err
		}
	case "zstd":
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := enc.Write(body); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
	return buf.Bytes(), nil
}

package fyle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// requester performs a single HTTP exchange and maps its status.
// It is shared by the token fetch and every APIBase.
type requester struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
	metrics    *metrics
}

func newRequester(o clientOptions, logger zerolog.Logger) (*requester, error) {
	m, err := newMetrics(o.registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &requester{
		httpClient: o.client(),
		userAgent:  o.userAgent,
		logger:     logger,
		metrics:    m,
	}, nil
}

type call struct {
	method  string
	path    string
	url     string
	token   string
	body    []byte
	mapping map[int]*Error
	out     any
}

// do sends the request, maps any non-200 status through c.mapping and
// decodes a 200 body into c.out. The status is checked before the body is
// parsed.
func (r *requester) do(ctx context.Context, c call) error {
	var body io.Reader
	if c.body != nil {
		body = bytes.NewReader(c.body)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.url, body)
	if err != nil {
		return &TransportError{Op: c.method, URL: c.url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	// Before Authenticate there is no token; the header is left out rather
	// than sending an empty bearer credential.
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	log := r.logger.With().
		Str("request_id", uuid.NewString()).
		Str("method", c.method).
		Str("path", c.path).
		Logger()

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.metrics.observe(c.method, c.path, 0, time.Since(start))
		log.Debug().Err(err).Msg("Fyle API request failed")
		return &TransportError{Op: c.method, URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	r.metrics.observe(c.method, c.path, resp.StatusCode, elapsed)
	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("Fyle API request")

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused; the body plays no part in the error.
		_, _ = io.Copy(io.Discard, resp.Body)
		return statusError(resp.StatusCode, c.mapping)
	}

	if c.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(c.out); err != nil {
		return &TransportError{Op: c.method, URL: c.url, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// APIBase executes authenticated requests for one resource client. Its
// Session is written by the owning Client on every Authenticate.
//
// The zero value is not usable; resource clients get theirs from NewClient
// and callers reaching endpoints the SDK does not wrap use NewAPIBase.
type APIBase struct {
	r *requester

	mu      sync.RWMutex
	session Session
}

func newAPIBase(r *requester) *APIBase {
	return &APIBase{r: r}
}

// NewAPIBase creates a standalone executor bound to session. It accepts the
// same options as NewClient and never fetches tokens itself; refresh it with
// SetSession or SetToken.
func NewAPIBase(session Session, logger zerolog.Logger, opts ...Option) (*APIBase, error) {
	session.ServerURL = strings.TrimSuffix(strings.TrimSpace(session.ServerURL), "/")
	if session.ServerURL == "" {
		return nil, fmt.Errorf("%w: server URL is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r, err := newRequester(o, logger)
	if err != nil {
		return nil, err
	}

	api := newAPIBase(r)
	api.session = session
	return api, nil
}

// ready guards against a zero-value APIBase
func (a *APIBase) ready() error {
	if a.r == nil {
		return fmt.Errorf("%w: APIBase must be created with NewClient or NewAPIBase", ErrInvalidConfig)
	}
	return nil
}

// SetToken replaces the access token.
func (a *APIBase) SetToken(token string) {
	a.mu.Lock()
	a.session.AccessToken = token
	a.mu.Unlock()
}

// SetServerURL replaces the server URL requests are sent to.
func (a *APIBase) SetServerURL(serverURL string) {
	a.mu.Lock()
	a.session.ServerURL = serverURL
	a.mu.Unlock()
}

// SetSession replaces token and server URL together.
func (a *APIBase) SetSession(s Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
}

// Session returns a copy of the current session.
func (a *APIBase) Session() Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// Get issues an authenticated GET to path with params encoded by
// EncodeQuery, decoding a 200 response into out.
func (a *APIBase) Get(ctx context.Context, path string, params any, out any) error {
	if err := a.ready(); err != nil {
		return err
	}

	values, err := EncodeQuery(params)
	if err != nil {
		return err
	}

	s := a.Session()
	requestURL := s.ServerURL + path
	if len(values) > 0 {
		requestURL += "?" + values.Encode()
	}

	return a.r.do(ctx, call{
		method:  http.MethodGet,
		path:    path,
		url:     requestURL,
		token:   s.AccessToken,
		mapping: resourceStatuses,
		out:     out,
	})
}

// Post issues an authenticated POST of data as JSON to path, decoding a
// 200 response into out.
func (a *APIBase) Post(ctx context.Context, path string, data any, out any) error {
	if err := a.ready(); err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	s := a.Session()
	return a.r.do(ctx, call{
		method:  http.MethodPost,
		path:    path,
		url:     s.ServerURL + path,
		token:   s.AccessToken,
		body:    payload,
		mapping: resourceStatuses,
		out:     out,
	})
}

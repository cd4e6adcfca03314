package fyle

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTimeout is the HTTP client timeout used when none is configured
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	registerer prometheus.Registerer
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout: DefaultTimeout,
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout wins over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithRegisterer records request metrics on the given Prometheus registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *clientOptions) {
		o.registerer = reg
	}
}

func (o clientOptions) client() *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{Timeout: o.timeout}
}

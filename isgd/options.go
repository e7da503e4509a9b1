package isgd

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultTimeout is the HTTP client timeout used when none is configured.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "isgd-go (+https://github.com/s0up4200/isgd)"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	userAgent  string
	method     string
	registerer prometheus.Registerer
}

// WithHTTPClient sets the transport used for requests. Its Timeout is left
// untouched unless WithTimeout is also given.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
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

// WithBaseURL sends requests to baseURL instead of https://is.gd or
// https://v.gd. Mostly useful for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithMethod selects GET (default) or POST for shorten requests.
func WithMethod(method string) Option {
	return func(o *clientOptions) {
		o.method = strings.ToUpper(method)
	}
}

// WithMetrics registers request counters and latency histograms on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *clientOptions) {
		o.registerer = reg
	}
}

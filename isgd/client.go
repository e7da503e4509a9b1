package isgd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// maxBodySize caps how much of a response is read. The web format is the
// largest at a few kilobytes.
const maxBodySize = 1 << 20

// Client is an is.gd API client. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	method     string
	metrics    *metrics
	logger     zerolog.Logger
}

// NewClient creates a new is.gd client
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	o := clientOptions{
		userAgent: DefaultUserAgent,
		method:    http.MethodGet,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		timeout := o.timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	} else if o.timeout > 0 {
		copied := *httpClient
		copied.Timeout = o.timeout
		httpClient = &copied
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    o.baseURL,
		userAgent:  o.userAgent,
		method:     o.method,
		logger:     logger,
	}
	if o.registerer != nil {
		client.metrics = newMetrics(o.registerer)
	}
	return client
}

// Shorten creates a short link for longURL. With a nil cfg the simple format
// is used; otherwise cfg supplies format, alias, logstats, callback and domain,
// and a non-empty longURL replaces the one in cfg.
func (c *Client) Shorten(ctx context.Context, longURL string, cfg *Config) (*Result, error) {
	b := NewBuilder()
	if cfg != nil {
		b = cfg.Builder()
	}
	if cfg == nil || longURL != "" {
		b.LongURL(longURL)
	}

	built, err := b.Build()
	if err != nil {
		c.metrics.count(OpShorten, err)
		return nil, err
	}
	return c.do(ctx, OpShorten, built)
}

// Lookup resolves shortURL (a full short link or only its code) to the
// original address. A non-empty shortURL replaces the one in cfg and any long
// URL in cfg is ignored.
func (c *Client) Lookup(ctx context.Context, shortURL string, cfg *Config) (*Result, error) {
	b := NewBuilder()
	if cfg != nil {
		b = cfg.Builder()
		b.cfg.longURL = ""
	}
	if cfg == nil || shortURL != "" {
		b.ShortURL(shortURL)
	}

	built, err := b.Build()
	if err != nil {
		c.metrics.count(OpLookup, err)
		return nil, err
	}
	return c.do(ctx, OpLookup, built)
}

// do performs exactly one request; failures are never retried here.
func (c *Client) do(ctx context.Context, op Operation, cfg Config) (*Result, error) {
	start := time.Now()
	res, err := c.roundTrip(ctx, op, cfg)
	elapsed := time.Since(start)
	c.metrics.observe(op, err, elapsed)

	event := c.logger.Debug().
		Str("operation", op.String()).
		Str("format", cfg.format.String()).
		Dur("duration", elapsed)
	if err != nil {
		event.Err(err).Msg("is.gd request failed")
		return nil, err
	}
	event.Str("value", res.Value).Msg("is.gd request completed")
	return res, nil
}

func (c *Client) roundTrip(ctx context.Context, op Operation, cfg Config) (*Result, error) {
	base := c.baseURL
	if base == "" {
		base = cfg.BaseURL()
	}

	req, err := NewRequest(ctx, base, op, cfg, c.method, c.userAgent)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("Making is.gd API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{
			Kind:       KindNetwork,
			Message:    "failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return ParseResponse(op, cfg, resp.StatusCode, body)
}

// transportError classifies a failed round trip.
func transportError(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &Error{Kind: KindNetwork, Message: "request cancelled", Err: context.Canceled}
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: KindNetwork, Message: "request timed out", Err: err}
	default:
		return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
	}
}

package isgd

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Operation selects the is.gd endpoint.
type Operation int

const (
	// OpShorten creates a short link.
	OpShorten Operation = iota
	// OpLookup resolves a short link to the original address.
	OpLookup
)

// String returns the operation name used in logs and metrics
func (o Operation) String() string {
	if o == OpLookup {
		return "lookup"
	}
	return "shorten"
}

func (o Operation) endpoint() string {
	if o == OpLookup {
		return "/forward.php"
	}
	return "/create.php"
}

const (
	// DefaultBaseURL is the is.gd API root.
	DefaultBaseURL = "https://is.gd"
	// VgdBaseURL is the v.gd API root.
	VgdBaseURL = "https://v.gd"
)

// BaseURL returns the API root for the config's domain
func (c Config) BaseURL() string {
	if c.vgd {
		return VgdBaseURL
	}
	return DefaultBaseURL
}

// Params returns the encoded parameters for op. It fails with KindInvalidURL
// when a value cannot be sent.
func Params(op Operation, cfg Config) (url.Values, error) {
	params := url.Values{}

	switch op {
	case OpShorten:
		if cfg.longURL == "" {
			return nil, newError(KindInvalidURL, "a long URL is required to shorten")
		}
		params.Set("url", cfg.longURL)
		if cfg.shortURL != "" {
			params.Set("shorturl", cfg.shortURL)
		}
		if cfg.logStats {
			params.Set("logstats", "1")
		}
	case OpLookup:
		if cfg.shortURL == "" {
			return nil, newError(KindInvalidURL, "a short URL is required to look up")
		}
		params.Set("shorturl", cfg.shortURL)
	default:
		return nil, newError(KindInvalidURL, "unknown operation")
	}

	if cfg.callback != "" && cfg.format == FormatJSON {
		params.Set("callback", cfg.callback)
	}
	params.Set("format", cfg.format.String())

	for key, values := range params {
		for _, v := range values {
			if err := checkEncodable(v); err != nil {
				return nil, newError(KindInvalidURL, key+": "+err.Error())
			}
		}
	}
	return params, nil
}

type encodeError string

func (e encodeError) Error() string { return string(e) }

// checkEncodable rejects values that would not survive percent-encoding.
func checkEncodable(v string) error {
	if !utf8.ValidString(v) {
		return encodeError("invalid UTF-8 sequence")
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return encodeError("control character in value")
		}
	}
	return nil
}

// NewRequest builds the HTTP request for op against base. Lookups are always
// sent as GET; shortening honours method (GET or POST).
func NewRequest(ctx context.Context, base string, op Operation, cfg Config, method, userAgent string) (*http.Request, error) {
	params, err := Params(op, cfg)
	if err != nil {
		return nil, err
	}
	if base == "" {
		base = cfg.BaseURL()
	}
	endpoint := strings.TrimRight(base, "/") + op.endpoint()

	if op == OpLookup || method == "" {
		method = http.MethodGet
	}

	var req *http.Request
	switch method {
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return nil, newError(KindInvalidURL, "unsupported method "+method)
	}
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Message: "failed to create request", Err: err}
	}

	req.Header.Set("Accept", cfg.format.contentType())
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return req, nil
}

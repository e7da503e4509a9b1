package isgd

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	aliasPattern    = regexp.MustCompile(`^[A-Za-z0-9_]{5,30}$`)
	codePattern     = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	callbackPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$.]*$`)
)

// Config holds the parameters of a single API call. It is immutable; use
// NewBuilder or Config.Builder to create one.
type Config struct {
	longURL  string
	shortURL string
	callback string
	format   Format
	logStats bool
	vgd      bool
}

// LongURL returns the address to shorten
func (c Config) LongURL() string { return c.longURL }

// ShortURL returns the custom alias when shortening, or the link to look up
func (c Config) ShortURL() string { return c.shortURL }

// Callback returns the JSONP callback name
func (c Config) Callback() string { return c.callback }

// Format returns the requested response format
func (c Config) Format() Format { return c.format }

// LogStats reports whether detailed statistics are requested for a new link
func (c Config) LogStats() bool { return c.logStats }

// Vgd reports whether the v.gd domain is used instead of is.gd
func (c Config) Vgd() bool { return c.vgd }

// Builder returns a builder pre-filled with the values of c.
func (c Config) Builder() *Builder {
	return &Builder{cfg: c}
}

// Builder accumulates Config fields. The first invalid argument passed to a
// setter is remembered and returned by Build.
type Builder struct {
	cfg Config
	err error
}

// NewBuilder returns a builder with the simple format selected.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{format: FormatSimple}}
}

func (b *Builder) fail(msg string) {
	if b.err == nil {
		b.err = newError(KindInvalidURL, msg)
	}
}

// LongURL sets the address to shorten.
func (b *Builder) LongURL(u string) *Builder {
	if strings.TrimSpace(u) == "" {
		b.fail("long URL must not be empty")
	}
	b.cfg.longURL = strings.TrimSpace(u)
	return b
}

// ShortURL sets the custom alias when shortening, or the link to look up. A
// lookup accepts either the full address (https://is.gd/example) or only the
// unique part (example).
func (b *Builder) ShortURL(u string) *Builder {
	if strings.TrimSpace(u) == "" {
		b.fail("short URL must not be empty")
	}
	b.cfg.shortURL = strings.TrimSpace(u)
	return b
}

// Callback sets the function name used to wrap JSON output. is.gd only
// honours it for the JSON format, so it is not sent with any other format.
func (b *Builder) Callback(name string) *Builder {
	if strings.TrimSpace(name) == "" {
		b.fail("callback must not be empty")
	}
	b.cfg.callback = strings.TrimSpace(name)
	return b
}

// Format sets the response format.
func (b *Builder) Format(f Format) *Builder {
	b.cfg.format = f
	return b
}

// LogStats turns on detailed statistics for the created link. is.gd counts such
// links twice towards its rate limit.
func (b *Builder) LogStats(on bool) *Builder {
	b.cfg.logStats = on
	return b
}

// Vgd selects the v.gd domain.
func (b *Builder) Vgd(on bool) *Builder {
	b.cfg.vgd = on
	return b
}

// Build validates the accumulated fields and returns the Config.
func (b *Builder) Build() (Config, error) {
	if b.err != nil {
		return Config{}, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return Config{}, err
	}
	return b.cfg, nil
}

func (c Config) validate() error {
	if c.longURL == "" && c.shortURL == "" {
		return newError(KindInvalidURL, "a long URL or a short URL is required")
	}
	if !c.format.Valid() {
		return newError(KindInvalidURL, "unrecognised format "+c.format.String())
	}
	if c.callback != "" && !callbackPattern.MatchString(c.callback) {
		return newError(KindInvalidURL, "invalid callback name: "+c.callback)
	}

	if c.longURL != "" {
		if !isAbsoluteURL(c.longURL) {
			return newError(KindInvalidURL, "not a well-formed absolute URL: "+c.longURL)
		}
		if c.shortURL != "" && !aliasPattern.MatchString(c.shortURL) {
			return newError(KindInvalidURL, "custom short URL must be 5-30 letters, digits or underscores: "+c.shortURL)
		}
		return nil
	}

	if !isAbsoluteURL(c.shortURL) && !codePattern.MatchString(c.shortURL) {
		return newError(KindInvalidURL, "not a short URL or short code: "+c.shortURL)
	}
	return nil
}

// isAbsoluteURL checks that s parses with both a scheme and a host.
func isAbsoluteURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

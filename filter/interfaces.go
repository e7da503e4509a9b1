package filter

import (
	"net/url"
	"strings"
)

// Filter decides whether a command line argument should be processed
type Filter interface {
	// Match evaluates the filter against a target
	Match(target Target) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Target is the data an expression can refer to
type Target struct {
	URL    string
	Scheme string
	Host   string
	Path   string
	Query  string
	Length int
	// Short is true when the argument is an is.gd or v.gd link
	Short bool
}

// NewTarget splits raw into the fields exposed to expressions. Unparseable
// input still yields a target with URL and Length set.
func NewTarget(raw string) Target {
	t := Target{URL: raw, Length: len(raw)}
	u, err := url.Parse(raw)
	if err != nil {
		return t
	}
	t.Scheme = strings.ToLower(u.Scheme)
	t.Host = strings.ToLower(u.Hostname())
	t.Path = u.Path
	t.Query = u.RawQuery
	t.Short = t.Host == "is.gd" || t.Host == "v.gd"
	return t
}

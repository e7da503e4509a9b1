package isgd

import (
	"context"
)

// API defines the interface for is.gd operations
type API interface {
	// Shorten creates a short link for a long URL
	Shorten(ctx context.Context, longURL string, cfg *Config) (*Result, error)

	// Lookup resolves a short link to the original URL
	Lookup(ctx context.Context, shortURL string, cfg *Config) (*Result, error)
}

var _ API = (*Client)(nil)

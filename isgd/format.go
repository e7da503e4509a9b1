package isgd

import (
	"fmt"
	"strings"
)

// Format is the wire representation requested for the API response.
type Format int

const (
	// FormatSimple returns the bare URL, or an "Error: ..." line.
	FormatSimple Format = iota
	// FormatJSON returns a JSON object, optionally wrapped in a callback.
	FormatJSON
	// FormatXML returns an <output> document.
	FormatXML
	// FormatWeb returns the HTML page a browser would see.
	FormatWeb
)

// String returns the value sent in the format parameter
func (f Format) String() string {
	switch f {
	case FormatSimple:
		return "simple"
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatWeb:
		return "web"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Valid checks if the format is one is.gd understands
func (f Format) Valid() bool {
	return f >= FormatSimple && f <= FormatWeb
}

// contentType returns the Accept header for the format
func (f Format) contentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXML:
		return "application/xml"
	case FormatWeb:
		return "text/html"
	default:
		return "text/plain"
	}
}

// ParseFormat converts a format name (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple":
		return FormatSimple, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	case "web":
		return FormatWeb, nil
	default:
		return 0, fmt.Errorf("unknown format: %q", s)
	}
}

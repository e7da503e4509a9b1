package isgd

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call so callers can decide between retrying,
// fixing the input or giving up.
type ErrorKind int

const (
	// KindNetwork indicates a transport failure: DNS, connection, timeout,
	// cancellation or an unexpected HTTP status.
	KindNetwork ErrorKind = iota + 1
	// KindInvalidURL indicates malformed or missing input, detected before any
	// request was sent.
	KindInvalidURL
	// KindRateLimited indicates HTTP 429 or an is.gd rate limit error code.
	KindRateLimited
	// KindAPI indicates is.gd rejected the request with an error message.
	KindAPI
	// KindParse indicates the response body did not match the requested format.
	KindParse
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindInvalidURL:
		return "invalid url"
	case KindRateLimited:
		return "rate limited"
	case KindAPI:
		return "api error"
	case KindParse:
		return "parse error"
	default:
		return "unknown error"
	}
}

// label returns the metric label for the kind
func (k ErrorKind) label() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindInvalidURL:
		return "invalid_url"
	case KindRateLimited:
		return "rate_limited"
	case KindAPI:
		return "api"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// is.gd error codes as reported in the JSON and XML formats.
const (
	CodeLongURL   = 1
	CodeShortURL  = 2
	CodeRateLimit = 3
	CodeOther     = 4
)

// Error is the single error type returned by Client operations.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int // HTTP status, 0 if no response was received
	Code       int // is.gd errorcode, 0 if none was reported
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("isgd: %s: %s", e.Kind, e.Message)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf reports the ErrorKind carried by err.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func isKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsNetwork returns true if the error is a transport failure.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsInvalidURL returns true if the input was rejected before sending.
func IsInvalidURL(err error) bool { return isKind(err, KindInvalidURL) }

// IsRateLimited returns true if the service throttled the request.
func IsRateLimited(err error) bool { return isKind(err, KindRateLimited) }

// IsAPI returns true if is.gd reported an error for the request.
func IsAPI(err error) bool { return isKind(err, KindAPI) }

// IsParse returns true if the response could not be interpreted.
func IsParse(err error) bool { return isKind(err, KindParse) }

// IsRetryable returns true for failures a caller may retry unchanged.
func IsRetryable(err error) bool {
	return IsNetwork(err) || IsRateLimited(err)
}

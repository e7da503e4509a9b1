package isgd

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Result is a successful API response.
type Result struct {
	// Value is the short URL when shortening, or the original URL on lookup.
	// For FormatWeb it is the HTML page.
	Value  string
	Format Format
	// Raw is the complete response body.
	Raw string
}

var jsonpPattern = regexp.MustCompile(`(?s)^[A-Za-z_$][A-Za-z0-9_$.]*\s*\((.*)\)\s*;?$`)

// errorCode accepts both numeric and quoted codes.
type errorCode int

func (c *errorCode) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*c = errorCode(n)
	return nil
}

type jsonOutput struct {
	ShortURL     string     `json:"shorturl"`
	URL          string     `json:"url"`
	ErrorCode    *errorCode `json:"errorcode"`
	ErrorMessage string     `json:"errormessage"`
}

type xmlOutput struct {
	XMLName      xml.Name `xml:"output"`
	ShortURL     string   `xml:"shorturl"`
	URL          string   `xml:"url"`
	ErrorCode    string   `xml:"errorcode"`
	ErrorMessage string   `xml:"errormessage"`
}

// ParseResponse interprets an is.gd response for op according to the format
// requested in cfg. It returns either a Result or an *Error, never both.
// A non-2xx response whose body is an is.gd error document is reported as
// KindAPI or KindRateLimited with StatusCode set, not as KindNetwork.
func ParseResponse(op Operation, cfg Config, status int, body []byte) (*Result, error) {
	if status == http.StatusTooManyRequests {
		return nil, &Error{Kind: KindRateLimited, Message: statusText(status), StatusCode: status}
	}

	if status < 200 || status > 299 {
		// is.gd reports most failures with a 4xx/5xx status and an error body
		// in the requested format.
		if apiErr := serviceError(op, cfg.format, body); apiErr != nil {
			apiErr.StatusCode = status
			return nil, apiErr
		}
		return nil, &Error{Kind: KindNetwork, Message: statusText(status), StatusCode: status}
	}

	res, err := parseBody(op, cfg.format, body)
	if err != nil {
		err.StatusCode = status
		return nil, err
	}
	return res, nil
}

// serviceError extracts an is.gd reported error from a non-2xx body.
func serviceError(op Operation, format Format, body []byte) *Error {
	switch format {
	case FormatSimple:
		text := strings.TrimSpace(string(body))
		if len(text) > 6 && strings.EqualFold(text[:6], "error:") {
			return newError(KindAPI, text)
		}
		return nil
	case FormatJSON, FormatXML:
		_, err := parseBody(op, format, body)
		if err != nil && (err.Kind == KindAPI || err.Kind == KindRateLimited) {
			return err
		}
		return nil
	default:
		return nil
	}
}

func parseBody(op Operation, format Format, body []byte) (*Result, *Error) {
	switch format {
	case FormatSimple:
		return parseSimple(op, body)
	case FormatJSON:
		return parseJSON(op, body)
	case FormatXML:
		return parseXML(op, body)
	case FormatWeb:
		return &Result{Value: string(body), Format: FormatWeb, Raw: string(body)}, nil
	default:
		return nil, newError(KindParse, "unrecognised format "+format.String())
	}
}

func parseSimple(op Operation, body []byte) (*Result, *Error) {
	text := strings.TrimSpace(string(body))
	ok := looksLikeURL(text)
	if op == OpLookup {
		// long URLs may legitimately contain spaces, short links never do
		ok = looksLikeURL(strings.ReplaceAll(text, " ", "%20"))
	}
	if !ok {
		if text == "" {
			return nil, newError(KindAPI, "empty response")
		}
		return nil, newError(KindAPI, text)
	}
	return &Result{Value: text, Format: FormatSimple, Raw: string(body)}, nil
}

func parseJSON(op Operation, body []byte) (*Result, *Error) {
	payload := bytes.TrimSpace(body)
	if m := jsonpPattern.FindSubmatch(payload); m != nil {
		payload = m[1]
	}

	var out jsonOutput
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &Error{Kind: KindParse, Message: "malformed JSON response", Err: err}
	}

	if out.ErrorCode != nil || out.ErrorMessage != "" {
		code := 0
		if out.ErrorCode != nil {
			code = int(*out.ErrorCode)
		}
		return nil, codeError(code, out.ErrorMessage)
	}

	value := pick(op, out.ShortURL, out.URL)
	if value == "" {
		return nil, newError(KindParse, "response has neither shorturl nor url")
	}
	return &Result{Value: value, Format: FormatJSON, Raw: string(body)}, nil
}

func parseXML(op Operation, body []byte) (*Result, *Error) {
	var out xmlOutput
	if err := xml.Unmarshal(bytes.TrimSpace(body), &out); err != nil {
		return nil, &Error{Kind: KindParse, Message: "malformed XML response", Err: err}
	}

	if out.ErrorCode != "" || out.ErrorMessage != "" {
		code, _ := strconv.Atoi(strings.TrimSpace(out.ErrorCode))
		return nil, codeError(code, strings.TrimSpace(out.ErrorMessage))
	}

	value := pick(op, strings.TrimSpace(out.ShortURL), strings.TrimSpace(out.URL))
	if value == "" {
		return nil, newError(KindParse, "response has neither shorturl nor url")
	}
	return &Result{Value: value, Format: FormatXML, Raw: string(body)}, nil
}

// pick prefers the field matching op and falls back to the other one.
func pick(op Operation, shortURL, longURL string) string {
	if op == OpLookup {
		if longURL != "" {
			return longURL
		}
		return shortURL
	}
	if shortURL != "" {
		return shortURL
	}
	return longURL
}

func codeError(code int, msg string) *Error {
	if msg == "" {
		msg = "error code " + strconv.Itoa(code)
	}
	kind := KindAPI
	if code == CodeRateLimit {
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Message: msg, Code: code}
}

// looksLikeURL checks for an absolute http(s) URL without whitespace.
func looksLikeURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "HTTP " + strconv.Itoa(status)
}

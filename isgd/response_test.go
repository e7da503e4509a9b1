package isgd

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLongURL  = "https://www.example.com"
	testShortURL = "https://is.gd/Pt2sET"
	xmlHeader    = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
)

func formatConfig(f Format) Config {
	return Config{longURL: testLongURL, format: f}
}

func TestParseResponseSuccess(t *testing.T) {
	tests := []struct {
		name   string
		op     Operation
		format Format
		body   string
		want   string
	}{
		{"simple shorten", OpShorten, FormatSimple, testShortURL, testShortURL},
		{"simple with newline", OpShorten, FormatSimple, testShortURL + "\n", testShortURL},
		{"simple lookup", OpLookup, FormatSimple, testLongURL, testLongURL},
		{"simple lookup with space", OpLookup, FormatSimple, "https://example.com/a b?q=go lang\n", "https://example.com/a b?q=go lang"},
		{"json shorten", OpShorten, FormatJSON, `{ "shorturl": "https://is.gd/abc" }`, "https://is.gd/abc"},
		{"json lookup", OpLookup, FormatJSON, `{ "url": "` + testLongURL + `" }`, testLongURL},
		{"jsonp shorten", OpShorten, FormatJSON, `test({ "shorturl": "` + testShortURL + `" });`, testShortURL},
		{"jsonp lookup", OpLookup, FormatJSON, `test({ "url": "` + testLongURL + `" });`, testLongURL},
		{"json other field", OpLookup, FormatJSON, `{"shorturl": "` + testShortURL + `"}`, testShortURL},
		{"xml shorten", OpShorten, FormatXML, xmlHeader + `<output><shorturl>` + testShortURL + `</shorturl></output>`, testShortURL},
		{"xml lookup", OpLookup, FormatXML, xmlHeader + `<output><url>` + testLongURL + `</url></output>`, testLongURL},
		{"web", OpShorten, FormatWeb, `<html><body>` + testShortURL + `</body></html>`, `<html><body>` + testShortURL + `</body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseResponse(tt.op, formatConfig(tt.format), http.StatusOK, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.format, res.Format)
			assert.Equal(t, tt.body, res.Raw)
		})
	}
}

func TestParseResponseFailure(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		format   Format
		status   int
		body     string
		kind     ErrorKind
		code     int
		contains string
	}{
		{
			name:   "rate limited status",
			format: FormatJSON,
			status: http.StatusTooManyRequests,
			body:   `{"shorturl": "https://is.gd/abc"}`,
			kind:   KindRateLimited,
		},
		{
			name:     "server error without body",
			format:   FormatSimple,
			status:   http.StatusServiceUnavailable,
			kind:     KindNetwork,
			contains: "Service Unavailable",
		},
		{
			name:     "simple error with 400",
			format:   FormatSimple,
			status:   http.StatusBadRequest,
			body:     "Error: Please enter a valid URL to shorten",
			kind:     KindAPI,
			contains: "Please enter a valid URL",
		},
		{
			name:     "simple error with 200",
			format:   FormatSimple,
			status:   http.StatusOK,
			body:     "Error: Sorry, the URL you entered is on our internal blacklist.",
			kind:     KindAPI,
			contains: "blacklist",
		},
		{
			name:     "simple body not a URL",
			format:   FormatSimple,
			status:   http.StatusOK,
			body:     "something went wrong",
			kind:     KindAPI,
			contains: "something went wrong",
		},
		{
			name:     "simple shorten with space",
			format:   FormatSimple,
			status:   http.StatusOK,
			body:     "https://is.gd/a b",
			kind:     KindAPI,
			contains: "https://is.gd/a b",
		},
		{
			name:     "simple lookup error",
			op:       OpLookup,
			format:   FormatSimple,
			status:   http.StatusOK,
			body:     "Error: Short URL not found",
			kind:     KindAPI,
			contains: "Short URL not found",
		},
		{
			name:   "simple empty body",
			format: FormatSimple,
			status: http.StatusOK,
			kind:   KindAPI,
		},
		{
			name:     "json error",
			format:   FormatJSON,
			status:   http.StatusOK,
			body:     `{ "errorcode": 1, "errormessage": "Please specify a URL to shorten." }`,
			kind:     KindAPI,
			code:     CodeLongURL,
			contains: "Please specify a URL",
		},
		{
			name:   "json quoted error code",
			format: FormatJSON,
			status: http.StatusBadRequest,
			body:   `{"errorcode": "2", "errormessage": "The shortened URL you picked already exists"}`,
			kind:   KindAPI,
			code:   CodeShortURL,
		},
		{
			name:     "json rate limit code",
			format:   FormatJSON,
			status:   http.StatusBadGateway,
			body:     `{"errorcode": 3, "errormessage": "Rate limit exceeded"}`,
			kind:     KindRateLimited,
			code:     CodeRateLimit,
			contains: "Rate limit",
		},
		{
			name:     "json error without message",
			format:   FormatJSON,
			status:   http.StatusOK,
			body:     `{"errorcode": 4}`,
			kind:     KindAPI,
			code:     CodeOther,
			contains: "error code 4",
		},
		{
			name:   "malformed json",
			format: FormatJSON,
			status: http.StatusOK,
			body:   `{"shorturl": `,
			kind:   KindParse,
		},
		{
			name:   "json without fields",
			format: FormatJSON,
			status: http.StatusOK,
			body:   `{"foo": "bar"}`,
			kind:   KindParse,
		},
		{
			name:     "malformed json with error status",
			format:   FormatJSON,
			status:   http.StatusInternalServerError,
			body:     `<html>oops</html>`,
			kind:     KindNetwork,
			contains: "Internal Server Error",
		},
		{
			name:     "xml error",
			format:   FormatXML,
			status:   http.StatusOK,
			body:     xmlHeader + `<output><errorcode>2</errorcode><errormessage>Short URL taken</errormessage></output>`,
			kind:     KindAPI,
			code:     CodeShortURL,
			contains: "Short URL taken",
		},
		{
			name:   "xml rate limit",
			format: FormatXML,
			status: http.StatusOK,
			body:   `<output><errorcode>3</errorcode><errormessage>slow down</errormessage></output>`,
			kind:   KindRateLimited,
			code:   CodeRateLimit,
		},
		{
			name:   "malformed xml",
			format: FormatXML,
			status: http.StatusOK,
			body:   `<output><shorturl>https://is.gd/abc</output>`,
			kind:   KindParse,
		},
		{
			name:   "xml wrong root",
			format: FormatXML,
			status: http.StatusOK,
			body:   `<result><shorturl>https://is.gd/abc</shorturl></result>`,
			kind:   KindParse,
		},
		{
			name:   "xml without fields",
			format: FormatXML,
			status: http.StatusOK,
			body:   `<output></output>`,
			kind:   KindParse,
		},
		{
			name:   "web error status",
			format: FormatWeb,
			status: http.StatusNotFound,
			body:   `<html>not found</html>`,
			kind:   KindNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseResponse(tt.op, formatConfig(tt.format), tt.status, []byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, res)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.code, apiErr.Code)
			if tt.contains != "" {
				assert.Contains(t, apiErr.Message, tt.contains)
			}
		})
	}
}

func TestLooksLikeURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://is.gd/abc", true},
		{"http://v.gd/abc", true},
		{"ftp://is.gd/abc", false},
		{"is.gd/abc", false},
		{"Error: bad", false},
		{"https://is.gd/a b", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeURL(tt.in))
		})
	}
}

// Package isgd provides a client for the is.gd and v.gd URL shortening API.
//
// Every call builds one request from an immutable Config, sends it, and
// interprets the response in the requested format. The client keeps no state
// between calls, never retries, and is safe for concurrent use.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := isgd.NewClient(logger, isgd.WithTimeout(10*time.Second))
//
//	res, err := client.Shorten(ctx, "https://www.example.com", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Value) // https://is.gd/xxxxxx
//
//	cfg, err := isgd.NewBuilder().
//		ShortURL(res.Value).
//		Format(isgd.FormatJSON).
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	orig, err := client.Lookup(ctx, "", &cfg)
//
// # Formats
//
//   - FormatSimple: the bare URL, or "Error: ..." text
//   - FormatJSON: {"shorturl": ...} / {"url": ...} / {"errorcode": N, "errormessage": ...},
//     optionally wrapped in a JSONP callback
//   - FormatXML: the same fields inside an <output> element
//   - FormatWeb: the HTML page, returned verbatim
//
// # Error Handling
//
// All failures are *Error values carrying an ErrorKind:
//
//   - KindInvalidURL: the input was rejected before any request was sent
//   - KindNetwork: transport failure, timeout, cancellation or unexpected status
//   - KindRateLimited: HTTP 429 or is.gd error code 3
//   - KindAPI: is.gd rejected the request (bad URL, alias taken, unknown link)
//   - KindParse: the body did not match the requested format
//
// Helpers classify errors without a type assertion:
//
//	if isgd.IsRetryable(err) {
//		// back off and try again
//	}
package isgd

// Package snapshot captures the observable shape of an inbound HTTP request
// before the handler runs. A Snapshot reflects only what the transport layer
// delivered and is never mutated after creation.
package snapshot

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Headers excluded from every snapshot.
// Any replaying client recomputes them.
var excludedHeaders = map[string]bool{
	"host":           true,
	"content-length": true,
}

// KeyValue is an ordered key-value pair used for headers and query params.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Snapshot is an immutable record of one inbound HTTP request.
//
// Headers carry lower-cased names, sorted for deterministic output,
// with host and content-length excluded.
// Query preserves duplicate keys and their original order.
// Body is nil when the request carried no payload.
type Snapshot struct {
	Method  string     `json:"method"`
	URL     string     `json:"url"`
	Scheme  string     `json:"scheme"`
	Host    string     `json:"host"`
	Path    string     `json:"path"`
	Headers []KeyValue `json:"headers"`
	Query   []KeyValue `json:"query"`
	Body    []byte     `json:"body,omitempty"`
	JSON    bool       `json:"json"`
	Taken   time.Time  `json:"taken"`
}

// FromRequest builds a Snapshot from the request synchronously, with no
// network I/O. It never fails: fields that cannot be determined are left at
// their explicit absent values. The request body is read and restored, so
// downstream handlers observe the request unchanged.
func FromRequest(req *http.Request) *Snapshot {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}

	host := req.Host
	if host == "" {
		host = req.URL.Host
	}

	res := &Snapshot{
		Method:  strings.ToUpper(req.Method),
		Scheme:  scheme,
		Host:    host,
		Path:    req.URL.Path,
		URL:     scheme + "://" + host + req.URL.RequestURI(),
		Headers: collectHeaders(req.Header),
		Query:   parseQuery(req.URL.RawQuery),
		Taken:   time.Now(),
	}

	contentType := req.Header.Get("Content-Type")
	res.JSON = strings.Contains(contentType, "application/json")

	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			slog.Error("Error reading request body", "error", err)
			body = nil
		}
		// Restore the body so it can be read by subsequent handlers
		req.Body = io.NopCloser(bytes.NewBuffer(body))
		if len(body) > 0 {
			res.Body = body
		}
	}

	return res
}

// PathSegments returns the path split into its components,
// independent of the query string.
func (s *Snapshot) PathSegments() []string {
	trimmed := strings.Trim(s.Path, "/")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "/")
}

// HasBody reports whether a payload was present on the request.
func (s *Snapshot) HasBody() bool {
	return len(s.Body) > 0
}

// Key identifies the snapshot by method and path.
// Re-recording the same key replaces the prior artifact entry.
func (s *Snapshot) Key() string {
	return s.Method + " " + s.Path
}

func collectHeaders(header http.Header) []KeyValue {
	names := make([]string, 0, len(header))
	for name := range header {
		lower := strings.ToLower(name)
		if excludedHeaders[lower] {
			continue
		}
		names = append(names, lower)
	}
	// http.Header loses wire order, sort for stable output
	sort.Strings(names)

	res := make([]KeyValue, 0, len(names))
	for _, name := range names {
		for _, value := range header.Values(name) {
			res = append(res, KeyValue{Key: name, Value: value})
		}
	}
	return res
}

// parseQuery keeps duplicate keys and the original order,
// which url.Values would both destroy.
func parseQuery(rawQuery string) []KeyValue {
	res := make([]KeyValue, 0)
	if rawQuery == "" {
		return res
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")

		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			decodedKey = key
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			decodedValue = value
		}
		res = append(res, KeyValue{Key: decodedKey, Value: decodedValue})
	}
	return res
}

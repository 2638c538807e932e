// Package collection persists recorded requests as Postman Collection v2.1
// documents. Each collection file holds one item per (method, path) pair:
// re-recording a pair replaces the prior entry in place, new pairs append.
package collection

import (
	"fmt"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/reqsink/reqsink/pkg/snapshot"
)

const schemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Collection is the root of a Postman Collection v2.1 document.
type Collection struct {
	Info *Info   `json:"info"`
	Item []*Item `json:"item"`
}

// Info describes the collection.
// Set on first creation and never overwritten on append.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
	PostmanID   string `json:"_postman_id"`
}

// Item is one recorded endpoint.
// Response is always empty: responses are never captured.
type Item struct {
	Name     string      `json:"name"`
	Request  *Request    `json:"request"`
	Response []*Response `json:"response"`
}

// Request is the replayable request of an item.
type Request struct {
	Method string      `json:"method"`
	Header []*KeyValue `json:"header"`
	Body   *Body       `json:"body,omitempty"`
	URL    *URL        `json:"url"`
}

// Body is a raw request payload.
type Body struct {
	Mode    string       `json:"mode"`
	Raw     string       `json:"raw"`
	Options *BodyOptions `json:"options,omitempty"`
}

type BodyOptions struct {
	Raw *RawBody `json:"raw"`
}

type RawBody struct {
	Language string `json:"language"`
}

// URL is the broken-down request URL.
type URL struct {
	Raw      string      `json:"raw"`
	Protocol string      `json:"protocol"`
	Host     []string    `json:"host"`
	Path     []string    `json:"path"`
	Query    []*KeyValue `json:"query"`
}

// KeyValue is a Postman key-value entry.
// Type is set to "text" for headers and omitted for query params.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

type Response struct{}

// NewCollection creates an empty collection document for the given name.
func NewCollection(name string) *Collection {
	return &Collection{
		Info: &Info{
			Name:        name,
			Description: fmt.Sprintf("Auto-generated collection for %s", name),
			Schema:      schemaURL,
			PostmanID:   fmt.Sprintf("%s-%s", name, uuid.NewString()),
		},
		Item: make([]*Item, 0),
	}
}

// NewItem converts a snapshot into a collection item.
func NewItem(snap *snapshot.Snapshot) *Item {
	header := make([]*KeyValue, 0, len(snap.Headers))
	for _, kv := range snap.Headers {
		header = append(header, &KeyValue{
			Key:   kv.Key,
			Value: kv.Value,
			Type:  "text",
		})
	}

	query := make([]*KeyValue, 0, len(snap.Query))
	for _, kv := range snap.Query {
		query = append(query, &KeyValue{
			Key:   kv.Key,
			Value: kv.Value,
		})
	}

	return &Item{
		Name: snap.Key(),
		Request: &Request{
			Method: snap.Method,
			Header: header,
			Body:   newBody(snap),
			URL: &URL{
				Raw:      snap.URL,
				Protocol: snap.Scheme,
				Host:     []string{snap.Host},
				Path:     snap.PathSegments(),
				Query:    query,
			},
		},
		Response: make([]*Response, 0),
	}
}

func newBody(snap *snapshot.Snapshot) *Body {
	if !snap.HasBody() {
		return nil
	}

	if snap.JSON {
		return &Body{
			Mode: "raw",
			Raw:  prettyJSON(snap.Body),
			Options: &BodyOptions{
				Raw: &RawBody{Language: "json"},
			},
		}
	}

	return &Body{
		Mode: "raw",
		Raw:  string(snap.Body),
	}
}

// prettyJSON reformats a JSON payload with indentation.
// Invalid JSON is kept as is.
func prettyJSON(data []byte) string {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return string(data)
	}

	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return string(data)
	}
	return string(pretty)
}

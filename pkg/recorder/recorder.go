// Package recorder provides middleware that records inbound HTTP requests as
// replayable artifacts: Postman collections and curl scripts. Recording
// happens strictly before the wrapped handler runs, so requests are captured
// even when the handler fails. Recording is best-effort: storage failures are
// logged and never affect the response.
package recorder

import (
	"net/http"

	"github.com/reqsink/reqsink/pkg/collection"
	"github.com/reqsink/reqsink/pkg/script"
	"github.com/reqsink/reqsink/pkg/snapshot"
)

// Collection returns middleware that records each request into a Postman
// collection file before invoking the wrapped handler. Multiple recorders
// stack independently, each writing to its own store.
func Collection(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		o := newOptions(next, opts...)
		store := collection.NewStore(o.name, o.dir)

		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			snap := snapshot.FromRequest(req)

			if err := store.Record(snap); err != nil {
				o.logger.Warn("Recording request to collection failed",
					"collection", store.Name,
					"error", err,
				)
			}
			if o.history != nil {
				o.history.Set(req.Context(), snap)
			}

			next.ServeHTTP(w, req)
		})
	}
}

// Script returns middleware that records each request as a curl command
// block before invoking the wrapped handler.
func Script(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		o := newOptions(next, opts...)
		store := script.NewStore(o.name, o.dir, o.group)

		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			snap := snapshot.FromRequest(req)

			if err := store.Record(snap); err != nil {
				o.logger.Warn("Recording request to script failed",
					"script", store.Name,
					"error", err,
				)
			}
			if o.history != nil {
				o.history.Set(req.Context(), snap)
			}

			next.ServeHTTP(w, req)
		})
	}
}

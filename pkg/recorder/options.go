package recorder

import (
	"log/slog"
	"net/http"

	"github.com/reqsink/reqsink/pkg/db"
)

// Option configures a single recorder instance.
type Option func(*options)

type options struct {
	name    string
	dir     string
	group   bool
	history db.HistoryTable
	logger  *slog.Logger
}

// WithName sets the artifact name.
// Without it the name is derived from the wrapped handler's function name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithDir sets the output directory.
// Without it artifacts go to a dot-prefixed directory derived from the name
// in the current working directory.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithGroupMode sets the script recording mode: append when true (the
// default), overwrite-each-time when false. Collection recorders ignore it.
func WithGroupMode(group bool) Option {
	return func(o *options) {
		o.group = group
	}
}

// WithHistory additionally mirrors every snapshot into the given history
// table.
func WithHistory(history db.HistoryTable) Option {
	return func(o *options) {
		o.history = history
	}
}

// WithLogger sets the logger for recording failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// newOptions resolves options once, at wrap time.
func newOptions(next http.Handler, opts ...Option) *options {
	o := &options{
		group:  true,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.name == "" {
		o.name = handlerName(next)
	}
	return o
}

package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reqsink/reqsink/pkg/config"
	"github.com/reqsink/reqsink/pkg/db"
)

// Router is a wrapper around chi.Mux that carries the app config and the
// history storage the recorders write into.
type Router struct {
	*chi.Mux

	Config  *config.Config
	storage db.Storage
}

// NewRouter creates a new Router instance from Config.
func NewRouter(cfg *config.Config, storage db.Storage) *Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	return &Router{
		Mux:     r,
		Config:  cfg,
		storage: storage,
	}
}

// History returns the history table shared by the recorders.
func (r *Router) History() db.HistoryTable {
	return r.storage.History()
}

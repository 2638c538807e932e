package api

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// healthHandler handles health routes.
type healthHandler struct {
	router *Router
}

// health creates a health check handler indicating that the server is running.
func (h *healthHandler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func createHealthRoutes(router *Router) error {
	handler := &healthHandler{
		router: router,
	}

	router.Get("/healthz", handler.health)

	return nil
}

// historyHandler exposes the recorded snapshot history.
type historyHandler struct {
	router *Router
}

// list returns all recorded snapshots keyed by method:url.
func (h *historyHandler) list(w http.ResponseWriter, r *http.Request) {
	data := h.router.History().Data(r.Context())

	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to serialize history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// clear removes all recorded snapshots.
func (h *historyHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.router.History().Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func createHistoryRoutes(router *Router) error {
	handler := &historyHandler{
		router: router,
	}

	router.Get("/.history", handler.list)
	router.Delete("/.history", handler.clear)

	return nil
}

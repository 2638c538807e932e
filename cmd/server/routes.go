package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reqsink/reqsink/internal/api"
	"github.com/reqsink/reqsink/pkg/config"
	"github.com/reqsink/reqsink/pkg/recorder"
)

// createSampleRoutes registers a couple of endpoints wrapped with both
// recorders, so running the server immediately produces artifacts.
func createSampleRoutes(cfg *config.Config) api.RouteRegister {
	return func(router *api.Router) error {
		app := cfg.GetApp()

		itemsCfg := cfg.GetRecorder("items")
		itemsName := itemsCfg.Name
		if itemsName == "" {
			itemsName = "items"
		}

		router.With(
			recorder.Collection(
				recorder.WithName(itemsName),
				recorder.WithDir(app.CollectionsDir),
				recorder.WithHistory(router.History()),
			),
			recorder.Script(
				recorder.WithName(itemsName),
				recorder.WithDir(app.ScriptsDir),
				recorder.WithGroupMode(itemsCfg.GroupMode(app.GroupScripts)),
			),
		).Get("/items/{id}", getItem)

		usersCfg := cfg.GetRecorder("users")
		usersName := usersCfg.Name
		if usersName == "" {
			usersName = "users"
		}

		router.With(
			recorder.Collection(
				recorder.WithName(usersName),
				recorder.WithDir(app.CollectionsDir),
				recorder.WithHistory(router.History()),
			),
			recorder.Script(
				recorder.WithName(usersName),
				recorder.WithDir(app.ScriptsDir),
				recorder.WithGroupMode(usersCfg.GroupMode(app.GroupScripts)),
			),
		).Post("/users", createUser)

		return nil
	}
}

func getItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"id": "` + id + `"}`))
}

func createUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"created": true}`))
}

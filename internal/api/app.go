package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/reqsink/reqsink/pkg/config"
	"github.com/reqsink/reqsink/pkg/db"
)

// RouteRegister registers a group of routes on the router.
type RouteRegister func(router *Router) error

// App is the main application struct
type App struct {
	Router *Router

	storage db.Storage
}

// NewApp creates a new App instance from Config and registers the built-in
// routes.
func NewApp(cfg *config.Config) *App {
	storage := db.NewStorage(cfg.App.Storage, cfg.App.HistoryDuration)
	router := NewRouter(cfg, storage)

	res := &App{
		Router:  router,
		storage: storage,
	}

	bluePrints := []RouteRegister{
		createHealthRoutes,
		createHistoryRoutes,
	}

	for _, bluePrint := range bluePrints {
		if err := bluePrint(router); err != nil {
			log.Printf("Failed to load blueprint: %s\n", err.Error())
		}
	}

	return res
}

// AddBluePrint adds a new blueprint to the application.
func (a *App) AddBluePrint(bluePrint RouteRegister) error {
	return bluePrint(a.Router)
}

// Run starts the application and the server.
// Blocks until the server is stopped.
func (a *App) Run() {
	defer a.storage.Close()

	port := a.Router.Config.App.Port

	log.Printf("Server started on port %d. Press Ctrl+C to quit", port)

	err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), a.Router)
	if err != nil {
		panic(err)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/reqsink/reqsink/internal/api"
	"github.com/reqsink/reqsink/pkg/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	appDir := os.Getenv("APP_DIR")
	if appDir == "" {
		var err error
		appDir, err = os.Getwd()
		if err != nil {
			panic(err)
		}
	}
	_ = godotenv.Load(fmt.Sprintf("%s/.env", appDir))

	cfg := config.MustConfig(appDir)
	app := api.NewApp(cfg)

	if err := app.AddBluePrint(createSampleRoutes(cfg)); err != nil {
		slog.Error("Failed to register sample routes", "error", err)
	}

	watcher, err := newConfigWatcher(cfg)
	if err != nil {
		slog.Warn("Config watcher disabled", "error", err)
	} else {
		watcher.start()
		defer watcher.stop()
	}

	app.Run()
}

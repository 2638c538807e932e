package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// LoggerMiddleware is a custom logging middleware
func LoggerMiddleware(next http.Handler) http.Handler {
	disableLogger := os.Getenv("DISABLE_LOGGER") == "true"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if disableLogger {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		next.ServeHTTP(w, r)

		duration := time.Since(start)

		slog.Info(fmt.Sprintf("Incoming HTTP request: %s", r.URL.String()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("duration", duration.String()),
		)
	})
}

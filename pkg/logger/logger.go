package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a slog.Logger tagged with the service name. Production emits
// JSON; anything else gets the colored tint handler for readable local output.
func New(service, environment string, level slog.Level) *slog.Logger {
	var h slog.Handler
	if environment == "production" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		h = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.New(h).With("service", service)
}

package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/config"
)

// redactedKeys are attribute keys whose values never reach the log output.
var redactedKeys = map[string]bool{
	"authorization": true,
	"token":         true,
	"jwt_secret":    true,
	"api_key":       true,
}

// NewLogger builds the process logger writing to w and installs it as the
// slog default. Format "json" is for deployments; anything else yields text
// with source locations. Every record carries the app name and version.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	text := !strings.EqualFold(cfg.Format, "json")

	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   text,
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler).With(
		slog.String("app", "wildlife"),
		slog.String("version", Version),
	)
	slog.SetDefault(logger)

	return logger
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

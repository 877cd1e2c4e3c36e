package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AiDinaAgustin/microservice-payroll/internal/config"
	"github.com/go-chi/httplog/v3"
)

// New builds the JSON logger shared by a service. Attributes follow the ECS schema.
func New(app config.AppConfig, service string) *slog.Logger {
	return newLogger(os.Stdout, app, service)
}

func newLogger(w io.Writer, app config.AppConfig, service string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(app.Env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(app.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "microservice-payroll"),
		slog.String("service", service),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Nop discards everything. Used by tests.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

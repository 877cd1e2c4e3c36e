package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/AiDinaAgustin/microservice-payroll/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewLogger_WritesServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, config.AppConfig{Env: "development", LogLevel: "info", Version: "v1.2.3"}, "payroll")

	log.Debug("hidden")
	log.Info("payslip created", slog.String("period", "06-2025"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "payroll", entry["service"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "06-2025", entry["period"])
}

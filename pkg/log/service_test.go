package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	config "github.com/mwantia/goweight/internal/config/server"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	require.Equal(t, Debug, Parse("debug"))
	require.Equal(t, Warn, Parse(" WARNING "))
	require.Equal(t, Error, Parse("error"))
	require.Equal(t, Info, Parse(""))
	require.Equal(t, Info, Parse("verbose"))
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerServiceWithWriter("test", config.LogServerConfig{Level: "warn"}, &buf)

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)
	logger.Error("shown %d", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "WARN  [test] shown 2")
	require.Contains(t, out, "ERROR [test] shown 3")
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerServiceWithWriter("goweight", config.LogServerConfig{}, &buf)

	logger.Named("importer").Info("hello")
	require.Contains(t, buf.String(), "[goweight/importer] hello")
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerServiceWithWriter("goweight", config.LogServerConfig{JSON: true}, &buf)

	logger.Info("imported %s", "items")

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	require.Equal(t, "INFO", entry.Level)
	require.Equal(t, "goweight", entry.Service)
	require.Equal(t, "imported items", entry.Message)
}

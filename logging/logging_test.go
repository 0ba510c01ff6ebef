package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler_Attributes(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := slog.New(NewHandler(core))

	logger.Debug("dropped")
	logger.Info("vote cast", "vote_id", "v1", "solutions", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "vote cast", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "v1", fields["vote_id"])
	assert.EqualValues(t, 3, fields["solutions"])
}

func TestNewCore_JSON(t *testing.T) {
	var buf bytes.Buffer
	core, err := NewCore(Config{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger := slog.New(NewHandler(core))
	logger.Info("quiet")
	logger.Warn("missing tally entry", "solution", "solar-roofs")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "warn", record["level"])
	assert.Equal(t, "missing tally entry", record["msg"])
	assert.Equal(t, "solar-roofs", record["solution"])
	assert.Contains(t, record, "ts")
}

func TestNewCore_BadLevel(t *testing.T) {
	_, err := NewCore(Config{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := DefaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "logs", "univote.log")

	flush, err := Setup(cfg)
	require.NoError(t, err)

	slog.Info("server started", "port", 3318)
	flush()

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"server started"`)
	assert.Contains(t, string(data), `"port":3318`)
}

package logger

import (
	"path/filepath"
	"testing"

	"learnhub_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	SetLevel(&config.Config{Log: config.LogConfig{Level: "warn"}})
	assert.Equal(t, zapcore.WarnLevel, Level())

	SetLevel(&config.Config{Server: config.ServerConfig{Mode: "debug"}, Log: config.LogConfig{Level: "error"}})
	assert.Equal(t, zapcore.DebugLevel, Level())

	SetLevel(&config.Config{Log: config.LogConfig{Level: "nonsense"}})
	assert.Equal(t, zapcore.InfoLevel, Level())
}

func TestInitLogger(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "info", File: filepath.Join(t.TempDir(), "app.log")}}
	InitLogger(cfg)
	assert.NotNil(t, Log)
	Log.Info("logger ready")
	_ = Log.Sync()
}

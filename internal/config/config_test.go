package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	storage := filepath.Join(t.TempDir(), "files")
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
database:
  driver: postgres
  host: db
  port: 5432
  dbname: lms
jwt:
  secret: short
  expire_hours: 2
storage:
  type: local
  local_path: `+storage+`
quiz:
  pass_percent: 75
  session_ttl_minutes: 30
`)
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "lms", cfg.Database.DBName)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 75, cfg.Quiz.PassPercent)
	assert.Equal(t, 30*time.Minute, cfg.Quiz.SessionTTL())
	assert.Equal(t, 10*time.Minute, cfg.Quiz.LessonCacheTTL())
	assert.Equal(t, 0, cfg.Quiz.CompletionRetries)

	_, err = os.Stat(storage)
	assert.NoError(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: debug\nstorage:\n  local_path: "+t.TempDir()+"\n")
	t.Setenv("DATABASE_HOST", "env-host")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 60, cfg.Quiz.PassPercent)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Mode: "release"},
			Database: DatabaseConfig{Driver: "mysql"},
			JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Quiz:     QuizConfig{PassPercent: 60},
		}
	}
	assert.NoError(t, base().Validate())

	c := base()
	c.JWT.Secret = "short"
	assert.Error(t, c.Validate())

	c = base()
	c.Quiz.PassPercent = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Quiz.CompletionRetries = -1
	assert.Error(t, c.Validate())

	c = base()
	c.Database.Driver = "sqlserver"
	assert.Error(t, c.Validate())
}

func TestCalendarLocation(t *testing.T) {
	assert.Equal(t, time.Local, CalendarConfig{}.Location())
	assert.Equal(t, time.Local, CalendarConfig{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "UTC", CalendarConfig{Timezone: "UTC"}.Location().String())
}

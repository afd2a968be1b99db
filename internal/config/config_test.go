package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "sketch.audit", cfg.RabbitMQ.AuditExchange)
	assert.Equal(t, 900, cfg.S3.PresignExpireSec)
	assert.Equal(t, 200, cfg.Chat.MaxMessages)
	assert.Equal(t, "/webhook/sketch", cfg.Generation.WebhookPath)
}

func TestLoad_ExpandsEnvInFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	yaml := []byte(`
app:
  port: 9090
auth:
  jwtSecret: ${SKETCH_TEST_SECRET}
generation:
  baseURL: http://collaborator:5678
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), yaml, 0o644))
	t.Chdir(dir)
	t.Setenv("SKETCH_TEST_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	assert.Equal(t, "http://collaborator:5678", cfg.Generation.BaseURL)
	// defaults still apply to keys the file omits
	assert.Equal(t, 120, cfg.Generation.TimeoutSec)
}

func TestLoad_EnvOverridesWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_DATABASE_DSN", "file:sketch.db")
	t.Setenv("APP_RABBITMQ_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:sketch.db", cfg.Database.DSN)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQ.URL)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "   "
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "s3cr3t"
	assert.NoError(t, cfg.Validate())
}

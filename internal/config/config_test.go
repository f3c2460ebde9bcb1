package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env: dev
server:
  port: "9090"
  cors_origins: ["https://example.org"]
postgres:
  host: db
  database: fraud
storage:
  mode: local
rate_limit:
  login:
    requests: 3
    window: 30s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("POSTGRES_USER", "user")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONFIG_PATH", writeConfig(t, testYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:9090", cfg.Server.Addr())
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 3, cfg.RateLimit.Login.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Login.Window)
	assert.Equal(t, 60, cfg.RateLimit.Search.Requests)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "postgres://user:p%40ss%20word@db:5432/fraud?sslmode=disable", cfg.Postgres.DSN())
}

func TestLoad_MissingPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("CONFIG_PATH", writeConfig(t, testYAML))

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_S3RequiresBucket(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONFIG_PATH", writeConfig(t, testYAML))
	t.Setenv("STORAGE_MODE", "s3")

	_, err := Load()
	assert.ErrorContains(t, err, "bucket")
}

func TestLoadPostgres_IgnoresAuthSettings(t *testing.T) {
	t.Setenv("POSTGRES_USER", "migrator")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_PATH", writeConfig(t, testYAML))

	pg, err := LoadPostgres()
	require.NoError(t, err)

	assert.Equal(t, "db", pg.Host)
	assert.Equal(t, "postgres://migrator:secret@db:5432/fraud?sslmode=disable", pg.DSN())
}

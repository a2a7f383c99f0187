package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: test-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "schoolmate", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "schoolmate.bg", cfg.JWT.Issuer)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadConfigFileValues(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
database:
  dbname: schoolmate_test
jwt:
  secret: test-secret
redis:
  enabled: true
  addr: cache:6379
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "schoolmate_test", cfg.Database.DBName)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"9090\"\njwt:\n  secret: file-secret\n")

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"9090\"\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "JWT secret")
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := writeConfigFile(t, "jwt:\n  secret: test-secret\n  access_token_expiration: soon\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "access token expiration")
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "postgres"
	cfg.Database.Password = "secret"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "schoolmate"

	assert.Equal(t,
		"postgres://postgres:secret@db:5432/schoolmate?sslmode=disable",
		cfg.GetPostgresConnectionString())
}

// internal/common/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
app:
  name: quotebot
  environment: test
line:
  channel_secret: "test-secret"
  channel_access_token: "test-token"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "quotebot", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://api.line.me", cfg.Line.APIEndpoint)
	assert.Equal(t, 40, cfg.Trust.LowThreshold)
	assert.Equal(t, 70, cfg.Trust.HighThreshold)
	assert.Equal(t, "configs/pricing.json", cfg.Pricing.DocumentPath)
	assert.Equal(t, 600000, cfg.Dedup.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
}

func TestLoadFromFile_MissingChannelSecret(t *testing.T) {
	path := writeTempConfig(t, `
line:
  channel_access_token: "test-token"
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line.channel_secret")
}

func TestLoadFromFile_ThresholdOrdering(t *testing.T) {
	path := writeTempConfig(t, `
line:
  channel_secret: "test-secret"
  channel_access_token: "test-token"
trust:
  low_threshold: 80
  high_threshold: 50
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "low_threshold")
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("LINE_CHANNEL_SECRET", "env-secret")

	path := writeTempConfig(t, `
line:
  channel_access_token: "test-token"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Line.ChannelSecret)
}

func TestGetDSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "quotebot",
		User:     "bot",
		Password: "secret",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=bot password=secret dbname=quotebot sslmode=disable",
		p.GetDSN(),
	)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, GetDuration(30000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}

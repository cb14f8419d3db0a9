package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config directory at an empty temp dir
func isolate(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://api.vulnissimo.io", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "json", cfg.Output.Type)
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Empty(t, cfg.Notify.SlackWebhookURL)
	assert.Equal(t, 10*time.Second, cfg.Notify.RequestTimeout)
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
api:
  baseurl: http://localhost:8000
  requesttimeout: 5s
poll:
  interval: 500ms
output:
  type: pretty
  indent: -1
notify:
  slackwebhookurl: https://hooks.slack.com/services/T/B/x
`)

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Interval)
	assert.Equal(t, "pretty", cfg.Output.Type)
	assert.Equal(t, -1, cfg.Output.Indent)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/x", cfg.Notify.SlackWebhookURL)
	assert.Equal(t, 10*time.Second, cfg.Notify.RequestTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "output:\n  type: pretty\n  indent: 4\n")

	t.Setenv("VULNISSIMO_OUTPUT_TYPE", "json")
	t.Setenv("VULNISSIMO_API_BASEURL", "https://staging.vulnissimo.io")
	t.Setenv("VULNISSIMO_POLL_INTERVAL", "10s")

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Type)
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.Equal(t, "https://staging.vulnissimo.io", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Poll.Interval)
}

func TestLoad_DefaultFile(t *testing.T) {
	isolate(t)

	path := DefaultFile()
	require.NotEmpty(t, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("output:\n  indent: 8\n"), 0o600))

	empty := ""

	cfg, err := Load(&empty)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Output.Indent)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Load(&path)
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "api: [unterminated\n")

	_, err := Load(&path)
	assert.ErrorIs(t, err, ErrConfigLoad)
}

func TestLoad_InvalidValue(t *testing.T) {
	isolate(t)

	t.Setenv("VULNISSIMO_POLL_INTERVAL", "often")

	_, err := Load(nil)
	assert.ErrorIs(t, err, ErrConfigUnmarshal)
}

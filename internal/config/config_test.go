package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "md2block.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
strict: true
max_depth: 64
workers: 2
output_format: yaml
pretty_markdown: true
log_level: warn
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.True(t, cfg.PrettyMarkdown)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "debug: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Strict)
	assert.Equal(t, 0, cfg.MaxDepth)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("MD2BLOCK_OUTPUT_FORMAT", "toml")
	cfg, err := LoadConfig(writeConfig(t, "strict: false\n"))
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.OutputFormat)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "output_format: xml\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format")

	_, err = LoadConfig(writeConfig(t, "workers: 0\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{LogLevel: "info", Workers: 1, OutputFormat: "json"}
	require.NoError(t, cfg.Validate())

	cfg.MaxDepth = -1
	cfg.LogLevel = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
	assert.Contains(t, err.Error(), "log_level")
}

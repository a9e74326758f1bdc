package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	yml := `source:
  url: https://example.com/README.md
  timeout: 15s
manifest:
  path: editors/code/package.json
options:
  namespace: "d.dfmt."
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(yml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/README.md", cfg.Source.URL)
	assert.Equal(t, 15*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "editors/code/package.json", cfg.Manifest.Path)
	assert.Equal(t, "d.dfmt.", cfg.Options.Namespace)

	// unspecified keys fall back to defaults
	assert.Equal(t, Default().Source.Heading, cfg.Source.Heading)
	assert.Equal(t, "dfmt_", cfg.Options.SwitchPrefix)
	assert.Equal(t, "resource", cfg.Options.Scope)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WREN_MANIFEST_PATH", "other/package.json")
	t.Setenv("WREN_OPTIONS_SCOPE", "window")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "other/package.json", cfg.Manifest.Path)
	assert.Equal(t, "window", cfg.Options.Scope)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("source: [unterminated"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no source", func(c *Config) { c.Source.URL = "" }},
		{"no heading", func(c *Config) { c.Source.Heading = "" }},
		{"no manifest", func(c *Config) { c.Manifest.Path = "" }},
		{"no namespace", func(c *Config) { c.Options.Namespace = "" }},
		{"negative timeout", func(c *Config) { c.Source.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestValidate_SourceFileReplacesURL(t *testing.T) {
	cfg := Default()
	cfg.Source.URL = ""
	assert.ErrorContains(t, cfg.Validate(), "source.url or source.file must be set")

	cfg.Source.File = "README.md"
	assert.NoError(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Source.Timeout = 30 * time.Second
	cfg.Manifest.Path = "code/package.json"

	require.NoError(t, Save(filepath.Join(dir, FileName), cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/parsekit/internal/errors"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, "  ", cfg.Output.Indent)
	assert.Equal(t, OnErrorFail, cfg.Nginx.OnError)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".parsekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
format: nginx
output:
  pretty: false
nginx:
  on_error: skip
dev:
  debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, FormatNginx, cfg.Format)
	assert.False(t, cfg.Output.Pretty)
	assert.Equal(t, OnErrorSkip, cfg.Nginx.OnError)
	assert.True(t, cfg.Dev.Debug)
	// Unset options keep their defaults
	assert.Equal(t, "  ", cfg.Output.Indent)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := writeConfigFile(t, "format: nginx\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, FormatNginx, cfg.Format)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, OnErrorFail, cfg.Nginx.OnError)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "format: [unclosed\n"},
		{name: "unknown format", content: "format: csv\n"},
		{name: "unknown policy", content: "nginx:\n  on_error: retry\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.ErrorTypeConfig, appErr.Type)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeConfig, appErr.Type)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))

	configPath := filepath.Join(dir, ".parsekit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("format: json\n"), 0644))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(sub))
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	found := FindConfigFile()
	require.NotEmpty(t, found)
	// Resolve symlinks before comparing; temp dirs may be linked on some
	// platforms
	wantReal, err := filepath.EvalSymlinks(configPath)
	require.NoError(t, err)
	foundReal, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, wantReal, foundReal)
}

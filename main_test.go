package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/parsekit/internal/config"
	"github.com/mcncl/parsekit/internal/errors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_JSONInput(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "input.json", `{"name": "John", "age": 30, "active": true}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.txt")

	cfg := config.NewConfig()
	err := run(&Context{Debug: false, Config: cfg})
	require.NoError(t, err)

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Contains(t, string(out), "John")
	assert.Contains(t, string(out), "30")
}

func TestRun_NginxBatch(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	lines := `93.180.71.3 - - [17/May/2015:08:05:32 +0000] "GET /downloads/product_1 HTTP/1.1" 304 0 "-" "Debian APT-HTTP/1.3 (0.8.16~exp12ubuntu10.21)"
80.91.33.133 - - [17/May/2015:08:05:46 +0000] "HEAD /downloads/product_2 HTTP/1.0" 200 0 "-" "urlgrabber/3.9.1 yum/3.4.3"
`
	CLI.Input = writeTempFile(t, "access.log", lines)
	CLI.Output = filepath.Join(t.TempDir(), "out.txt")

	cfg := config.NewConfig()
	cfg.Format = config.FormatNginx
	cfg.Output.Pretty = false
	err := run(&Context{Debug: false, Config: cfg})
	require.NoError(t, err)

	out, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Contains(t, string(out), "/downloads/product_1")
	assert.Contains(t, string(out), "Status:304")
	assert.Contains(t, string(out), "Status:200")
}

func TestRun_NginxSkipPolicy(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	lines := `not a log line
93.180.71.3 - - [17/May/2015:08:05:32 +0000] "GET / HTTP/1.1" 200 5 "-" "curl/8.5.0"
`
	CLI.Input = writeTempFile(t, "access.log", lines)
	CLI.Output = filepath.Join(t.TempDir(), "out.txt")

	cfg := config.NewConfig()
	cfg.Format = config.FormatNginx
	cfg.Nginx.OnError = config.OnErrorSkip
	err := run(&Context{Debug: false, Config: cfg})
	require.NoError(t, err)

	// Same input with the default fail policy aborts the batch
	cfg.Nginx.OnError = config.OnErrorFail
	err = run(&Context{Debug: false, Config: cfg})
	assert.Error(t, err)
}

func TestRun_BadJSONInput(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "input.json", `{"a": }`)
	CLI.Output = ""

	err := run(&Context{Debug: false, Config: config.NewConfig()})
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeSyntax, appErr.Type)
}

func TestRun_MissingInputFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = filepath.Join(t.TempDir(), "missing.json")

	err := run(&Context{Debug: false, Config: config.NewConfig()})
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = writeTempFile(t, ".parsekit.yaml", "format: json\noutput:\n  pretty: true\n")
	CLI.Format = "nginx"
	CLI.Compact = true

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.FormatNginx, cfg.Format)
	assert.False(t, cfg.Output.Pretty)
}

func TestLoadConfig_RejectsUnknownFormatFlag(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = ""
	CLI.Format = "xml"

	_, err := loadConfig()
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeConfig, appErr.Type)
}

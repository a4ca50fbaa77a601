package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"RADICALS_POLICY", "RADICALS_OUTPUT_FORMAT", "RADICALS_LOG_LEVEL", "SURREALDB_NAMESPACE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "EquivalentUnifiedIdeograph.txt", cfg.EquivalenceFile)
	assert.Equal(t, "Unihan_IRGSources.txt", cfg.StrokesFile)
	assert.Equal(t, "equivalence-first", cfg.Policy)
	assert.Equal(t, "exclude", cfg.SupplementCandidates)
	assert.Equal(t, "preserve", cfg.Duplicates)
	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.Equal(t, "unicode", cfg.SurrealDBNamespace)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RADICALS_POLICY", "smallest")
	t.Setenv("RADICALS_LOG_LEVEL", "debug")
	t.Setenv("SURREALDB_URL", "ws://db:8000/rpc")

	cfg := Load()
	assert.Equal(t, "smallest", cfg.Policy)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "ws://db:8000/rpc", cfg.SurrealDBURL)
}

func TestLoadFile_Overlay(t *testing.T) {
	t.Setenv("RADICALS_POLICY", "smallest")
	t.Setenv("RADICALS_STROKES_FILE", "env-strokes.txt")

	path := filepath.Join(t.TempDir(), "radicals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"policy: unified-first",
		"output_format: yaml",
		"log_level: warn",
		"duplicates: dedupe",
	}, "\n")), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "unified-first", cfg.Policy)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, "dedupe", cfg.Duplicates)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	// Not in the file: environment wins.
	assert.Equal(t, "env-strokes.txt", cfg.StrokesFile)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: [unclosed"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.EquivalenceFile)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("table written", "rows", 214)

	assert.Contains(t, stderr.String(), "table written")
	assert.NotContains(t, stderr.String(), "hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &entry))
	assert.Equal(t, "table written", entry["msg"])
	assert.Equal(t, float64(214), entry["rows"])
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radicals.log")
	logger, cleanup := SetupLogger(path, slog.LevelInfo)
	logger.Info("hello")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSetupLogger_UnwritableFallsBack(t *testing.T) {
	logger, cleanup := SetupLogger(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log"), slog.LevelInfo)
	require.NotNil(t, logger)
	assert.NoError(t, cleanup())
}

func TestSourcePath(t *testing.T) {
	cfg := Config{SourceDir: "data"}
	abs := filepath.Join(t.TempDir(), "eq.txt")

	assert.Equal(t, filepath.Join("data", "EquivalentUnifiedIdeograph.txt"), cfg.SourcePath("EquivalentUnifiedIdeograph.txt"))
	assert.Equal(t, abs, cfg.SourcePath(abs))
	assert.Equal(t, "", cfg.SourcePath(""))
	assert.Equal(t, "eq.txt", Config{}.SourcePath("eq.txt"))
}

// Package config loads settings from environment variables and an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Source files
	EquivalenceFile string `yaml:"equivalence_file"`
	StrokesFile     string `yaml:"strokes_file"`

	// Source acquisition
	SourceDir  string `yaml:"source_dir"`
	UCDBaseURL string `yaml:"ucd_base_url"`

	// Output
	OutputFile   string `yaml:"output_file"`
	OutputFormat string `yaml:"output_format"`

	// Selection
	Policy               string `yaml:"policy"`
	SupplementCandidates string `yaml:"supplement_candidates"`
	Duplicates           string `yaml:"duplicates"`

	// SurrealDB connection
	SurrealDBURL       string `yaml:"surrealdb_url"`
	SurrealDBNamespace string `yaml:"surrealdb_namespace"`
	SurrealDBDatabase  string `yaml:"surrealdb_database"`
	SurrealDBUser      string `yaml:"surrealdb_user"`
	SurrealDBPass      string `yaml:"surrealdb_pass"`
	SurrealDBAuthLevel string `yaml:"surrealdb_auth_level"`

	// Logging
	LogFile      string     `yaml:"log_file"`
	LogLevelName string     `yaml:"log_level"`
	LogLevel     slog.Level `yaml:"-"`
}

// Load reads configuration from environment variables.
func Load() Config {
	cfg := Config{
		// Sources
		EquivalenceFile: getEnv("RADICALS_EQUIVALENCE_FILE", "EquivalentUnifiedIdeograph.txt"),
		StrokesFile:     getEnv("RADICALS_STROKES_FILE", "Unihan_IRGSources.txt"),
		SourceDir:       getEnv("RADICALS_SOURCE_DIR", "."),
		UCDBaseURL:      getEnv("RADICALS_UCD_BASE_URL", "https://www.unicode.org/Public/UCD/latest/"),

		// Output
		OutputFile:   getEnv("RADICALS_OUTPUT_FILE", "radical_master.csv"),
		OutputFormat: getEnv("RADICALS_OUTPUT_FORMAT", "csv"),

		// Selection
		Policy:               getEnv("RADICALS_POLICY", "equivalence-first"),
		SupplementCandidates: getEnv("RADICALS_SUPPLEMENT_CANDIDATES", "exclude"),
		Duplicates:           getEnv("RADICALS_DUPLICATES", "preserve"),

		// SurrealDB
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "unicode"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "radicals"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		// Logging
		LogFile:      getEnv("RADICALS_LOG_FILE", "/tmp/radicals.log"),
		LogLevelName: getEnv("RADICALS_LOG_LEVEL", "INFO"),
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return cfg
}

// LoadFile reads the environment, then overlays the YAML file at path.
// Keys missing from the file keep their environment or default value.
// An empty path is the same as Load.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return cfg, nil
}

// SourcePath resolves a source file name against SourceDir.
// Absolute paths are returned unchanged.
func (c Config) SourcePath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.SourceDir == "" {
		return name
	}
	return filepath.Join(c.SourceDir, name)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

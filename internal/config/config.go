package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from an optional YAML file
// named by DOCSPLIT_CONFIG, then environment variables, then defaults.
type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Export
	OutputRoot        string `yaml:"output_root"`
	MaxFilenameLength int    `yaml:"max_filename_length"`
	ExportManifest    string `yaml:"export_manifest"`

	// Sectioning
	PreambleTitle     string `yaml:"preamble_title"`
	SkipDocumentTitle bool   `yaml:"skip_document_title"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Stats
	StatsWindow time.Duration `yaml:"stats_window"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Port:              "8090",
		OutputRoot:        "./output",
		MaxFilenameLength: 100,
		ExportManifest:    "sections.yaml",
		MaxUploadBytes:    52428800, // 50MB
		StatsWindow:       1 * time.Hour,
	}
}

// Load builds the configuration. A DOCSPLIT_CONFIG file that cannot be read
// or parsed is an error; missing env vars are not.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("DOCSPLIT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("DOCSPLIT_API_KEY", cfg.APIKey)
	cfg.OutputRoot = envOr("OUTPUT_ROOT", cfg.OutputRoot)
	cfg.MaxFilenameLength = envInt("MAX_FILENAME_LENGTH", cfg.MaxFilenameLength)
	cfg.ExportManifest = envOr("EXPORT_MANIFEST", cfg.ExportManifest)
	cfg.PreambleTitle = envOr("PREAMBLE_TITLE", cfg.PreambleTitle)
	cfg.SkipDocumentTitle = envBool("SKIP_DOCUMENT_TITLE", cfg.SkipDocumentTitle)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.StatsWindow = envDuration("STATS_WINDOW", cfg.StatsWindow)

	def := Defaults()
	if cfg.MaxFilenameLength <= 0 {
		cfg.MaxFilenameLength = def.MaxFilenameLength
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = def.StatsWindow
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCSPLIT_API_KEY is required")
	}
	if c.OutputRoot == "" {
		return fmt.Errorf("OUTPUT_ROOT must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

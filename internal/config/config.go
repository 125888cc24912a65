package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig   `validate:"required"`
	Paths    PathConfig     `validate:"required"`
	Engine   EngineConfig   `validate:"required"`
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	User    string
	Name    string
	Host    string
	Port    int
	SSLMode string
}

// DSN resolves the connection string for the run database. DATABASE_URL
// wins when set; otherwise a keyword/value string is assembled from the
// discrete fields. Returns "" when neither form is configured.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" {
		return ""
	}
	parts := []string{
		"host=" + d.Host,
		"port=" + strconv.Itoa(d.Port),
	}
	if d.User != "" {
		parts = append(parts, "user="+d.User)
	}
	if d.Name != "" {
		parts = append(parts, "dbname="+d.Name)
	}
	parts = append(parts, "sslmode="+d.SSLMode)
	return strings.Join(parts, " ")
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `validate:"required"`
}

// PathConfig holds file system paths
type PathConfig struct {
	RunsDir string `validate:"required"`
}

// EngineConfig holds assessment engine defaults
type EngineConfig struct {
	Seed       int64
	Samples    int
	Confidence float64
	Interval   string
	PseudoN    float64
}

// ExportConfig holds report export settings
type ExportConfig struct {
	ExcelFile string
	Markdown  bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Server:   loadServerConfig(),
		Paths:    loadPathConfig(),
		Engine:   loadEngineConfig(),
		Export:   loadExportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:     os.Getenv("DATABASE_URL"),
		User:    getEnvOrDefault("DB_USER", ""),
		Name:    getEnvOrDefault("DB_NAME", ""),
		Host:    getEnvOrDefault("DB_HOST", ""),
		Port:    getEnvIntOrDefault("DB_PORT", 5432),
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadPathConfig() PathConfig {
	return PathConfig{
		RunsDir: getEnvOrDefault("RUNS_DIR", "./runs"),
	}
}

func loadEngineConfig() EngineConfig {
	return EngineConfig{
		Seed:       getEnvInt64OrDefault("ENGINE_SEED", 1),
		Samples:    getEnvIntOrDefault("ENGINE_SAMPLES", 0),
		Confidence: getEnvFloatOrDefault("ENGINE_CONFIDENCE", 0.95),
		Interval:   getEnvOrDefault("ENGINE_INTERVAL", "wald"),
		PseudoN:    getEnvFloatOrDefault("ENGINE_PSEUDO_N", 5),
	}
}

func loadExportConfig() ExportConfig {
	return ExportConfig{
		ExcelFile: getEnvOrDefault("EXCEL_FILE", ""),
		Markdown:  getEnvBoolOrDefault("MARKDOWN_REPORT", true),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Paths.RunsDir == "" {
		return errors.ConfigInvalid("runs directory is required")
	}
	if config.Engine.Confidence <= 0 || config.Engine.Confidence >= 1 {
		return errors.ConfigInvalid("ENGINE_CONFIDENCE must be in (0, 1)")
	}
	switch config.Engine.Interval {
	case "wald", "wilson", "clopper_pearson":
	default:
		return errors.ConfigInvalid("ENGINE_INTERVAL must be wald, wilson, or clopper_pearson")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

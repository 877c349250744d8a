package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cirrusops/contentdiff/internal/common"
	"gopkg.in/yaml.v3"
)

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Diff Defaults
	DefaultDiffGranularity      = "word"
	DefaultDiffMaxContentSizeMB = 10

	// Storage Defaults
	DefaultStorageDatabasePath = "database/contentdiff/versions.db"

	// Reporter Defaults
	DefaultReporterOutputDir   = "reports/diff"
	DefaultReporterReportTitle = "Content Version Diff"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	DiffConfig     DiffConfig     `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	LogConfig      LogConfig      `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	ReporterConfig ReporterConfig `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
	StorageConfig  StorageConfig  `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		DiffConfig:     NewDefaultDiffConfig(),
		LogConfig:      NewDefaultLogConfig(),
		ReporterConfig: NewDefaultReporterConfig(),
		StorageConfig:  NewDefaultStorageConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports both
// JSON and YAML formats; YAML is assumed for .yaml/.yml extensions. When no
// config file is found the defaults are returned as-is.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read config file '%s'", filePath)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, common.WrapError(err, "config validation failed")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

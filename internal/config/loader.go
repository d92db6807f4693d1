package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"suited/pkg/types"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr           string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir      string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	CacheSize      int      `json:"cache_size" yaml:"cache_size" toml:"cache_size"`
	MaxMemoryMB    int      `json:"max_memory_mb" yaml:"max_memory_mb" toml:"max_memory_mb"`
	DefaultEstMB   int      `json:"default_estimate_mb" yaml:"default_estimate_mb" toml:"default_estimate_mb"`
	OptimizeTarget float64  `json:"optimize_target" yaml:"optimize_target" toml:"optimize_target"`
	LoadTimeoutSec int      `json:"load_timeout_sec" yaml:"load_timeout_sec" toml:"load_timeout_sec"`
	HistoryDB      string   `json:"history_db" yaml:"history_db" toml:"history_db"`
	AccessMetaPath string   `json:"access_meta_path" yaml:"access_meta_path" toml:"access_meta_path"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSEnabled    bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`

	// Suites declared in the config file are registered at startup.
	Suites []types.SuiteConfiguration `json:"suites" yaml:"suites" toml:"suites"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Package config loads docsearch settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds docsearch settings.
type Config struct {
	Env     string        `yaml:"env"`
	Search  SearchConfig  `yaml:"search"`
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	MCP     MCPConfig     `yaml:"mcp"`
	Batch   BatchConfig   `yaml:"batch"`
}

// SearchConfig locates the corpus and index and bounds results.
type SearchConfig struct {
	CorpusPath string `yaml:"corpus_path"`
	IndexPath  string `yaml:"index_path"` // snapshot JSON, or a bleve directory built by "docsearch snapshot"
	BaseURL    string `yaml:"base_url"`
	MaxHits    int    `yaml:"max_hits"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CacheConfig holds the Redis result cache settings.
type CacheConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addrs     []string `yaml:"addrs"`
	Password  string   `yaml:"password"`
	TTLSec    int      `yaml:"ttl_sec"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// MCPConfig names the MCP server implementation.
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// BatchConfig sizes the batch worker pool.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Load reads configuration from a YAML file, expands ${VAR} references,
// applies defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = GetEnv()
	}
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = "/"
	}
	if c.Search.MaxHits == 0 {
		c.Search.MaxHits = 8
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "docsearch:"
	}
	if c.MCP.Name == "" {
		c.MCP.Name = "docsearch"
	}
	if c.MCP.Version == "" {
		c.MCP.Version = "0.1.0"
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case "local", "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("env must be local, dev or prod, got %q", c.Env))
	}
	if c.Search.CorpusPath == "" {
		errs = append(errs, errors.New("search.corpus_path is required"))
	}
	if c.Search.IndexPath == "" {
		errs = append(errs, errors.New("search.index_path is required"))
	}
	if c.Search.MaxHits < 0 {
		errs = append(errs, fmt.Errorf("search.max_hits must not be negative, got %d", c.Search.MaxHits))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		errs = append(errs, errors.New("cache.addrs is required when cache is enabled"))
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

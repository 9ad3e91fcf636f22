// Package config provides configuration structures for the resume search
// service. Values come from defaults, then an optional YAML file, then RS_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// CorpusConfig describes where resumes are read from.
type CorpusConfig struct {
	Dir             string   `yaml:"dir"`
	Extensions      []string `yaml:"extensions"` // File suffixes read as documents (e.g., ".txt")
	LoadConcurrency int      `yaml:"load_concurrency"`
	ReloadRoot      string   `yaml:"reload_root"` // Directories /reload may name; defaults to Dir
}

// SearchConfig holds ranking and query rewriting parameters.
type SearchConfig struct {
	TopK            int     `yaml:"top_k"`
	MaxEditDistance int     `yaml:"max_edit_distance"`
	RocchioAlpha    float64 `yaml:"rocchio_alpha"` // Weight of the original query
	RocchioBeta     float64 `yaml:"rocchio_beta"`  // Weight of the relevant-document centroid
}

// CacheConfig controls the Redis result cache.
type CacheConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	TTL            time.Duration `yaml:"ttl"`
	ConnectRetries int           `yaml:"connect_retries"`
}

// JobsConfig controls background reload jobs.
type JobsConfig struct {
	MaxWorkers int `yaml:"max_workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a Config with local development defaults.
func Default() *Config {
	cfg := &Config{
		Cache:   CacheConfig{Addr: "localhost:6379"},
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads a YAML config file (if provided) over the defaults and applies
// environment-variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills unset (zero) values with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.AllowedOrigins == nil {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "https://resume-matcher-devanshu.onrender.com"}
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}

	if c.Corpus.Dir == "" {
		c.Corpus.Dir = "resumes"
	}
	if len(c.Corpus.Extensions) == 0 {
		c.Corpus.Extensions = []string{".txt"}
	}
	if c.Corpus.LoadConcurrency == 0 {
		c.Corpus.LoadConcurrency = 8
	}

	if c.Search.TopK == 0 {
		c.Search.TopK = 10
	}
	if c.Search.MaxEditDistance == 0 {
		c.Search.MaxEditDistance = 2
	}
	if c.Search.RocchioAlpha == 0 {
		c.Search.RocchioAlpha = 1.0
	}
	if c.Search.RocchioBeta == 0 {
		c.Search.RocchioBeta = 0.75
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 60 * time.Second
	}
	if c.Cache.ConnectRetries == 0 {
		c.Cache.ConnectRetries = 3
	}

	if c.Jobs.MaxWorkers == 0 {
		c.Jobs.MaxWorkers = 1
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks the configuration and returns one message per problem.
func (c *Config) Validate() []string {
	var errors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if strings.TrimSpace(c.Corpus.Dir) == "" {
		errors = append(errors, "corpus.dir cannot be empty")
	}
	for _, ext := range c.Corpus.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errors = append(errors, "Extension '"+ext+"' in corpus.extensions must start with '.'")
		}
	}
	errors = append(errors, checkDuplicates("corpus.extensions", c.Corpus.Extensions)...)
	errors = append(errors, checkDuplicates("server.allowed_origins", c.Server.AllowedOrigins)...)
	if c.Corpus.LoadConcurrency < 1 {
		errors = append(errors, "corpus.load_concurrency must be at least 1")
	}

	if c.Search.TopK < 1 {
		errors = append(errors, "search.top_k must be at least 1")
	}
	if c.Search.MaxEditDistance < 0 {
		errors = append(errors, "search.max_edit_distance cannot be negative")
	}
	if c.Search.RocchioAlpha < 0 || c.Search.RocchioBeta < 0 {
		errors = append(errors, "search.rocchio_alpha and search.rocchio_beta cannot be negative")
	}

	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		errors = append(errors, "cache.addr is required when the cache is enabled")
	}
	if c.Cache.ConnectRetries < 0 {
		errors = append(errors, "cache.connect_retries cannot be negative")
	}
	if c.Jobs.MaxWorkers < 1 {
		errors = append(errors, "jobs.max_workers must be at least 1")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errors = append(errors, "Invalid logging.format '"+c.Logging.Format+"' (must be 'text' or 'json')")
	}

	return errors
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		if seen[value] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[value] = true
	}

	return errors
}

// applyEnvOverrides reads RS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RS_SERVER_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("RS_CORPUS_DIR"); v != "" {
		cfg.Corpus.Dir = v
	}
	if v := os.Getenv("RS_CORPUS_RELOAD_ROOT"); v != "" {
		cfg.Corpus.ReloadRoot = v
	}
	if v := os.Getenv("RS_CORPUS_EXTENSIONS"); v != "" {
		cfg.Corpus.Extensions = strings.Split(v, ",")
	}
	if v := os.Getenv("RS_SEARCH_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			cfg.Search.TopK = k
		}
	}
	if v := os.Getenv("RS_SEARCH_MAX_EDIT_DISTANCE"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxEditDistance = d
		}
	}
	if v := os.Getenv("RS_CACHE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv("RS_CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("RS_CACHE_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	if v := os.Getenv("RS_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = ttl
		}
	}
	if v := os.Getenv("RS_JOBS_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs.MaxWorkers = n
		}
	}
	if v := os.Getenv("RS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("RS_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}

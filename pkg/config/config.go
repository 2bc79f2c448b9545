package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent is the static client identifier sent with every request
	DefaultUserAgent = "DAWSON-Extractor/1.0 (Educational/Research)"

	envPrefix = "DAWSON_"
)

// Config holds all configuration options for the extractor
type Config struct {
	// What to collect and how to recognise it
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction"`

	// Upstream API settings
	API APIConfig `yaml:"api" json:"api"`

	// Request pacing
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ExtractionConfig holds the document selection policy
type ExtractionConfig struct {
	NumOrders      int      `yaml:"num_orders" json:"num_orders" validate:"min=0"`
	DocumentTypes  []string `yaml:"document_types" json:"document_types" validate:"min=1,dive,required"`
	MatchMode      string   `yaml:"match_mode" json:"match_mode" validate:"oneof=exact substring"`
	MinPerType     int      `yaml:"min_per_type" json:"min_per_type" validate:"min=0"`
	SearchKeywords []string `yaml:"search_keywords" json:"search_keywords" validate:"min=1,dive,required"`
}

// APIConfig holds the case-management API settings
type APIConfig struct {
	Environment     string        `yaml:"environment" json:"environment" validate:"oneof=blue green"`
	BaseURL         string        `yaml:"base_url" json:"base_url" validate:"omitempty,url"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent" validate:"required"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`
	DownloadTimeout time.Duration `yaml:"download_timeout" json:"download_timeout" validate:"gt=0"`
	SearchLimit     int           `yaml:"search_limit" json:"search_limit" validate:"min=1"`
}

// RateLimitConfig holds request pacing configuration
type RateLimitConfig struct {
	Delay    time.Duration `yaml:"delay" json:"delay" validate:"min=0"`
	Strategy string        `yaml:"strategy" json:"strategy" validate:"oneof=sleep interval"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory" validate:"required"`
	RunFolders    bool   `yaml:"run_folders" json:"run_folders"`
	CatalogFile   string `yaml:"catalog_file" json:"catalog_file" validate:"required"`
	MetricsFile   string `yaml:"metrics_file" json:"metrics_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn warning error disabled"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with the documented defaults
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			NumOrders:      10,
			DocumentTypes:  []string{"Order"},
			MatchMode:      "substring",
			MinPerType:     0,
			SearchKeywords: []string{"order"},
		},
		API: APIConfig{
			Environment:     "green",
			UserAgent:       DefaultUserAgent,
			Timeout:         30 * time.Second,
			DownloadTimeout: 60 * time.Second,
			SearchLimit:     5000,
		},
		RateLimit: RateLimitConfig{
			Delay:    time.Second,
			Strategy: "sleep",
		},
		Output: OutputConfig{
			BaseDirectory: "downloads",
			RunFolders:    true,
			CatalogFile:   "document_types_catalog.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from DAWSON_* environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if v := os.Getenv(envPrefix + "NUM_ORDERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sNUM_ORDERS: %w", envPrefix, err))
		} else {
			c.Extraction.NumOrders = n
		}
	}
	if v := os.Getenv(envPrefix + "DOCUMENT_TYPES"); v != "" {
		c.Extraction.DocumentTypes = splitList(v)
	}
	if v := os.Getenv(envPrefix + "MATCH_MODE"); v != "" {
		c.Extraction.MatchMode = strings.ToLower(v)
	}
	if v := os.Getenv(envPrefix + "MIN_PER_TYPE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMIN_PER_TYPE: %w", envPrefix, err))
		} else {
			c.Extraction.MinPerType = n
		}
	}
	if v := os.Getenv(envPrefix + "SEARCH_KEYWORDS"); v != "" {
		c.Extraction.SearchKeywords = splitList(v)
	}

	if v := os.Getenv(envPrefix + "API_ENVIRONMENT"); v != "" {
		c.API.Environment = strings.ToLower(v)
	}
	if v := os.Getenv(envPrefix + "BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "USER_AGENT"); v != "" {
		c.API.UserAgent = v
	}

	if v := os.Getenv(envPrefix + "RATE_LIMIT_DELAY"); v != "" {
		d, err := ParseDelay(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRATE_LIMIT_DELAY: %w", envPrefix, err))
		} else {
			c.RateLimit.Delay = d
		}
	}

	if v := os.Getenv(envPrefix + "OUTPUT_DIR"); v != "" {
		c.Output.BaseDirectory = v
	}
	if v := os.Getenv(envPrefix + "METRICS_FILE"); v != "" {
		c.Output.MetricsFile = v
	}

	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		"dawson-extractor.yaml",
		"dawson-extractor.yml",
		".dawson-extractor.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "dawson-extractor", "config.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Save writes the configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags applies explicitly-set command line flags
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if n, ok := flags["num-orders"].(int); ok && n >= 0 {
		c.Extraction.NumOrders = n
	}
	if types, ok := flags["types"].([]string); ok && len(types) > 0 {
		c.Extraction.DocumentTypes = types
	}
	if mode, ok := flags["match-mode"].(string); ok && mode != "" {
		c.Extraction.MatchMode = strings.ToLower(mode)
	}
	if min, ok := flags["min-per-type"].(int); ok && min >= 0 {
		c.Extraction.MinPerType = min
	}
	if keywords, ok := flags["keywords"].([]string); ok && len(keywords) > 0 {
		c.Extraction.SearchKeywords = keywords
	}
	if env, ok := flags["env"].(string); ok && env != "" {
		c.API.Environment = strings.ToLower(env)
	}
	if delay, ok := flags["rate-limit"].(time.Duration); ok && delay >= 0 {
		c.RateLimit.Delay = delay
	}
	if output, ok := flags["output"].(string); ok && output != "" {
		c.Output.BaseDirectory = output
	}
	if metrics, ok := flags["metrics-file"].(string); ok && metrics != "" {
		c.Output.MetricsFile = metrics
	}
	if level, ok := flags["log-level"].(string); ok && level != "" {
		c.Logging.Level = level
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".dawson-extractor.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ParseDelay accepts either a Go duration ("1.5s") or plain seconds ("1.5")
func ParseDelay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q", s)
	}
	return SecondsToDuration(secs), nil
}

// SecondsToDuration converts fractional seconds to a Duration
func SecondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

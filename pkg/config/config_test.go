package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.Extraction.NumOrders)
	assert.Equal(t, []string{"Order"}, cfg.Extraction.DocumentTypes)
	assert.Equal(t, "substring", cfg.Extraction.MatchMode)
	assert.Equal(t, 0, cfg.Extraction.MinPerType)
	assert.Equal(t, []string{"order"}, cfg.Extraction.SearchKeywords)

	assert.Equal(t, "green", cfg.API.Environment)
	assert.Equal(t, DefaultUserAgent, cfg.API.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 60*time.Second, cfg.API.DownloadTimeout)
	assert.Equal(t, 5000, cfg.API.SearchLimit)

	assert.Equal(t, time.Second, cfg.RateLimit.Delay)
	assert.Equal(t, "sleep", cfg.RateLimit.Strategy)
	assert.Equal(t, "downloads", cfg.Output.BaseDirectory)
	assert.Equal(t, "info", cfg.Logging.Level)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DAWSON_NUM_ORDERS", "25")
	t.Setenv("DAWSON_DOCUMENT_TYPES", "Order, Decision ,")
	t.Setenv("DAWSON_MATCH_MODE", "EXACT")
	t.Setenv("DAWSON_MIN_PER_TYPE", "3")
	t.Setenv("DAWSON_SEARCH_KEYWORDS", "order,decision")
	t.Setenv("DAWSON_API_ENVIRONMENT", "Blue")
	t.Setenv("DAWSON_RATE_LIMIT_DELAY", "1.5")
	t.Setenv("DAWSON_OUTPUT_DIR", "/tmp/court-docs")
	t.Setenv("DAWSON_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 25, cfg.Extraction.NumOrders)
	assert.Equal(t, []string{"Order", "Decision"}, cfg.Extraction.DocumentTypes)
	assert.Equal(t, "exact", cfg.Extraction.MatchMode)
	assert.Equal(t, 3, cfg.Extraction.MinPerType)
	assert.Equal(t, []string{"order", "decision"}, cfg.Extraction.SearchKeywords)
	assert.Equal(t, "blue", cfg.API.Environment)
	assert.Equal(t, 1500*time.Millisecond, cfg.RateLimit.Delay)
	assert.Equal(t, "/tmp/court-docs", cfg.Output.BaseDirectory)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvInvalidNumbers(t *testing.T) {
	t.Setenv("DAWSON_NUM_ORDERS", "many")
	t.Setenv("DAWSON_RATE_LIMIT_DELAY", "soon")

	cfg := DefaultConfig()
	err := cfg.LoadFromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DAWSON_NUM_ORDERS")
	assert.Contains(t, err.Error(), "DAWSON_RATE_LIMIT_DELAY")
	assert.Equal(t, 10, cfg.Extraction.NumOrders)
}

func TestLoadFromFile(t *testing.T) {
	t.Run("valid yaml file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "dawson.yaml")
		testConfig := `
extraction:
  num_orders: 40
  document_types: [Order, Decision]
  match_mode: exact
  min_per_type: 5
  search_keywords: [order, decision]

api:
  environment: blue
  timeout: 10s

rate_limit:
  delay: 2s
  strategy: interval

output:
  base_directory: /data/dawson
  metrics_file: /data/dawson/run.prom
`
		require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))

		cfg := DefaultConfig()
		require.NoError(t, cfg.LoadFromFile(configPath))

		assert.Equal(t, 40, cfg.Extraction.NumOrders)
		assert.Equal(t, []string{"Order", "Decision"}, cfg.Extraction.DocumentTypes)
		assert.Equal(t, "exact", cfg.Extraction.MatchMode)
		assert.Equal(t, 5, cfg.Extraction.MinPerType)
		assert.Equal(t, "blue", cfg.API.Environment)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout)
		// untouched keys keep their defaults
		assert.Equal(t, 60*time.Second, cfg.API.DownloadTimeout)
		assert.Equal(t, 2*time.Second, cfg.RateLimit.Delay)
		assert.Equal(t, "interval", cfg.RateLimit.Strategy)
		assert.Equal(t, "/data/dawson", cfg.Output.BaseDirectory)
		assert.Equal(t, "/data/dawson/run.prom", cfg.Output.MetricsFile)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("extraction: [unclosed"), 0644))

		err := DefaultConfig().LoadFromFile(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		err := DefaultConfig().LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		setupConfig   func(*Config)
		errorContains []string
	}{
		{
			name:        "defaults are valid",
			setupConfig: func(cfg *Config) {},
		},
		{
			name: "bad match mode",
			setupConfig: func(cfg *Config) {
				cfg.Extraction.MatchMode = "regex"
			},
			errorContains: []string{"extraction.match_mode"},
		},
		{
			name: "unknown environment",
			setupConfig: func(cfg *Config) {
				cfg.API.Environment = "purple"
			},
			errorContains: []string{"api.environment"},
		},
		{
			name: "empty type list and blank keyword",
			setupConfig: func(cfg *Config) {
				cfg.Extraction.DocumentTypes = nil
				cfg.Extraction.SearchKeywords = []string{""}
			},
			errorContains: []string{"extraction.document_types", "extraction.search_keywords[0]"},
		},
		{
			name: "negative counts",
			setupConfig: func(cfg *Config) {
				cfg.Extraction.NumOrders = -1
				cfg.Extraction.MinPerType = -2
			},
			errorContains: []string{"extraction.num_orders", "extraction.min_per_type"},
		},
		{
			name: "bad base url and strategy",
			setupConfig: func(cfg *Config) {
				cfg.API.BaseURL = "not a url"
				cfg.RateLimit.Strategy = "burst"
			},
			errorContains: []string{"api.base_url", "rate_limit.strategy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.setupConfig(cfg)

			err := cfg.Validate()
			if len(tt.errorContains) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.errorContains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"num-orders":   7,
		"types":        []string{"Decision"},
		"match-mode":   "Exact",
		"min-per-type": 2,
		"keywords":     []string{"decision"},
		"env":          "blue",
		"rate-limit":   250 * time.Millisecond,
		"output":       "./out",
		"metrics-file": "./out/run.prom",
		"log-level":    "warn",
	})

	assert.Equal(t, 7, cfg.Extraction.NumOrders)
	assert.Equal(t, []string{"Decision"}, cfg.Extraction.DocumentTypes)
	assert.Equal(t, "exact", cfg.Extraction.MatchMode)
	assert.Equal(t, 2, cfg.Extraction.MinPerType)
	assert.Equal(t, []string{"decision"}, cfg.Extraction.SearchKeywords)
	assert.Equal(t, "blue", cfg.API.Environment)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimit.Delay)
	assert.Equal(t, "./out", cfg.Output.BaseDirectory)
	assert.Equal(t, "./out/run.prom", cfg.Output.MetricsFile)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// nil and empty maps leave everything alone
	before := *DefaultConfig()
	untouched := DefaultConfig()
	untouched.MergeCommandLineFlags(nil)
	assert.Equal(t, before, *untouched)
}

func TestLoadPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dawson.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("extraction:\n  num_orders: 40\n  match_mode: exact\n"), 0644))
	t.Setenv("DAWSON_NUM_ORDERS", "50")

	cfg, err := Load(configPath, map[string]interface{}{"num-orders": 60})
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Extraction.NumOrders)
	assert.Equal(t, "exact", cfg.Extraction.MatchMode)

	cfg, err = Load(configPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Extraction.NumOrders)

	_, err = Load(configPath, map[string]interface{}{"match-mode": "fuzzy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Extraction.DocumentTypes = []string{"Order", "Decision"}
	cfg.RateLimit.Delay = 1500 * time.Millisecond

	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, cfg.Extraction.DocumentTypes, loaded.Extraction.DocumentTypes)
	assert.Equal(t, cfg.RateLimit.Delay, loaded.RateLimit.Delay)
}

func TestParseDelay(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "1.5s", want: 1500 * time.Millisecond},
		{in: "2", want: 2 * time.Second},
		{in: "0.25", want: 250 * time.Millisecond},
		{in: "0", want: 0},
		{in: "later", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDelay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExampleYAMLMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dawson-extractor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ExampleYAML()), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

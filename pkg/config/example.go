package config

// ExampleYAML returns a commented configuration file with every option at its
// default value
func ExampleYAML() string {
	return `# DAWSON Extractor Configuration File
#
# Environment variables prefixed with DAWSON_ override these values.
# For example: DAWSON_NUM_ORDERS, DAWSON_DOCUMENT_TYPES, DAWSON_OUTPUT_DIR

# What to collect
extraction:
  # Total documents wanted in the library (existing files count)
  num_orders: 10

  # Document types to collect
  document_types:
    - Order

  # exact: full case-insensitive match
  # substring: a wanted type anywhere inside the reported type
  match_mode: substring

  # Minimum downloads per document type in one run (0 disables)
  min_per_type: 0

  # Keywords used to find candidate dockets
  search_keywords:
    - order

# Case-management API
api:
  # blue or green
  environment: green

  # Overrides the environment URL (mirrors, testing)
  base_url: ""

  user_agent: "DAWSON-Extractor/1.0 (Educational/Research)"
  timeout: 30s
  download_timeout: 60s
  search_limit: 5000

# Request pacing
rate_limit:
  # Delay before every request
  delay: 1s

  # sleep: always wait the full delay
  # interval: keep requests at least delay apart
  strategy: sleep

# Output
output:
  base_directory: downloads

  # Write each run into its own timestamped folder
  run_folders: true

  catalog_file: document_types_catalog.json

  # Prometheus textfile written after each run (empty disables)
  metrics_file: ""

# Logging
logging:
  # debug, info, warn, error, disabled
  level: info

  # Optional log file, in addition to stderr
  file: ""
`
}

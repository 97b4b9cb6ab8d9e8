package model

import "time"

// Config is the complete tool configuration. It is constructed once at
// process start and passed explicitly into each component; nothing reads
// global mutable state.
type Config struct {
	Oracle      OracleConfig      `yaml:"oracle"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
}

// OracleConfig configures the external text-understanding service.
type OracleConfig struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string `yaml:"base_url"`

	// Timeout per oracle call
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries on transient failures (exponential backoff between attempts)
	MaxRetries int `yaml:"max_retries"`

	// RequestsPerSecond throttles calls to the provider
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst for the rate limiter
	Burst int `yaml:"burst"`
}

// ConcurrencyConfig bounds parallelism across the sentence x section call matrix.
type ConcurrencyConfig struct {
	// SectionWorkers analyzes this many sections in parallel
	SectionWorkers int `yaml:"section_workers"`

	// SentenceWorkers bounds concurrent oracle calls within one section
	SentenceWorkers int `yaml:"sentence_workers"`
}

// CacheConfig configures oracle response caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Oracle: OracleConfig{
			Provider:          "openai",
			Model:             "",
			Timeout:           30 * time.Second,
			MaxRetries:        3,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Concurrency: ConcurrencyConfig{
			SectionWorkers:  2,
			SentenceWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}

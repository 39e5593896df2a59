package config

import (
	"fmt"
	"time"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
)

// Config holds all configuration for the greencloud advisor
type Config struct {
	API           ElectricityMapsAPIConfig `yaml:"api"`
	Cache         APICacheConfig           `yaml:"cache"`
	Advisor       AdvisorConfig            `yaml:"advisor"`
	LLM           LLMConfig                `yaml:"llm"`
	Server        ServerConfig             `yaml:"server"`
	Observability ObservabilityConfig      `yaml:"observability"`
	Catalog       catalog.Config           `yaml:"catalog"`
}

// ElectricityMapsAPIConfig holds connection settings for the Electricity Maps API
type ElectricityMapsAPIConfig struct {
	APIKey string `yaml:"apiKey"`
	URL    string `yaml:"url"`
}

// APICacheConfig holds retry, rate limit, and cache behavior for API interactions
type APICacheConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"maxRetries"`
	RetryDelay  time.Duration `yaml:"retryDelay"`
	RateLimit   int           `yaml:"rateLimit"`
	CacheTTL    time.Duration `yaml:"cacheTTL"`
	MaxCacheAge time.Duration `yaml:"maxCacheAge"`
}

// AdvisorConfig holds configuration for the recommendation computation
type AdvisorConfig struct {
	// MaxDistanceKm is the default search radius when a request does not set one
	MaxDistanceKm float64 `yaml:"maxDistanceKm"`

	// StaticFallback serves static per-zone intensity values when the API is
	// unreachable instead of marking the region unavailable
	StaticFallback bool `yaml:"staticFallback"`
}

// LLMConfig holds configuration for the text-generation API
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"maxTokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	ListenAddr      string        `yaml:"listenAddr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// ObservabilityConfig holds configuration for monitoring and debugging
type ObservabilityConfig struct {
	MetricsEnabled bool   `yaml:"metricsEnabled"`
	LogLevel       string `yaml:"logLevel"`
}

// Validate performs validation of the configuration
func (c *Config) Validate() error {
	if c.API.APIKey == "" {
		return fmt.Errorf("Electricity Maps API key is required")
	}

	if c.Advisor.MaxDistanceKm <= 0 {
		return fmt.Errorf("max distance must be positive")
	}

	if c.Cache.RateLimit <= 0 {
		return fmt.Errorf("API rate limit must be positive")
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM max tokens must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		return fmt.Errorf("LLM temperature must be between 0 and 1")
	}

	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server listen address is required")
	}

	return nil
}

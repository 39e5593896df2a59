// Package config provides configuration types and environment-based loading
// for the greencloud advisor.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		API: ElectricityMapsAPIConfig{
			APIKey: os.Getenv("ELECTRICITY_MAP_API_KEY"),
			URL:    getEnvOrDefault("ELECTRICITY_MAP_API_URL", "https://api.electricitymaps.com/v3/carbon-intensity/latest?zone="),
		},
		Cache: APICacheConfig{
			Timeout:     getDurationOrDefault("API_TIMEOUT", 10*time.Second),
			MaxRetries:  getIntOrDefault("API_MAX_RETRIES", 3),
			RetryDelay:  getDurationOrDefault("API_RETRY_DELAY", 1*time.Second),
			RateLimit:   getIntOrDefault("API_RATE_LIMIT", 10),
			CacheTTL:    getDurationOrDefault("CACHE_TTL", 5*time.Minute),
			MaxCacheAge: getDurationOrDefault("MAX_CACHE_AGE", 1*time.Hour),
		},
		Advisor: AdvisorConfig{
			MaxDistanceKm:  getFloatOrDefault("MAX_DISTANCE_KM", 5000.0),
			StaticFallback: getBoolOrDefault("CARBON_STATIC_FALLBACK", false),
		},
		LLM: LLMConfig{
			APIKey:      os.Getenv("BEDROCK_API_KEY"),
			BaseURL:     getEnvOrDefault("BEDROCK_API_URL", "https://bedrock-runtime.us-east-1.amazonaws.com"),
			Model:       getEnvOrDefault("LLM_MODEL", "us.amazon.nova-pro-v1:0"),
			MaxTokens:   getIntOrDefault("LLM_MAX_TOKENS", 2000),
			Temperature: getFloatOrDefault("LLM_TEMPERATURE", 0.1),
			Timeout:     getDurationOrDefault("LLM_TIMEOUT", 30*time.Second),
		},
		Server: ServerConfig{
			ListenAddr:      getEnvOrDefault("LISTEN_ADDR", ":8080"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getBoolOrDefault("METRICS_ENABLED", true),
			LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	// Load region overrides if a path is provided
	if overridesPath := os.Getenv("REGION_OVERRIDES_PATH"); overridesPath != "" {
		if err := loadRegionOverrides(cfg, overridesPath); err != nil {
			return nil, fmt.Errorf("failed to load region overrides: %v", err)
		}
	}

	// Load regional service availability data if a path is provided
	if servicesPath := os.Getenv("REGIONAL_SERVICES_PATH"); servicesPath != "" {
		if err := loadRegionalServices(cfg, servicesPath); err != nil {
			return nil, fmt.Errorf("failed to load regional services: %v", err)
		}
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	klog.V(2).InfoS("Loaded configuration",
		"apiURL", cfg.API.URL,
		"maxDistanceKm", cfg.Advisor.MaxDistanceKm,
		"staticFallback", cfg.Advisor.StaticFallback,
		"llmModel", cfg.LLM.Model,
		"regionOverrides", len(cfg.Catalog.RegionOverrides),
		"regionalServiceRegions", len(cfg.Catalog.RegionalServices))

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if strValue := os.Getenv(key); strValue != "" {
		if value, err := strconv.Atoi(strValue); err == nil {
			return value
		}
		klog.V(2).InfoS("Invalid integer value, using default",
			"key", key,
			"value", strValue,
			"default", defaultValue)
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if strValue := os.Getenv(key); strValue != "" {
		if value, err := strconv.ParseFloat(strValue, 64); err == nil {
			return value
		}
		klog.V(2).InfoS("Invalid float value, using default",
			"key", key,
			"value", strValue,
			"default", defaultValue)
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if strValue := os.Getenv(key); strValue != "" {
		value, err := strconv.ParseBool(strValue)
		if err == nil {
			return value
		}
		klog.V(2).InfoS("Invalid boolean value, using default",
			"key", key,
			"value", strValue,
			"default", defaultValue)
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if strValue := os.Getenv(key); strValue != "" {
		if value, err := time.ParseDuration(strValue); err == nil {
			return value
		}
		klog.V(2).InfoS("Invalid duration value, using default",
			"key", key,
			"value", strValue,
			"default", defaultValue)
	}
	return defaultValue
}

func loadRegionOverrides(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read region overrides file: %v", err)
	}

	catalogCfg := catalog.Config{}
	if err := yaml.Unmarshal(data, &catalogCfg); err != nil {
		return fmt.Errorf("failed to parse region overrides: %v", err)
	}

	// Overrides without a region identifier are configuration mistakes
	for i, override := range catalogCfg.RegionOverrides {
		if override.Region == "" {
			return fmt.Errorf("region override at index %d is missing a region", i)
		}
	}

	cfg.Catalog = catalogCfg
	return nil
}

func loadRegionalServices(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read regional services file: %v", err)
	}
	defer file.Close()

	regional, err := catalog.ParseRegionalServices(file)
	if err != nil {
		return err
	}

	cfg.Catalog.RegionalServices = regional
	return nil
}

// Package config loads the application configuration from an optional
// yaml file plus environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config holds the central application configuration.
type Config struct {
	// CMS is the headless CMS the content layer fetches from.
	CMS struct {
		BaseURL        string `mapstructure:"base_url"`        // Content API base URL
		APIToken       string `mapstructure:"api_token"`       // Bearer token, optional
		MediaOrigin    string `mapstructure:"media_origin"`    // Static-asset host for relative media paths
		TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Per-request HTTP timeout
	} `mapstructure:"cms"`

	// Site is the public site the content is rendered on.
	Site struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"site"`

	// Cache TTLs per query volatility class.
	Cache struct {
		EntryTTLMinutes    int `mapstructure:"entry_ttl_minutes"`    // By-slug lookups
		ListTTLMinutes     int `mapstructure:"list_ttl_minutes"`     // Latest/featured lists
		TaxonomyTTLMinutes int `mapstructure:"taxonomy_ttl_minutes"` // Authors, categories
	} `mapstructure:"cache"`

	// Build settings for static path enumeration.
	Build struct {
		TimeoutMillis int    `mapstructure:"timeout_ms"`  // Per-enumeration budget
		CachePath     string `mapstructure:"cache_path"`  // Last-known-good sqlite store
		ManifestPath  string `mapstructure:"manifest_path"`
	} `mapstructure:"build"`
}

// LoadConfig loads the configuration from a file. A missing config
// file is fine, defaults and environment variables still apply.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	// Set default values
	viper.SetDefault("cms.base_url", "http://localhost:1337")
	viper.SetDefault("cms.api_token", "")
	viper.SetDefault("cms.media_origin", "")
	viper.SetDefault("cms.timeout_seconds", 10)

	viper.SetDefault("site.base_url", "http://localhost:3000")

	viper.SetDefault("cache.entry_ttl_minutes", 10)
	viper.SetDefault("cache.list_ttl_minutes", 2)
	viper.SetDefault("cache.taxonomy_ttl_minutes", 30)

	viper.SetDefault("build.timeout_ms", 8000)
	viper.SetDefault("build.cache_path", "content-forge.db")
	viper.SetDefault("build.manifest_path", "paths.yaml")

	// Environment overrides; the CMS base URL honors both names the
	// hosting setup has used.
	_ = viper.BindEnv("cms.base_url", "STRAPI_BASE_URL", "NEXT_PUBLIC_STRAPI_URL")
	_ = viper.BindEnv("cms.api_token", "STRAPI_API_TOKEN")
	_ = viper.BindEnv("cms.media_origin", "MEDIA_ORIGIN")
	_ = viper.BindEnv("site.base_url", "SITE_BASE_URL")

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		// If config file doesn't exist, that's okay - we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// EntryTTL returns the TTL for by-slug lookups.
func (c *Config) EntryTTL() time.Duration {
	return time.Duration(c.Cache.EntryTTLMinutes) * time.Minute
}

// ListTTL returns the TTL for latest/featured lists.
func (c *Config) ListTTL() time.Duration {
	return time.Duration(c.Cache.ListTTLMinutes) * time.Minute
}

// TaxonomyTTL returns the TTL for author and category lists.
func (c *Config) TaxonomyTTL() time.Duration {
	return time.Duration(c.Cache.TaxonomyTTLMinutes) * time.Minute
}

// CMSTimeout returns the per-request HTTP timeout.
func (c *Config) CMSTimeout() time.Duration {
	return time.Duration(c.CMS.TimeoutSeconds) * time.Second
}

// BuildTimeout returns the per-enumeration build budget.
func (c *Config) BuildTimeout() time.Duration {
	return time.Duration(c.Build.TimeoutMillis) * time.Millisecond
}

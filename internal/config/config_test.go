package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() with missing file error = %v", err)
	}

	if cfg.CMS.BaseURL != "http://localhost:1337" {
		t.Errorf("CMS.BaseURL = %q, want default", cfg.CMS.BaseURL)
	}
	if cfg.CMSTimeout() != 10*time.Second {
		t.Errorf("CMSTimeout() = %v, want 10s", cfg.CMSTimeout())
	}
	if cfg.EntryTTL() != 10*time.Minute {
		t.Errorf("EntryTTL() = %v, want 10m", cfg.EntryTTL())
	}
	if cfg.ListTTL() != 2*time.Minute {
		t.Errorf("ListTTL() = %v, want 2m", cfg.ListTTL())
	}
	if cfg.TaxonomyTTL() != 30*time.Minute {
		t.Errorf("TaxonomyTTL() = %v, want 30m", cfg.TaxonomyTTL())
	}
	if cfg.BuildTimeout() != 8*time.Second {
		t.Errorf("BuildTimeout() = %v, want 8s", cfg.BuildTimeout())
	}
	if cfg.Build.ManifestPath != "paths.yaml" {
		t.Errorf("Build.ManifestPath = %q, want paths.yaml", cfg.Build.ManifestPath)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
cms:
  base_url: https://cms.example.com
  timeout_seconds: 4
cache:
  list_ttl_minutes: 5
build:
  timeout_ms: 2000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.CMS.BaseURL != "https://cms.example.com" {
		t.Errorf("CMS.BaseURL = %q, want file value", cfg.CMS.BaseURL)
	}
	if cfg.CMSTimeout() != 4*time.Second {
		t.Errorf("CMSTimeout() = %v, want 4s", cfg.CMSTimeout())
	}
	if cfg.ListTTL() != 5*time.Minute {
		t.Errorf("ListTTL() = %v, want 5m", cfg.ListTTL())
	}
	if cfg.BuildTimeout() != 2*time.Second {
		t.Errorf("BuildTimeout() = %v, want 2s", cfg.BuildTimeout())
	}
	// Keys absent from the file keep their defaults.
	if cfg.EntryTTL() != 10*time.Minute {
		t.Errorf("EntryTTL() = %v, want default 10m", cfg.EntryTTL())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	resetViper(t)

	t.Setenv("STRAPI_BASE_URL", "https://env.example.com")
	t.Setenv("STRAPI_API_TOKEN", "secret-token")
	t.Setenv("MEDIA_ORIGIN", "https://cdn.example.com")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.CMS.BaseURL != "https://env.example.com" {
		t.Errorf("CMS.BaseURL = %q, want env value", cfg.CMS.BaseURL)
	}
	if cfg.CMS.APIToken != "secret-token" {
		t.Errorf("CMS.APIToken = %q, want env value", cfg.CMS.APIToken)
	}
	if cfg.CMS.MediaOrigin != "https://cdn.example.com" {
		t.Errorf("CMS.MediaOrigin = %q, want env value", cfg.CMS.MediaOrigin)
	}
}

func TestLoadConfigLegacyEnvName(t *testing.T) {
	resetViper(t)

	t.Setenv("NEXT_PUBLIC_STRAPI_URL", "https://legacy.example.com")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CMS.BaseURL != "https://legacy.example.com" {
		t.Errorf("CMS.BaseURL = %q, want legacy env value", cfg.CMS.BaseURL)
	}
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ERRDEX_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: ERRDEX_PORT -> port,
	// ERRDEX_CATALOG__ERRORS_URL -> catalog.errors_url, etc.
	if err := k.Load(env.Provider("ERRDEX_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "ERRDEX_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.DefaultTheme != "" && c.DefaultTheme != "light" && c.DefaultTheme != "dark" {
		return fmt.Errorf("invalid default_theme %q: must be light or dark", c.DefaultTheme)
	}

	for name, raw := range map[string]string{
		"catalog.categories_url":    c.Catalog.CategoriesURL,
		"catalog.subcategories_url": c.Catalog.SubcategoriesURL,
		"catalog.errors_url":        c.Catalog.ErrorsURL,
	} {
		if raw == "" {
			return fmt.Errorf("%s is required", name)
		}
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if c.AnalyticsEndpoint != "" {
		if _, err := url.ParseRequestURI(c.AnalyticsEndpoint); err != nil {
			return fmt.Errorf("invalid analytics_endpoint: %w", err)
		}
	}

	return nil
}

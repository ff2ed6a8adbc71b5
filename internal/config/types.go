package config

// DefaultFile is the conventional config file name.
const DefaultFile = ".errdex.yml"

// Config is the top-level errdex configuration, corresponding to .errdex.yml.
type Config struct {
	Port              int           `yaml:"port" koanf:"port"`
	DataDir           string        `yaml:"data_dir" koanf:"data_dir"`
	SiteName          string        `yaml:"site_name" koanf:"site_name"`
	DefaultTheme      string        `yaml:"default_theme" koanf:"default_theme"`
	Catalog           CatalogConfig `yaml:"catalog" koanf:"catalog"`
	AnalyticsEndpoint string        `yaml:"analytics_endpoint" koanf:"analytics_endpoint"`
}

// CatalogConfig points at the three JSON documents the catalog is built
// from. They are fetched with plain HTTP GET at startup.
type CatalogConfig struct {
	CategoriesURL    string `yaml:"categories_url" koanf:"categories_url"`
	SubcategoriesURL string `yaml:"subcategories_url" koanf:"subcategories_url"`
	ErrorsURL        string `yaml:"errors_url" koanf:"errors_url"`
}

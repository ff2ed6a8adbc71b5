package config

// DefaultConfig returns a Config with sensible defaults. The catalog URLs
// have no useful default and must come from the config file or environment.
func DefaultConfig() *Config {
	return &Config{
		Port:         8080,
		DataDir:      ".errdex",
		SiteName:     "errdex",
		DefaultTheme: "light",
	}
}

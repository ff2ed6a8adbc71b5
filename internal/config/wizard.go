package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .errdex.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to errdex! Let's configure your knowledge base.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Catalog base URL; the three documents conventionally live
	// side by side.
	basePrompt := promptui.Prompt{
		Label:   "Base URL of the catalog data (serves categories.json, subcategories.json, errors.json)",
		Default: "http://localhost:9000/data",
	}
	base, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog base url: %w", err)
	}
	base = strings.TrimRight(base, "/")
	cfg.Catalog = CatalogConfig{
		CategoriesURL:    base + "/categories.json",
		SubcategoriesURL: base + "/subcategories.json",
		ErrorsURL:        base + "/errors.json",
	}

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port to listen on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Default theme.
	themePrompt := promptui.Select{
		Label: "Default theme",
		Items: []string{"light", "dark"},
	}
	_, cfg.DefaultTheme, err = themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (preferences database)",
		Default: cfg.DataDir,
	}
	cfg.DataDir, err = dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 5. Optional analytics sink.
	analyticsPrompt := promptui.Prompt{
		Label:   "Analytics endpoint (empty to disable)",
		Default: "",
	}
	cfg.AnalyticsEndpoint, err = analyticsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("analytics endpoint: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(DefaultFile); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s\n", DefaultFile)
	return cfg, nil
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/errdex/errdex/internal/catalog"
	"github.com/errdex/errdex/internal/config"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the error catalog from the command line",
	Long:  `Searches error codes, titles, descriptions, and categories with case-insensitive substring matching.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	results := cat.Search(query)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Printf("No errors match %q.\n", query)
		return nil
	}

	for _, r := range results {
		fmt.Printf("%s — %s\n", r.Code, r.Title)
		fmt.Printf("  %s", r.Category)
		if r.Subcategory != "" {
			fmt.Printf(" / %s", r.Subcategory)
		}
		fmt.Printf("  (%d solutions)\n", len(r.Solutions))
	}
	return nil
}

// loadCatalog loads config and fetches the catalog for CLI commands.
func loadCatalog(ctx context.Context) (*catalog.Service, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	src := catalog.NewSource(cfg.Catalog.CategoriesURL, cfg.Catalog.SubcategoriesURL, cfg.Catalog.ErrorsURL)
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

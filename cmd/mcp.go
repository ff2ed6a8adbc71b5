package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/errdex/errdex/internal/catalog"
	"github.com/errdex/errdex/internal/config"
	mcpserver "github.com/errdex/errdex/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing error catalog search tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		src := catalog.NewSource(cfg.Catalog.CategoriesURL, cfg.Catalog.SubcategoriesURL, cfg.Catalog.ErrorsURL)
		cat, err := catalog.Load(context.Background(), src)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "errdex MCP server started on stdio (errors=%d)\n", cat.TotalErrors())

		srv := mcpserver.NewServer(cat)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Errors:     %d\n", cat.TotalErrors())
		fmt.Printf("Solutions:  %d\n", cat.TotalSolutions())
		fmt.Printf("Categories: %d\n", len(cat.Categories()))

		counts := cat.ErrorCountByCategory()
		for _, c := range cat.Categories() {
			fmt.Printf("  %-20s %d\n", c.Name, counts[c.ID])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/errdex/errdex/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize errdex configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure errdex and generates a .errdex.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viajo-ai/viajo/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize viajo configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure viajo and generates a .viajo.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

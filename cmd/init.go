package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nextgen-ti/kbportal/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize kbportal configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the portal and writes the YAML config file (kbportal.yml unless --config says otherwise).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

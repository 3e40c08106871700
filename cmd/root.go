package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextgen-ti/kbportal/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kbportal",
	Short: "IT support knowledge-base portal",
	Long: `kbportal serves the IT support portal: a browsable knowledge base of
troubleshooting articles, an incident report form and a rule-based virtual
assistant. The same catalog is available from the terminal and to AI agents
via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

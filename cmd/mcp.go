package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/chat"
	mcpserver "github.com/nextgen-ti/kbportal/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the knowledge base and the virtual assistant to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()

		mcpserver.Version = Version

		// stdout carries the protocol; everything else goes to stderr.
		fmt.Fprintf(os.Stderr, "kbportal MCP server started on stdio (articles=%d)\n", cat.Len())

		srv := mcpserver.NewServer(cat, chat.DefaultSelector())
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

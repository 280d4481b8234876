package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/keysent/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
	Long:  `Serve sentence ranking to AI assistants over the Model Context Protocol.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an MCP server backed by the configured ranking defaults.

Tools:
  rank_sentences   Rank inline articles or article files
  split_sentences  Split text with the configured segmenter

Resources:
  keysent://settings  The ranking defaults tool calls fall back to

The server speaks JSON-RPC over stdio unless --port is given, in which case
it serves streamable HTTP on that port (with a /healthz probe).

Examples:
  keysent mcp serve
  keysent mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "keysent": {
        "command": "/path/to/keysent",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Rank:      rankService,
		Corpus:    corpusService,
		Settings:  settingsService,
		Segmenter: segmenter,
	}, version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	addr := fmt.Sprintf(":%d", mcpPort)
	cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}

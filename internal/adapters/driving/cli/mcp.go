package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maktaba-labs/maktaba-cli/internal/adapters/driving/mcp"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
the catalog, page through results and browse the topical indexes.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  maktaba mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  maktaba mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "maktaba": {
        "command": "/path/to/maktaba",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Chat:     chatService,
		Index:    indexService,
		Language: defaultLanguage,
	})
	if err != nil {
		return err
	}

	defer followIndexes(cmd.Context())()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	logger.Debug("MCP server on stdio")
	return server.Run(cmd.Context())
}

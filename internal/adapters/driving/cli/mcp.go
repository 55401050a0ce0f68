package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semdex/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the corpus and start the MCP server",
	Long: `Build the corpus, then serve it over the Model Context Protocol.

The server exposes a "query" tool and the built documents as
semdex://documents and semdex://documents/{id} resources.

By default the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  semdex mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  semdex mcp serve --port 8080`,
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

	corpus, err := loadTopics()
	if err != nil {
		return err
	}

	// stdout carries the protocol in stdio mode, so progress goes to stderr.
	printer := newProgressPrinter(cmd.ErrOrStderr(), corpus, false)
	s, err := openSession(cmd.Context(), corpus, printer.Observe)
	if err != nil {
		return err
	}
	defer s.close()

	server, err := mcp.NewServer(&mcp.Ports{
		Query:    s.corpus,
		Corpus:   s.corpus,
		DefaultK: s.settings.Query.K,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

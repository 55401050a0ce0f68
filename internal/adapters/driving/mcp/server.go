package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/semdex/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownGrace bounds how long in-flight HTTP requests may run after the
// serve context is cancelled.
const shutdownGrace = 5 * time.Second

// Server exposes a built corpus over MCP: a query tool, plus document
// resources when a corpus port is configured.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a server for ports and registers its tools and resources.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingQueryEngine)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "semdex",
		Version: Version,
	}
	opts := &mcp.ServerOptions{
		Instructions: instructions(ports),
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, opts),
	}

	s.registerTools()
	if ports.Corpus != nil {
		s.registerResources()
	}

	return s, nil
}

// instructions tells clients what the server offers.
func instructions(ports *Ports) string {
	var b strings.Builder
	b.WriteString("semdex answers nearest-neighbour queries over an in-memory Wikipedia corpus. ")
	b.WriteString("Call the query tool with a natural language question; smaller distances are closer matches.")
	if ports.Corpus != nil {
		b.WriteString(" Full article text is available from the ")
		b.WriteString(documentURIPrefix)
		b.WriteString("{id} resources, using the document_id of a result.")
	}
	return b.String()
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP listens on addr and serves MCP over HTTP until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves MCP over HTTP on ln until ctx is cancelled. ln is closed
// on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("MCP server listening on http://%s", ln.Addr())
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

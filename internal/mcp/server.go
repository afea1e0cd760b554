// Package mcp exposes monitor queries and window placement as MCP tools.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/platform"
)

const (
	ServerName    = "screenplace"
	ServerVersion = "0.1.0"
)

// Server is the MCP server over an open placement session.
type Server struct {
	mcpServer *mcpsdk.Server
	session   *platform.Session
	logger    *slog.Logger
}

// NewServer registers the tools against session. The session stays owned by
// the caller.
func NewServer(session *platform.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		session: session,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting", "backend", s.session.Backend.Name())
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the physical monitors with their pixel bounds, working area (minus docks and panels), scale factor and logical bounds.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "monitor_at",
		Description: "Return the monitor containing a point. Points outside every monitor resolve to the nearest one. Pass logical=true for DPI-independent coordinates.",
	}, s.handleMonitorAt)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "compute_placement",
		Description: "Compute where a window would go for a preset or anchor, without moving anything. Returns logical and pixel rectangles and the target monitor.",
	}, s.handleComputePlacement)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "place_window",
		Description: "Move and resize a window (default: the active window) to a preset or anchor. Maximized or fullscreen windows are restored first.",
	}, s.handlePlaceWindow)
}

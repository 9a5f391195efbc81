// Package mcp exposes the window manager's control surface as MCP tools,
// letting an agent inspect and drive the running instance over the same
// IPC protocol the CLI uses.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tagwm/internal/ipc"
)

const (
	ServerName    = "tagwm"
	ServerVersion = "0.1.0"
)

// Server is the MCP server bridging tool calls to the window manager.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server talking to the running window manager.
func NewServer(client *ipc.Client) *Server {
	s := &Server{
		client: client,
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
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "wm_status",
		Description: "Get the current view of the window manager: visible tags, active layout, keyboard mode, client count, and the focused window.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all managed windows with their titles, classes, tags, and urgency/focus state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "view_tags",
		Description: "Switch the display to the view showing the given tags. Windows carrying any of the tags become visible.",
	}, s.handleViewTags)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_layout",
		Description: "Change the current view's layout. Available layouts: hstack, vstack, monocle.",
	}, s.handleSetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_action",
		Description: "Run a named window manager action, exactly as if its key binding were pressed. Examples: focus_next, swap_master, view:web, set_layout:monocle, master_factor:+5, kill.",
	}, s.handleRunAction)
}

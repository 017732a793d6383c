// Package mcp exposes the PR tracker over the Model Context Protocol so
// assistants can read and log records through the same REST backend the
// TUI talks to.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(src Source, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("prtrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Gym PR tracker. Query and log personal records, check milestone progress, and generate workout routines. All data is scoped to the logged-in user."),
	)

	h := &handlers{src: src, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListRecords, Handler: h.listRecords},
		server.ServerTool{Tool: toolGetRecord, Handler: h.getRecord},
		server.ServerTool{Tool: toolLogRecord, Handler: h.logRecord},
		server.ServerTool{Tool: toolGetMilestones, Handler: h.getMilestones},
		server.ServerTool{Tool: toolGenerateRoutine, Handler: h.generateRoutine},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentRecords, Handler: h.recentRecords},
		server.ServerResource{Resource: resMilestoneBoard, Handler: h.milestoneBoard},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src Source
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentRecords = mcp.NewResource(
	"prtrack://recent_records",
	"Recent Records",
	mcp.WithResourceDescription("The five most recent personal records plus the collection total"),
	mcp.WithMIMEType("application/json"),
)

var resMilestoneBoard = mcp.NewResource(
	"prtrack://milestones",
	"Milestone Board",
	mcp.WithResourceDescription("All achievement milestones with unlock state and progress"),
	mcp.WithMIMEType("application/json"),
)

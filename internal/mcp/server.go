// Package mcp exposes thread operations as MCP tools over stdio, so agent
// runtimes can work a workspace's threads without shelling out to the CLI.
package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/strandhq/strand/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"thread_new": {
		def:     newToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNew },
	},
	"thread_read": {
		def:     readToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRead },
	},
	"thread_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"thread_note_add": {
		def:     noteAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNoteAdd },
	},
	"thread_todo_add": {
		def:     todoAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTodoAdd },
	},
	"thread_todo_check": {
		def:     todoCheckToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTodoCheck },
	},
	"thread_log_add": {
		def:     logAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogAdd },
	},
	"thread_status": {
		def:     statusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStatus },
	},
	"thread_migrate": {
		def:     migrateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMigrate },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with strand tools registered. Tools
// listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, root, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"strand",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg, root)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, root, version string) error {
	s := NewServer(db, cfg, root, version)
	return server.ServeStdio(s)
}

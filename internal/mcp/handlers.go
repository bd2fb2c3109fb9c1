package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/strandhq/strand/internal/config"
	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db   *sql.DB
	cfg  *config.Config
	root string
}

// NewHandlers creates a new Handlers instance. root is the workspace root the
// server was started in; all thread references resolve against it.
func NewHandlers(db *sql.DB, cfg *config.Config, root string) *Handlers {
	return &Handlers{db: db, cfg: cfg, root: root}
}

// Request types for each tool

// NewRequest represents the arguments for thread_new.
type NewRequest struct {
	Title  string `json:"title"`
	Desc   string `json:"desc,omitempty"`
	Status string `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
}

// ReadRequest represents the arguments for thread_read.
type ReadRequest struct {
	Ref string `json:"ref"`
}

// ListRequest represents the arguments for thread_list.
type ListRequest struct {
	Status string `json:"status,omitempty"`
	All    bool   `json:"all,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// NoteAddRequest represents the arguments for thread_note_add.
type NoteAddRequest struct {
	Ref  string `json:"ref"`
	Text string `json:"text"`
}

// TodoAddRequest represents the arguments for thread_todo_add.
type TodoAddRequest struct {
	Ref  string `json:"ref"`
	Text string `json:"text"`
}

// TodoCheckRequest represents the arguments for thread_todo_check.
type TodoCheckRequest struct {
	Ref  string `json:"ref"`
	Hash string `json:"hash"`
	Done *bool  `json:"done,omitempty"`
}

// LogAddRequest represents the arguments for thread_log_add.
type LogAddRequest struct {
	Ref  string `json:"ref"`
	Text string `json:"text"`
}

// StatusRequest represents the arguments for thread_status.
type StatusRequest struct {
	Ref    string `json:"ref"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// MigrateRequest represents the arguments for thread_migrate.
type MigrateRequest struct {
	Ref    string `json:"ref,omitempty"`
	All    bool   `json:"all,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

// Handler implementations

// HandleNew handles the thread_new tool call.
func (h *Handlers) HandleNew(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.New(h.root, h.cfg, ops.NewInput{
		Title:  input.Title,
		Desc:   input.Desc,
		Status: input.Status,
		Body:   input.Body,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRead handles the thread_read tool call.
func (h *Handlers) HandleRead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReadRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Read(h.root, ops.ReadInput{Ref: input.Ref})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the thread_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, h.root, ops.ListInput{
		Status: input.Status,
		All:    input.All,
		Limit:  input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleNoteAdd handles the thread_note_add tool call.
func (h *Handlers) HandleNoteAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NoteAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.NoteAdd(h.root, ops.NoteAddInput{Ref: input.Ref, Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTodoAdd handles the thread_todo_add tool call.
func (h *Handlers) HandleTodoAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TodoAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.TodoAdd(h.root, ops.TodoAddInput{Ref: input.Ref, Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleTodoCheck handles the thread_todo_check tool call.
func (h *Handlers) HandleTodoCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TodoCheckRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	done := true
	if input.Done != nil {
		done = *input.Done
	}

	result, err := ops.TodoCheck(h.root, ops.TodoCheckInput{
		Ref:  input.Ref,
		Hash: input.Hash,
		Done: done,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleLogAdd handles the thread_log_add tool call.
func (h *Handlers) HandleLogAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogAdd(h.root, ops.LogAddInput{Ref: input.Ref, Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStatus handles the thread_status tool call.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StatusRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.StatusSet(h.root, ops.StatusSetInput{
		Ref:    input.Ref,
		Status: input.Status,
		Reason: input.Reason,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleMigrate handles the thread_migrate tool call.
func (h *Handlers) HandleMigrate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MigrateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Migrate(h.root, ops.MigrateInput{
		Ref:    input.Ref,
		All:    input.All,
		DryRun: input.DryRun,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult builds a structured MCP error payload from a strand error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths from IO failures
		if sErr.Code != errors.ErrInternal && sErr.Code != errors.ErrIO && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": err.Error(),
			},
		}
	}

	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}

// successResult serializes an ops output struct as the tool result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

package mcp

import "github.com/mark3labs/mcp-go/mcp"

var newToolDef = mcp.NewTool(
	"thread_new",
	mcp.WithDescription("Create a new thread in the workspace."),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Thread title; also used to derive the filename slug."),
	),
	mcp.WithString("desc",
		mcp.Description("One-line description."),
	),
	mcp.WithString("status",
		mcp.Description("Initial status."),
		mcp.Enum("idea", "planning", "active", "blocked", "paused", "resolved", "superseded", "deferred", "rejected"),
	),
	mcp.WithString("body",
		mcp.Description("Initial Body section content, markdown."),
	),
)

var readToolDef = mcp.NewTool(
	"thread_read",
	mcp.WithDescription("Read a thread's full content by ID, name, or name substring."),
	mcp.WithString("ref",
		mcp.Required(),
		mcp.Description("Thread reference: 6-char hex ID, exact name, or substring."),
	),
)

var listToolDef = mcp.NewTool(
	"thread_list",
	mcp.WithDescription("List threads in the workspace, name-sorted."),
	mcp.WithString("status",
		mcp.Description("Filter by base status (e.g. active, blocked)."),
	),
	mcp.WithBoolean("all",
		mcp.Description("Include closed threads."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of threads to return; 0 means all."),
	),
)

var noteAddToolDef = mcp.NewTool(
	"thread_note_add",
	mcp.WithDescription("Add a note to a thread. Returns the note's 4-char hash."),
	mcp.WithString("ref",
		mcp.Required(),
		mcp.Description("Thread reference."),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Note text."),
	),
)

var todoAddToolDef = mcp.NewTool(
	"thread_todo_add",
	mcp.WithDescription("Add an unchecked todo to a thread. Returns the todo's 4-char hash."),
	mcp.WithString("ref",
		mcp.Required(),
		mcp.Description("Thread reference."),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Todo text."),
	),
)

var todoCheckToolDef = mcp.NewTool(
	"thread_todo_check",
	mcp.WithDescription("Check or uncheck a todo by hash. The hash must match exactly one todo."),
	mcp.WithString("ref",
		mcp.Required(),
		mcp.Description("Thread reference."),
	),
	mcp.WithString("hash",
		mcp.Required(),
		mcp.Description("Todo hash or unique prefix."),
	),
	mcp.WithBoolean("done",
		mcp.Description("Checked state; defaults to true."),
	),
)

var logAddToolDef = mcp.NewTool(
	"thread_log_add",
	mcp.WithDescription("Add a timestamped log entry to a thread."),
	mcp.WithString("ref",
		mcp.Required(),
		mcp.Description("Thread reference."),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Log entry text."),
	),
)

var statusToolDef = mcp.NewTool(
	"thread_status",
	mcp.WithDescription("Change a thread's status, with an optional reason."),
	mcp.WithString("ref",
		mcp.Required(),
		mcp.Description("Thread reference."),
	),
	mcp.WithString("status",
		mcp.Required(),
		mcp.Description("New status."),
		mcp.Enum("idea", "planning", "active", "blocked", "paused", "resolved", "superseded", "deferred", "rejected"),
	),
	mcp.WithString("reason",
		mcp.Description("Optional reason, stored as a suffix like \"blocked (waiting on review)\"."),
	),
)

var migrateToolDef = mcp.NewTool(
	"thread_migrate",
	mcp.WithDescription("Migrate threads from the legacy section-line format to structured frontmatter."),
	mcp.WithString("ref",
		mcp.Description("Thread reference; omit with all=true to migrate every thread."),
	),
	mcp.WithBoolean("all",
		mcp.Description("Migrate every thread in the workspace."),
	),
	mcp.WithBoolean("dry_run",
		mcp.Description("Report what would change without writing."),
	),
)

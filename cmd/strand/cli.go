package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/strandhq/strand/internal/config"
	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/mcp"
	"github.com/strandhq/strand/internal/ops"
	"github.com/strandhq/strand/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, root string) *cli.App {
	app := &cli.App{
		Name:    "strand",
		Usage:   "Markdown work-item threads with structured frontmatter",
		Version: Version,
		Commands: []*cli.Command{
			newCmd(cfg, root),
			readCmd(root),
			listCmd(db, root),
			noteCmd(root),
			todoCmd(root),
			logCmd(root),
			deadlineCmd(root),
			eventCmd(root),
			bodyCmd(root),
			statusCmd(root),
			resolveCmd(root),
			reopenCmd(root),
			updateCmd(root),
			migrateCmd(root),
			fixCmd(root),
			exportCmd(root),
			serveCmd(db, cfg, root),
			mcpCmd(db, cfg, root),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// newCmd creates the new command.
func newCmd(cfg *config.Config, root string) *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new thread",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "desc", Aliases: []string{"d"}, Usage: "One-line description"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Initial status (default from config)"},
			&cli.StringFlag{Name: "dir", Usage: "Directory whose .threads dir receives the file"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("usage: strand new <title>"))
			}

			input := ops.NewInput{
				Title:  strings.Join(c.Args().Slice(), " "),
				Desc:   c.String("desc"),
				Status: c.String("status"),
				Dir:    c.String("dir"),
			}

			// Piped input becomes the initial Body section
			if stdinHasData() {
				body, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Body = body
			}

			output, err := ops.New(root, cfg, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// readCmd creates the read command.
func readCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Print a thread's full content",
		ArgsUsage: "<ref>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Emit JSON instead of raw markdown"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("usage: strand read <ref>"))
			}

			output, err := ops.Read(root, ops.ReadInput{Ref: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(output.Content)
			return nil
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB, root string) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List threads in the workspace",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter by base status"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Include closed threads"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum threads to return (0 = all)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(db, root, ops.ListInput{
				Status: c.String("status"),
				All:    c.Bool("all"),
				Limit:  c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// noteCmd creates the note command group.
func noteCmd(root string) *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Manage a thread's notes",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a note",
				ArgsUsage: "<ref> <text>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: strand note add <ref> <text>"))
					}
					output, err := ops.NoteAdd(root, ops.NoteAddInput{
						Ref:  c.Args().Get(0),
						Text: strings.Join(c.Args().Slice()[1:], " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "edit",
				Usage:     "Replace a note's text by hash",
				ArgsUsage: "<ref> <hash> <text>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 3 {
						return outputError(errors.NewInvalidRequest("usage: strand note edit <ref> <hash> <text>"))
					}
					output, err := ops.NoteEdit(root, ops.NoteEditInput{
						Ref:  c.Args().Get(0),
						Hash: c.Args().Get(1),
						Text: strings.Join(c.Args().Slice()[2:], " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rm",
				Usage:     "Remove a note by hash",
				ArgsUsage: "<ref> <hash>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: strand note rm <ref> <hash>"))
					}
					output, err := ops.NoteRemove(root, ops.NoteRemoveInput{
						Ref:  c.Args().Get(0),
						Hash: c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// todoCmd creates the todo command group.
func todoCmd(root string) *cli.Command {
	checkAction := func(done bool, usage string) cli.ActionFunc {
		return func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest(usage))
			}
			output, err := ops.TodoCheck(root, ops.TodoCheckInput{
				Ref:  c.Args().Get(0),
				Hash: c.Args().Get(1),
				Done: done,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		}
	}

	return &cli.Command{
		Name:  "todo",
		Usage: "Manage a thread's todos",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add an unchecked todo",
				ArgsUsage: "<ref> <text>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: strand todo add <ref> <text>"))
					}
					output, err := ops.TodoAdd(root, ops.TodoAddInput{
						Ref:  c.Args().Get(0),
						Text: strings.Join(c.Args().Slice()[1:], " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "check",
				Usage:     "Check a todo by hash",
				ArgsUsage: "<ref> <hash>",
				Action:    checkAction(true, "usage: strand todo check <ref> <hash>"),
			},
			{
				Name:      "uncheck",
				Usage:     "Uncheck a todo by hash",
				ArgsUsage: "<ref> <hash>",
				Action:    checkAction(false, "usage: strand todo uncheck <ref> <hash>"),
			},
			{
				Name:      "edit",
				Usage:     "Replace a todo's text by hash",
				ArgsUsage: "<ref> <hash> <text>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 3 {
						return outputError(errors.NewInvalidRequest("usage: strand todo edit <ref> <hash> <text>"))
					}
					output, err := ops.TodoEdit(root, ops.TodoEditInput{
						Ref:  c.Args().Get(0),
						Hash: c.Args().Get(1),
						Text: strings.Join(c.Args().Slice()[2:], " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rm",
				Usage:     "Remove a todo by hash",
				ArgsUsage: "<ref> <hash>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: strand todo rm <ref> <hash>"))
					}
					output, err := ops.TodoRemove(root, ops.TodoRemoveInput{
						Ref:  c.Args().Get(0),
						Hash: c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// logCmd creates the log command group.
func logCmd(root string) *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Manage a thread's log",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a timestamped log entry",
				ArgsUsage: "<ref> <text>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: strand log add <ref> <text>"))
					}
					output, err := ops.LogAdd(root, ops.LogAddInput{
						Ref:  c.Args().Get(0),
						Text: strings.Join(c.Args().Slice()[1:], " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "list",
				Usage:     "Show a thread's log, most recent first",
				ArgsUsage: "<ref>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum entries (0 = all)"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("usage: strand log list <ref>"))
					}
					output, err := ops.LogList(root, ops.LogListInput{
						Ref:   c.Args().First(),
						Limit: c.Int("limit"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// deadlineCmd creates the deadline command group.
func deadlineCmd(root string) *cli.Command {
	return &cli.Command{
		Name:  "deadline",
		Usage: "Manage thread deadlines",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a dated deadline",
				ArgsUsage: "<ref> <date> <text>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 3 {
						return outputError(errors.NewInvalidRequest("usage: strand deadline add <ref> <YYYY-MM-DD> <text>"))
					}
					output, err := ops.DeadlineAdd(root, ops.DeadlineAddInput{
						Ref:  c.Args().Get(0),
						Date: c.Args().Get(1),
						Text: strings.Join(c.Args().Slice()[2:], " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rm",
				Usage:     "Remove a deadline by hash",
				ArgsUsage: "<ref> <hash>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: strand deadline rm <ref> <hash>"))
					}
					output, err := ops.DeadlineRemove(root, ops.DeadlineRemoveInput{
						Ref:  c.Args().Get(0),
						Hash: c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "agenda",
				Usage: "Show deadlines across all threads, earliest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Include closed threads"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.DeadlineAgenda(root, ops.DeadlineAgendaInput{
						IncludeClosed: c.Bool("all"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// eventCmd creates the event command group.
func eventCmd(root string) *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Manage thread calendar events",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a calendar event",
				ArgsUsage: "<ref> <date> <text>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "time", Aliases: []string{"t"}, Usage: "Time of day, HH:MM"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 3 {
						return outputError(errors.NewInvalidRequest("usage: strand event add <ref> <YYYY-MM-DD> <text>"))
					}
					output, err := ops.EventAdd(root, ops.EventAddInput{
						Ref:  c.Args().Get(0),
						Date: c.Args().Get(1),
						Time: c.String("time"),
						Text: strings.Join(c.Args().Slice()[2:], " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rm",
				Usage:     "Remove an event by hash",
				ArgsUsage: "<ref> <hash>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return outputError(errors.NewInvalidRequest("usage: strand event rm <ref> <hash>"))
					}
					output, err := ops.EventRemove(root, ops.EventRemoveInput{
						Ref:  c.Args().Get(0),
						Hash: c.Args().Get(1),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "agenda",
				Usage: "Show events across all threads, chronological",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Include closed threads"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.EventAgenda(root, ops.EventAgendaInput{
						IncludeClosed: c.Bool("all"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// bodyCmd creates the body command group.
func bodyCmd(root string) *cli.Command {
	bodyAction := func(appendMode bool, usage string) cli.ActionFunc {
		return func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest(usage))
			}

			var content string
			if c.NArg() > 1 {
				content = strings.Join(c.Args().Slice()[1:], " ")
			} else if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				content = text
			} else {
				return outputError(errors.NewInvalidRequest("body content must be given as arguments or piped via stdin"))
			}

			output, err := ops.BodySet(root, ops.BodySetInput{
				Ref:     c.Args().First(),
				Content: content,
				Append:  appendMode,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		}
	}

	return &cli.Command{
		Name:  "body",
		Usage: "Replace or extend a thread's Body section",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Replace the Body section",
				ArgsUsage: "<ref> [text]",
				Action:    bodyAction(false, "usage: strand body set <ref> [text]"),
			},
			{
				Name:      "append",
				Usage:     "Append to the Body section",
				ArgsUsage: "<ref> [text]",
				Action:    bodyAction(true, "usage: strand body append <ref> [text]"),
			},
		},
	}
}

// statusCmd creates the status command.
func statusCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Change a thread's status",
		ArgsUsage: "<ref> <status>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reason", Aliases: []string{"r"}, Usage: "Reason, stored as a suffix"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("usage: strand status <ref> <status>"))
			}
			output, err := ops.StatusSet(root, ops.StatusSetInput{
				Ref:    c.Args().Get(0),
				Status: c.Args().Get(1),
				Reason: c.String("reason"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// resolveCmd creates the resolve command.
func resolveCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Close a thread as resolved",
		ArgsUsage: "<ref>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reason", Aliases: []string{"r"}, Usage: "Reason, stored as a suffix"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("usage: strand resolve <ref>"))
			}
			output, err := ops.Resolve(root, c.Args().First(), c.String("reason"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reopenCmd creates the reopen command.
func reopenCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "reopen",
		Usage:     "Return a closed thread to active",
		ArgsUsage: "<ref>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("usage: strand reopen <ref>"))
			}
			output, err := ops.Reopen(root, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Set a frontmatter field (name, desc, status)",
		ArgsUsage: "<ref> <field> <value>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return outputError(errors.NewInvalidRequest("usage: strand update <ref> <field> <value>"))
			}
			output, err := ops.Update(root, ops.UpdateInput{
				Ref:   c.Args().Get(0),
				Field: c.Args().Get(1),
				Value: strings.Join(c.Args().Slice()[2:], " "),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// migrateCmd creates the migrate command.
func migrateCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Convert threads from legacy section lines to structured frontmatter",
		ArgsUsage: "[ref]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Migrate every thread in the workspace"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Report what would change without writing"},
		},
		Action: func(c *cli.Context) error {
			input := ops.MigrateInput{
				All:    c.Bool("all"),
				DryRun: c.Bool("dry-run"),
			}
			if !input.All {
				if c.NArg() < 1 {
					return outputError(errors.NewInvalidRequest("usage: strand migrate <ref> (or --all)"))
				}
				input.Ref = c.Args().First()
			}

			output, err := ops.Migrate(root, input)
			if err != nil {
				return outputError(err)
			}
			if err := outputJSON(output); err != nil {
				return err
			}
			if len(output.Errors) > 0 {
				return cli.Exit(fmt.Sprintf("%d file(s) failed to migrate", len(output.Errors)), 1)
			}
			return nil
		},
	}
}

// fixCmd creates the fix command.
func fixCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "fix",
		Usage:     "Repair known corruption artifacts in thread items",
		ArgsUsage: "[ref]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Fix every thread in the workspace"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Report what would change without writing"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FixInput{
				All:    c.Bool("all"),
				DryRun: c.Bool("dry-run"),
			}
			if !input.All {
				if c.NArg() < 1 {
					return outputError(errors.NewInvalidRequest("usage: strand fix <ref> (or --all)"))
				}
				input.Ref = c.Args().First()
			}

			output, err := ops.Fix(root, input)
			if err != nil {
				return outputError(err)
			}
			if err := outputJSON(output); err != nil {
				return err
			}
			if len(output.Errors) > 0 {
				return cli.Exit(fmt.Sprintf("%d file(s) failed to fix", len(output.Errors)), 1)
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(root string) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Render a thread as standalone HTML",
		ArgsUsage: "<ref>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Output file (default: print to stdout)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("usage: strand export <ref>"))
			}
			output, err := ops.Export(root, ops.ExportInput{
				Ref:  c.Args().First(),
				Path: c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}
			if output.Path != "" {
				return outputJSON(output)
			}
			fmt.Print(output.HTML)
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config, root string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a read-only web view of the workspace's threads",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 7483, Usage: "Port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, root, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(db *sql.DB, cfg *config.Config, root string) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio",
		Action: func(c *cli.Context) error {
			if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
				fmt.Fprintf(os.Stderr, "warning: unknown disabled tools: %s\n", strings.Join(unknown, ", "))
			}
			return mcp.Run(db, cfg, root, Version)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

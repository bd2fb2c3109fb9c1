package ops

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// markdown is the shared renderer for HTML export. GFM gives task-list
// rendering for todo checkboxes.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Ref  string
	Path string // optional output file; empty returns HTML only
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path string `json:"path,omitempty"`
	HTML string `json:"html"`
}

// Export renders a thread as a standalone HTML page. Items are rendered from
// the collections, so legacy and modern threads produce the same document.
func Export(root string, input ExportInput) (*ExportOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(ExportMarkdown(t)), &buf); err != nil {
		return nil, errors.NewInternal(err)
	}

	name := t.Name()
	if name == "" {
		name = thread.ExtractNameFromPath(t.Path)
	}
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(name), buf.String())

	out := &ExportOutput{HTML: page}
	if input.Path != "" {
		if err := os.WriteFile(input.Path, []byte(page), 0644); err != nil {
			return nil, errors.NewIO(err)
		}
		out.Path = input.Path
	}
	return out, nil
}

// ExportMarkdown flattens a thread into one markdown document, rendering
// items from the collections so legacy and modern threads come out the same.
func ExportMarkdown(t *thread.Thread) string {
	var sb strings.Builder

	name := t.Name()
	if name == "" {
		name = thread.ExtractNameFromPath(t.Path)
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	if t.Status() != "" {
		fmt.Fprintf(&sb, "**Status:** %s\n\n", t.Status())
	}
	if t.Frontmatter.Desc != "" {
		sb.WriteString(t.Frontmatter.Desc + "\n\n")
	}

	if body := thread.ExtractSection(t.Body(), thread.SectionBody); body != "" {
		sb.WriteString(body + "\n\n")
	}

	if notes := t.Notes(); len(notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(&sb, "- %s\n", n.Text)
		}
		sb.WriteString("\n")
	}

	if todos := t.TodoItems(); len(todos) > 0 {
		sb.WriteString("## Todo\n\n")
		for _, td := range todos {
			mark := " "
			if td.Done {
				mark = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s\n", mark, td.Text)
		}
		sb.WriteString("\n")
	}

	if deadlines := t.Deadlines(); len(deadlines) > 0 {
		sb.WriteString("## Deadlines\n\n")
		for _, d := range deadlines {
			fmt.Fprintf(&sb, "- %s: %s\n", d.Date, d.Text)
		}
		sb.WriteString("\n")
	}

	if events := t.Events(); len(events) > 0 {
		sb.WriteString("## Events\n\n")
		for _, e := range events {
			when := e.Date
			if e.Time != "" {
				when += " " + e.Time
			}
			fmt.Fprintf(&sb, "- %s: %s\n", when, e.Text)
		}
		sb.WriteString("\n")
	}

	if entries := t.LogEntries(); len(entries) > 0 {
		sb.WriteString("## Log\n\n")
		for _, e := range entries {
			fmt.Fprintf(&sb, "- [%s] %s\n", e.TS, e.Text)
		}
	}

	return sb.String()
}

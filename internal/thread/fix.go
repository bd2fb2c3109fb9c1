package thread

import "strings"

// FixReport summarizes one Fix run. A clean thread reports Changed=false.
type FixReport struct {
	TodoPrefixes int  `json:"todo_prefixes"`
	Unescaped    int  `json:"unescaped"`
	Changed      bool `json:"changed"`
}

// Fix repairs two corruption artifacts left behind by early migrations:
// todo text fields that still carry a literal "[ ] "/"[x] " prefix (the
// prefix is stripped and the done flag set from it), and text fields
// containing the escaped-exclamation artifact `\!`. Running Fix on a clean
// thread changes nothing, so it is safe to re-run arbitrarily.
func (t *Thread) Fix(dryRun bool) (FixReport, error) {
	var report FixReport

	notes := append([]NoteItem(nil), t.Frontmatter.Notes...)
	for i := range notes {
		if text, ok := unescapeBang(notes[i].Text); ok {
			notes[i].Text = text
			report.Unescaped++
		}
	}

	todos := append([]TodoItem(nil), t.Frontmatter.Todo...)
	for i := range todos {
		switch {
		case strings.HasPrefix(todos[i].Text, "[ ] "):
			todos[i].Text = todos[i].Text[4:]
			todos[i].Done = false
			report.TodoPrefixes++
		case strings.HasPrefix(todos[i].Text, "[x] "):
			todos[i].Text = todos[i].Text[4:]
			todos[i].Done = true
			report.TodoPrefixes++
		}
		if text, ok := unescapeBang(todos[i].Text); ok {
			todos[i].Text = text
			report.Unescaped++
		}
	}

	logEntries := append([]LogEntry(nil), t.Frontmatter.Log...)
	for i := range logEntries {
		if text, ok := unescapeBang(logEntries[i].Text); ok {
			logEntries[i].Text = text
			report.Unescaped++
		}
	}

	deadlines := append([]DeadlineItem(nil), t.Frontmatter.Deadlines...)
	for i := range deadlines {
		if text, ok := unescapeBang(deadlines[i].Text); ok {
			deadlines[i].Text = text
			report.Unescaped++
		}
	}

	events := append([]EventItem(nil), t.Frontmatter.Events...)
	for i := range events {
		if text, ok := unescapeBang(events[i].Text); ok {
			events[i].Text = text
			report.Unescaped++
		}
	}

	report.Changed = report.TodoPrefixes > 0 || report.Unescaped > 0
	if !report.Changed || dryRun {
		return report, nil
	}

	t.Frontmatter.Notes = notes
	t.Frontmatter.Todo = todos
	t.Frontmatter.Log = logEntries
	t.Frontmatter.Deadlines = deadlines
	t.Frontmatter.Events = events

	return report, t.rebuildContent()
}

// unescapeBang undoes the historical `\!` shell-escaping artifact.
func unescapeBang(s string) (string, bool) {
	if !strings.Contains(s, `\!`) {
		return s, false
	}
	return strings.ReplaceAll(s, `\!`, "!"), true
}

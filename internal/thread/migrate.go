package thread

// MigrationReport summarizes one Migrate run.
type MigrationReport struct {
	Notes      int  `json:"notes"`
	Todos      int  `json:"todos"`
	LogEntries int  `json:"log_entries"`
	Changed    bool `json:"changed"`
}

// Migrate converts a thread from the legacy representation (items as section
// lines) to the modern one (items as frontmatter fields). It is idempotent by
// construction: once the sections are empty there is nothing left to detect,
// so a second run reports Changed=false and touches nothing. Collections
// already populated in the frontmatter are never overwritten, so re-running
// against a manually edited modern thread loses no data.
func (t *Thread) Migrate(dryRun bool) (MigrationReport, error) {
	var report MigrationReport

	body := t.Body()
	hasNotes := sectionHasLinePrefix(body, SectionNotes, "- ")
	hasTodos := sectionHasLinePrefix(body, SectionTodo, "- [")
	hasLog := ExtractSection(body, SectionLog) != ""

	if !hasNotes && !hasTodos && !hasLog {
		// Already modern, or sections were empty to begin with
		return report, nil
	}

	notes := t.Frontmatter.Notes
	if len(notes) == 0 {
		notes = notesFromSection(body)
	}
	todos := t.Frontmatter.Todo
	if len(todos) == 0 {
		todos = todosFromSection(body)
	}
	logEntries := t.Frontmatter.Log
	if len(logEntries) == 0 {
		logEntries = logFromSection(body)
	}

	report.Notes = len(notes)
	report.Todos = len(todos)
	report.LogEntries = len(logEntries)
	report.Changed = true

	if dryRun {
		return report, nil
	}

	// Strip the legacy section bodies; the canonical headings remain
	for _, name := range []string{SectionNotes, SectionTodo, SectionLog} {
		if HasSection(body, name) {
			body = ReplaceSection(body, name, "")
		}
	}
	t.setBody(body)

	t.Frontmatter.Notes = notes
	t.Frontmatter.Todo = todos
	t.Frontmatter.Log = logEntries
	t.Repr = Modern

	return report, t.rebuildContent()
}

package thread

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/strandhq/strand/internal/errors"
)

// LogTimestampFormat is the canonical timestamp of a log entry.
const LogTimestampFormat = "2006-01-02 15:04:05"

// DateFormat is the canonical date of deadlines and events.
const DateFormat = "2006-01-02"

// TimeFormat is the optional time-of-day of an event.
const TimeFormat = "15:04"

// NoteItem is a free-form note with a 4-char identity hash.
type NoteItem struct {
	Text string `yaml:"text"`
	Hash string `yaml:"hash"`
}

// TodoItem is a checkable item with a 4-char identity hash.
type TodoItem struct {
	Text string `yaml:"text"`
	Done bool   `yaml:"done"`
	Hash string `yaml:"hash"`
}

// LogEntry is a timestamped entry. Log entries carry no hash: they are
// append-only and addressed by position, never edited in place.
type LogEntry struct {
	TS   string `yaml:"ts"`
	Text string `yaml:"text"`
}

// DeadlineItem is a dated item with a 4-char identity hash.
type DeadlineItem struct {
	Date string `yaml:"date"`
	Text string `yaml:"text"`
	Hash string `yaml:"hash"`
}

// EventItem is a calendar entry with an optional time of day.
type EventItem struct {
	Date string `yaml:"date"`
	Time string `yaml:"time,omitempty"`
	Text string `yaml:"text"`
	Hash string `yaml:"hash"`
}

var (
	// hashCommentRe matches the embedded identity marker "<!-- ab12 -->".
	hashCommentRe = regexp.MustCompile(`<!--\s*([a-f0-9]{4})\s*-->`)

	// logLineRe matches legacy log lines "- [2024-01-02 03:04:05] text".
	logLineRe = regexp.MustCompile(`^- \[([^\]]+)\] ?(.*)$`)
)

// formatNoteLine renders a note in the legacy line grammar.
func formatNoteLine(text, hash string) string {
	return fmt.Sprintf("- %s  <!-- %s -->", text, hash)
}

// formatTodoLine renders a todo in the legacy line grammar.
func formatTodoLine(done bool, text, hash string) string {
	mark := " "
	if done {
		mark = "x"
	}
	return fmt.Sprintf("- [%s] %s  <!-- %s -->", mark, text, hash)
}

// splitHashComment separates an item line's visible text from its trailing
// hash marker. Returns the bare text and the hash ("" when absent).
func splitHashComment(rest string) (string, string) {
	m := hashCommentRe.FindStringSubmatch(rest)
	if m == nil {
		return strings.TrimSpace(rest), ""
	}
	return strings.TrimSpace(hashCommentRe.ReplaceAllString(rest, "")), m[1]
}

// Notes returns the ordered note collection, regardless of representation.
func (t *Thread) Notes() []NoteItem {
	if t.Repr == Modern {
		return t.Frontmatter.Notes
	}
	return notesFromSection(t.Body())
}

// TodoItems returns the ordered todo collection.
func (t *Thread) TodoItems() []TodoItem {
	if t.Repr == Modern {
		return t.Frontmatter.Todo
	}
	return todosFromSection(t.Body())
}

// LogEntries returns the ordered log, most recent first.
func (t *Thread) LogEntries() []LogEntry {
	if t.Repr == Modern {
		return t.Frontmatter.Log
	}
	return logFromSection(t.Body())
}

// Deadlines returns the ordered deadline collection. Deadlines postdate the
// legacy format and always live in the frontmatter.
func (t *Thread) Deadlines() []DeadlineItem {
	return t.Frontmatter.Deadlines
}

// Events returns the ordered event collection.
func (t *Thread) Events() []EventItem {
	return t.Frontmatter.Events
}

// notesFromSection parses note lines out of the Notes section.
func notesFromSection(body string) []NoteItem {
	var items []NoteItem
	for _, line := range strings.Split(ExtractSection(body, SectionNotes), "\n") {
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		text, hash := splitHashComment(line[2:])
		items = append(items, NoteItem{Text: text, Hash: hash})
	}
	return items
}

// todosFromSection parses checkbox lines out of the Todo section. Only the
// two literal prefixes "- [ ] " and "- [x] " are recognized as todo lines.
func todosFromSection(body string) []TodoItem {
	var items []TodoItem
	for _, line := range strings.Split(ExtractSection(body, SectionTodo), "\n") {
		var done bool
		var rest string
		switch {
		case strings.HasPrefix(line, "- [ ] "):
			rest = line[6:]
		case strings.HasPrefix(line, "- [x] "):
			done = true
			rest = line[6:]
		default:
			continue
		}
		text, hash := splitHashComment(rest)
		items = append(items, TodoItem{Text: text, Done: done, Hash: hash})
	}
	return items
}

// logFromSection parses timestamped lines out of the Log section.
func logFromSection(body string) []LogEntry {
	var entries []LogEntry
	for _, line := range strings.Split(ExtractSection(body, SectionLog), "\n") {
		if m := logLineRe.FindStringSubmatch(line); m != nil {
			entries = append(entries, LogEntry{TS: m[1], Text: m[2]})
		}
	}
	return entries
}

// AddNote inserts a note at the front of its collection and returns the new
// hash for the caller to report.
func (t *Thread) AddNote(text string) (string, error) {
	hash := GenerateHash(text)
	if t.Repr == Modern {
		t.Frontmatter.Notes = append([]NoteItem{{Text: text, Hash: hash}}, t.Frontmatter.Notes...)
		return hash, t.rebuildContent()
	}

	body := EnsureSection(t.Body(), SectionNotes, SectionTodo)
	t.setBody(insertLineAtTop(body, SectionNotes, formatNoteLine(text, hash)))
	return hash, nil
}

// AddTodo inserts an unchecked todo at the front of its collection and
// returns the new hash.
func (t *Thread) AddTodo(text string) (string, error) {
	hash := GenerateHash(text)
	if t.Repr == Modern {
		t.Frontmatter.Todo = append([]TodoItem{{Text: text, Hash: hash}}, t.Frontmatter.Todo...)
		return hash, t.rebuildContent()
	}

	body := EnsureSection(t.Body(), SectionTodo, SectionLog)
	t.setBody(insertLineAtTop(body, SectionTodo, formatTodoLine(false, text, hash)))
	return hash, nil
}

// AddDeadline inserts a dated deadline at the front of its collection.
func (t *Thread) AddDeadline(date, text string) (string, error) {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", date))
	}
	hash := GenerateHash(text)
	t.Frontmatter.Deadlines = append([]DeadlineItem{{Date: date, Text: text, Hash: hash}}, t.Frontmatter.Deadlines...)
	return hash, t.rebuildContent()
}

// AddEvent inserts a calendar event at the front of its collection. The time
// of day is optional; pass "" to omit it.
func (t *Thread) AddEvent(date, timeOfDay, text string) (string, error) {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", date))
	}
	if timeOfDay != "" {
		if _, err := time.Parse(TimeFormat, timeOfDay); err != nil {
			return "", errors.NewInvalidRequest(fmt.Sprintf("invalid time %q: expected HH:MM", timeOfDay))
		}
	}
	hash := GenerateHash(text)
	t.Frontmatter.Events = append([]EventItem{{Date: date, Time: timeOfDay, Text: text, Hash: hash}}, t.Frontmatter.Events...)
	return hash, t.rebuildContent()
}

// InsertLogEntry prepends a freshly timestamped entry to the log, using
// wall-clock local time at the moment of insertion.
func (t *Thread) InsertLogEntry(text string) error {
	ts := time.Now().Format(LogTimestampFormat)
	if t.Repr == Modern {
		t.Frontmatter.Log = append([]LogEntry{{TS: ts, Text: text}}, t.Frontmatter.Log...)
		return t.rebuildContent()
	}

	body := EnsureSection(t.Body(), SectionLog, "")
	t.setBody(insertLineAtTop(body, SectionLog, fmt.Sprintf("- [%s] %s", ts, text)))
	return nil
}

// CountMatching counts items in a section whose hash starts with the given
// prefix. Callers must check this before edit/remove: 0 is "not found", more
// than 1 is ambiguous and must block the mutation.
func (t *Thread) CountMatching(section, prefix string) int {
	count := 0
	switch section {
	case SectionNotes:
		for _, n := range t.Notes() {
			if strings.HasPrefix(n.Hash, prefix) {
				count++
			}
		}
	case SectionTodo:
		for _, td := range t.TodoItems() {
			if strings.HasPrefix(td.Hash, prefix) {
				count++
			}
		}
	case "Deadlines":
		for _, d := range t.Deadlines() {
			if strings.HasPrefix(d.Hash, prefix) {
				count++
			}
		}
	case "Events":
		for _, e := range t.Events() {
			if strings.HasPrefix(e.Hash, prefix) {
				count++
			}
		}
	}
	return count
}

// EditByHash replaces the text of the first item in the section whose hash
// matches the prefix. The item keeps its original full hash.
func (t *Thread) EditByHash(section, prefix, newText string) error {
	if t.Repr == Modern || section == "Deadlines" || section == "Events" {
		return t.editModern(section, prefix, newText)
	}

	return t.editSectionLine(section, prefix, func(line, fullHash string) (string, bool) {
		if section == SectionTodo {
			done := strings.HasPrefix(line, "- [x] ")
			return formatTodoLine(done, newText, fullHash), true
		}
		return formatNoteLine(newText, fullHash), true
	})
}

// editModern applies an edit to a frontmatter collection.
func (t *Thread) editModern(section, prefix, newText string) error {
	switch section {
	case SectionNotes:
		for i := range t.Frontmatter.Notes {
			if strings.HasPrefix(t.Frontmatter.Notes[i].Hash, prefix) {
				t.Frontmatter.Notes[i].Text = newText
				return t.rebuildContent()
			}
		}
	case SectionTodo:
		for i := range t.Frontmatter.Todo {
			if strings.HasPrefix(t.Frontmatter.Todo[i].Hash, prefix) {
				t.Frontmatter.Todo[i].Text = newText
				return t.rebuildContent()
			}
		}
	case "Deadlines":
		for i := range t.Frontmatter.Deadlines {
			if strings.HasPrefix(t.Frontmatter.Deadlines[i].Hash, prefix) {
				t.Frontmatter.Deadlines[i].Text = newText
				return t.rebuildContent()
			}
		}
	case "Events":
		for i := range t.Frontmatter.Events {
			if strings.HasPrefix(t.Frontmatter.Events[i].Hash, prefix) {
				t.Frontmatter.Events[i].Text = newText
				return t.rebuildContent()
			}
		}
	}
	return errors.NewItemNotFound(prefix)
}

// RemoveByHash removes the first item in the section whose hash matches the
// prefix.
func (t *Thread) RemoveByHash(section, prefix string) error {
	if t.Repr == Modern || section == "Deadlines" || section == "Events" {
		return t.removeModern(section, prefix)
	}

	return t.editSectionLine(section, prefix, func(string, string) (string, bool) {
		return "", false
	})
}

// removeModern removes an item from a frontmatter collection.
func (t *Thread) removeModern(section, prefix string) error {
	switch section {
	case SectionNotes:
		for i, n := range t.Frontmatter.Notes {
			if strings.HasPrefix(n.Hash, prefix) {
				t.Frontmatter.Notes = append(t.Frontmatter.Notes[:i], t.Frontmatter.Notes[i+1:]...)
				return t.rebuildContent()
			}
		}
	case SectionTodo:
		for i, td := range t.Frontmatter.Todo {
			if strings.HasPrefix(td.Hash, prefix) {
				t.Frontmatter.Todo = append(t.Frontmatter.Todo[:i], t.Frontmatter.Todo[i+1:]...)
				return t.rebuildContent()
			}
		}
	case "Deadlines":
		for i, d := range t.Frontmatter.Deadlines {
			if strings.HasPrefix(d.Hash, prefix) {
				t.Frontmatter.Deadlines = append(t.Frontmatter.Deadlines[:i], t.Frontmatter.Deadlines[i+1:]...)
				return t.rebuildContent()
			}
		}
	case "Events":
		for i, e := range t.Frontmatter.Events {
			if strings.HasPrefix(e.Hash, prefix) {
				t.Frontmatter.Events = append(t.Frontmatter.Events[:i], t.Frontmatter.Events[i+1:]...)
				return t.rebuildContent()
			}
		}
	}
	return errors.NewItemNotFound(prefix)
}

// SetTodoChecked flips the done flag of the first todo whose hash matches
// the prefix.
func (t *Thread) SetTodoChecked(prefix string, checked bool) error {
	if t.Repr == Modern {
		for i := range t.Frontmatter.Todo {
			if strings.HasPrefix(t.Frontmatter.Todo[i].Hash, prefix) {
				t.Frontmatter.Todo[i].Done = checked
				return t.rebuildContent()
			}
		}
		return errors.NewItemNotFound(prefix)
	}

	return t.editSectionLine(SectionTodo, prefix, func(line, _ string) (string, bool) {
		if checked {
			return strings.Replace(line, "- [ ]", "- [x]", 1), true
		}
		return strings.Replace(line, "- [x]", "- [ ]", 1), true
	})
}

// editSectionLine applies fn to the first line inside the section span that
// carries the hash prefix. fn returns the replacement line and whether to
// keep it. Everything outside the span is preserved byte-for-byte.
func (t *Thread) editSectionLine(section, prefix string, fn func(line, fullHash string) (string, bool)) error {
	body := t.Body()
	sp, ok := sectionSpan(body, section)
	if !ok {
		return errors.NewItemNotFound(prefix)
	}

	content := body[sp.contentStart:sp.contentEnd]
	marker := "<!-- " + prefix
	found := false

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if !found && strings.Contains(line, marker) {
			found = true
			fullHash := prefix
			if m := hashCommentRe.FindStringSubmatch(line); m != nil {
				fullHash = m[1]
			}
			newLine, keep := fn(line, fullHash)
			if !keep {
				continue
			}
			out = append(out, newLine)
			continue
		}
		out = append(out, line)
	}

	if !found {
		return errors.NewItemNotFound(prefix)
	}

	t.setBody(body[:sp.contentStart] + strings.Join(out, "\n") + body[sp.contentEnd:])
	return nil
}

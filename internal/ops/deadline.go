package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// DeadlineAddInput contains parameters for the DeadlineAdd operation.
type DeadlineAddInput struct {
	Ref  string
	Date string // YYYY-MM-DD
	Text string
}

// DeadlineAddOutput contains the result of the DeadlineAdd operation.
type DeadlineAddOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// DeadlineAdd attaches a dated deadline to a thread and records a log entry.
// Deadlines always live in the frontmatter, even on legacy threads.
func DeadlineAdd(root string, input DeadlineAddInput) (*DeadlineAddOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("deadline text must not be empty")
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	hash, err := t.AddDeadline(input.Date, text)
	if err != nil {
		return nil, err
	}
	if err := t.InsertLogEntry(fmt.Sprintf("Added deadline %s: %s", input.Date, logSummary(text))); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &DeadlineAddOutput{Hash: hash, Path: t.Path}, nil
}

// DeadlineRemoveInput contains parameters for the DeadlineRemove operation.
type DeadlineRemoveInput struct {
	Ref  string
	Hash string
}

// DeadlineRemoveOutput contains the result of the DeadlineRemove operation.
type DeadlineRemoveOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// DeadlineRemove deletes a deadline and records a log entry.
func DeadlineRemove(root string, input DeadlineRemoveInput) (*DeadlineRemoveOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(t, "Deadlines", input.Hash); err != nil {
		return nil, err
	}

	old := ""
	for _, d := range t.Deadlines() {
		if strings.HasPrefix(d.Hash, input.Hash) {
			old = fmt.Sprintf("%s: %s", d.Date, logSummary(d.Text))
			break
		}
	}

	if err := t.RemoveByHash("Deadlines", input.Hash); err != nil {
		return nil, err
	}
	if err := t.InsertLogEntry("Removed deadline " + old); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &DeadlineRemoveOutput{Hash: input.Hash, Path: t.Path}, nil
}

// AgendaDeadline is one deadline in a cross-thread agenda view.
type AgendaDeadline struct {
	ThreadID   string `json:"thread_id"`
	ThreadName string `json:"thread_name"`
	Date       string `json:"date"`
	Text       string `json:"text"`
	Hash       string `json:"hash"`
}

// DeadlineAgendaInput contains parameters for the DeadlineAgenda operation.
type DeadlineAgendaInput struct {
	IncludeClosed bool
}

// DeadlineAgendaOutput contains the result of the DeadlineAgenda operation.
type DeadlineAgendaOutput struct {
	Deadlines []AgendaDeadline `json:"deadlines"`
}

// DeadlineAgenda collects deadlines across all threads under root, earliest
// first. Threads with closed statuses are skipped unless IncludeClosed is
// set; unparseable files are skipped silently.
func DeadlineAgenda(root string, input DeadlineAgendaInput) (*DeadlineAgendaOutput, error) {
	files, err := workspace.FindAll(root)
	if err != nil {
		return nil, err
	}

	var items []AgendaDeadline
	for _, path := range files {
		t, parseErr := thread.Parse(path)
		if parseErr != nil {
			continue
		}
		if !input.IncludeClosed && thread.IsClosed(t.Status()) {
			continue
		}
		for _, d := range t.Deadlines() {
			items = append(items, AgendaDeadline{
				ThreadID:   t.ID(),
				ThreadName: t.Name(),
				Date:       d.Date,
				Text:       d.Text,
				Hash:       d.Hash,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].ThreadName < items[j].ThreadName
	})

	return &DeadlineAgendaOutput{Deadlines: items}, nil
}

package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// EventAddInput contains parameters for the EventAdd operation.
type EventAddInput struct {
	Ref  string
	Date string // YYYY-MM-DD
	Time string // HH:MM, optional
	Text string
}

// EventAddOutput contains the result of the EventAdd operation.
type EventAddOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// EventAdd attaches a calendar event to a thread and records a log entry.
func EventAdd(root string, input EventAddInput) (*EventAddOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("event text must not be empty")
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	hash, err := t.AddEvent(input.Date, input.Time, text)
	if err != nil {
		return nil, err
	}

	when := input.Date
	if input.Time != "" {
		when += " " + input.Time
	}
	if err := t.InsertLogEntry(fmt.Sprintf("Added event %s: %s", when, logSummary(text))); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &EventAddOutput{Hash: hash, Path: t.Path}, nil
}

// EventRemoveInput contains parameters for the EventRemove operation.
type EventRemoveInput struct {
	Ref  string
	Hash string
}

// EventRemoveOutput contains the result of the EventRemove operation.
type EventRemoveOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// EventRemove deletes an event and records a log entry.
func EventRemove(root string, input EventRemoveInput) (*EventRemoveOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(t, "Events", input.Hash); err != nil {
		return nil, err
	}

	old := ""
	for _, e := range t.Events() {
		if strings.HasPrefix(e.Hash, input.Hash) {
			old = fmt.Sprintf("%s: %s", e.Date, logSummary(e.Text))
			break
		}
	}

	if err := t.RemoveByHash("Events", input.Hash); err != nil {
		return nil, err
	}
	if err := t.InsertLogEntry("Removed event " + old); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &EventRemoveOutput{Hash: input.Hash, Path: t.Path}, nil
}

// AgendaEvent is one event in a cross-thread agenda view.
type AgendaEvent struct {
	ThreadID   string `json:"thread_id"`
	ThreadName string `json:"thread_name"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Text       string `json:"text"`
	Hash       string `json:"hash"`
}

// EventAgendaInput contains parameters for the EventAgenda operation.
type EventAgendaInput struct {
	IncludeClosed bool
}

// EventAgendaOutput contains the result of the EventAgenda operation.
type EventAgendaOutput struct {
	Events []AgendaEvent `json:"events"`
}

// EventAgenda collects events across all threads under root, chronological.
// Untimed events on a date sort before timed ones.
func EventAgenda(root string, input EventAgendaInput) (*EventAgendaOutput, error) {
	files, err := workspace.FindAll(root)
	if err != nil {
		return nil, err
	}

	var items []AgendaEvent
	for _, path := range files {
		t, parseErr := thread.Parse(path)
		if parseErr != nil {
			continue
		}
		if !input.IncludeClosed && thread.IsClosed(t.Status()) {
			continue
		}
		for _, e := range t.Events() {
			items = append(items, AgendaEvent{
				ThreadID:   t.ID(),
				ThreadName: t.Name(),
				Date:       e.Date,
				Time:       e.Time,
				Text:       e.Text,
				Hash:       e.Hash,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		if items[i].Time != items[j].Time {
			return items[i].Time < items[j].Time
		}
		return items[i].ThreadName < items[j].ThreadName
	})

	return &EventAgendaOutput{Events: items}, nil
}

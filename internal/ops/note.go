package ops

import (
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// NoteAddInput contains parameters for the NoteAdd operation.
type NoteAddInput struct {
	Ref  string
	Text string
}

// NoteAddOutput contains the result of the NoteAdd operation.
type NoteAddOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// NoteAdd prepends a note to a thread and records a log entry.
func NoteAdd(root string, input NoteAddInput) (*NoteAddOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("note text must not be empty")
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	hash, err := t.AddNote(text)
	if err != nil {
		return nil, err
	}
	if err := t.InsertLogEntry("Added note: " + logSummary(text)); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &NoteAddOutput{Hash: hash, Path: t.Path}, nil
}

// NoteEditInput contains parameters for the NoteEdit operation.
type NoteEditInput struct {
	Ref  string
	Hash string // prefix, must match exactly one note
	Text string
}

// NoteEditOutput contains the result of the NoteEdit operation.
type NoteEditOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// NoteEdit replaces a note's text. The note keeps its hash.
func NoteEdit(root string, input NoteEditInput) (*NoteEditOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("note text must not be empty")
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(t, thread.SectionNotes, input.Hash); err != nil {
		return nil, err
	}

	if err := t.EditByHash(thread.SectionNotes, input.Hash, text); err != nil {
		return nil, err
	}
	if err := t.InsertLogEntry("Edited note: " + logSummary(text)); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &NoteEditOutput{Hash: input.Hash, Path: t.Path}, nil
}

// NoteRemoveInput contains parameters for the NoteRemove operation.
type NoteRemoveInput struct {
	Ref  string
	Hash string
}

// NoteRemoveOutput contains the result of the NoteRemove operation.
type NoteRemoveOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// NoteRemove deletes a note and records a log entry with its old text.
func NoteRemove(root string, input NoteRemoveInput) (*NoteRemoveOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(t, thread.SectionNotes, input.Hash); err != nil {
		return nil, err
	}

	old := ""
	for _, n := range t.Notes() {
		if strings.HasPrefix(n.Hash, input.Hash) {
			old = n.Text
			break
		}
	}

	if err := t.RemoveByHash(thread.SectionNotes, input.Hash); err != nil {
		return nil, err
	}
	if err := t.InsertLogEntry("Removed note: " + logSummary(old)); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &NoteRemoveOutput{Hash: input.Hash, Path: t.Path}, nil
}

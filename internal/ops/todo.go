package ops

import (
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// TodoAddInput contains parameters for the TodoAdd operation.
type TodoAddInput struct {
	Ref  string
	Text string
}

// TodoAddOutput contains the result of the TodoAdd operation.
type TodoAddOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// TodoAdd prepends an unchecked todo to a thread. Todo changes are routine,
// so unlike notes they do not produce log entries.
func TodoAdd(root string, input TodoAddInput) (*TodoAddOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("todo text must not be empty")
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	hash, err := t.AddTodo(text)
	if err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &TodoAddOutput{Hash: hash, Path: t.Path}, nil
}

// TodoCheckInput contains parameters for the TodoCheck operation.
type TodoCheckInput struct {
	Ref  string
	Hash string
	Done bool
}

// TodoCheckOutput contains the result of the TodoCheck operation.
type TodoCheckOutput struct {
	Hash string `json:"hash"`
	Done bool   `json:"done"`
	Path string `json:"path"`
}

// TodoCheck sets a todo's checked state.
func TodoCheck(root string, input TodoCheckInput) (*TodoCheckOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(t, thread.SectionTodo, input.Hash); err != nil {
		return nil, err
	}

	if err := t.SetTodoChecked(input.Hash, input.Done); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &TodoCheckOutput{Hash: input.Hash, Done: input.Done, Path: t.Path}, nil
}

// TodoEditInput contains parameters for the TodoEdit operation.
type TodoEditInput struct {
	Ref  string
	Hash string
	Text string
}

// TodoEditOutput contains the result of the TodoEdit operation.
type TodoEditOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// TodoEdit replaces a todo's text, preserving its checked state and hash.
func TodoEdit(root string, input TodoEditInput) (*TodoEditOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("todo text must not be empty")
	}

	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(t, thread.SectionTodo, input.Hash); err != nil {
		return nil, err
	}

	if err := t.EditByHash(thread.SectionTodo, input.Hash, text); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &TodoEditOutput{Hash: input.Hash, Path: t.Path}, nil
}

// TodoRemoveInput contains parameters for the TodoRemove operation.
type TodoRemoveInput struct {
	Ref  string
	Hash string
}

// TodoRemoveOutput contains the result of the TodoRemove operation.
type TodoRemoveOutput struct {
	Hash string `json:"hash"`
	Path string `json:"path"`
}

// TodoRemove deletes a todo.
func TodoRemove(root string, input TodoRemoveInput) (*TodoRemoveOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(t, thread.SectionTodo, input.Hash); err != nil {
		return nil, err
	}

	if err := t.RemoveByHash(thread.SectionTodo, input.Hash); err != nil {
		return nil, err
	}
	if err := t.Write(); err != nil {
		return nil, err
	}

	return &TodoRemoveOutput{Hash: input.Hash, Path: t.Path}, nil
}

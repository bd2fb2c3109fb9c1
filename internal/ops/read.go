package ops

import (
	"github.com/strandhq/strand/internal/thread"
)

// ReadInput contains parameters for the Read operation.
type ReadInput struct {
	Ref string
}

// ReadOutput contains the result of the Read operation.
type ReadOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Read returns a thread's full file content plus its identity fields.
func Read(root string, input ReadInput) (*ReadOutput, error) {
	t, err := resolveThread(root, input.Ref)
	if err != nil {
		return nil, err
	}

	name := t.Name()
	if name == "" {
		name = thread.ExtractNameFromPath(t.Path)
	}

	return &ReadOutput{
		ID:      t.ID(),
		Name:    name,
		Status:  t.Status(),
		Path:    t.Path,
		Content: t.Content,
	}, nil
}

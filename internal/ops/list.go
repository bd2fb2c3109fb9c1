package ops

import (
	"database/sql"

	"github.com/strandhq/strand/internal/index"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Status string // base-status filter, "" for all
	All    bool   // include closed threads
	Limit  int    // 0 means no limit
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Threads []index.Entry   `json:"threads"`
	Stats   index.SyncStats `json:"stats"`
}

// List refreshes the metadata cache from disk and returns the matching
// threads, name-sorted.
func List(db *sql.DB, root string, input ListInput) (*ListOutput, error) {
	stats, err := index.Sync(db, root)
	if err != nil {
		return nil, err
	}

	entries, err := index.List(db, index.ListOptions{
		Status:        input.Status,
		IncludeClosed: input.All,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListOutput{Threads: entries, Stats: stats}, nil
}

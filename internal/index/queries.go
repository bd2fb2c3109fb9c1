package index

import (
	"database/sql"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// ListOptions filters a List query.
type ListOptions struct {
	Status        string // exact base-status filter, "" for all
	IncludeClosed bool
	Limit         int // 0 means no limit
}

// List returns cached thread rows, name-sorted.
func List(db *sql.DB, opts ListOptions) ([]Entry, error) {
	query := `SELECT path, id, name, desc, status, mtime, open_todos, next_deadline FROM threads ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		// Status filters apply to the base status, so they cannot be
		// pushed into SQL (the column may carry a reason suffix)
		base := thread.BaseStatus(e.Status)
		if !opts.IncludeClosed && thread.IsClosed(e.Status) {
			continue
		}
		if opts.Status != "" && base != opts.Status {
			continue
		}

		entries = append(entries, e)
		if opts.Limit > 0 && len(entries) >= opts.Limit {
			break
		}
	}
	return entries, rows.Err()
}

// GetByID returns the cached row for a thread ID.
func GetByID(db *sql.DB, id string) (*Entry, error) {
	row := db.QueryRow(
		`SELECT path, id, name, desc, status, mtime, open_todos, next_deadline FROM threads WHERE id = ?`, id)

	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry scans one threads row.
func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var nextDeadline sql.NullString

	err := s.Scan(&e.Path, &e.ID, &e.Name, &e.Desc, &e.Status, &e.Mtime, &e.OpenTodos, &nextDeadline)
	if err == sql.ErrNoRows {
		return e, err
	}
	if err != nil {
		return e, errors.NewInternal(err)
	}

	if nextDeadline.Valid {
		e.NextDeadline = nextDeadline.String
	}
	return e, nil
}

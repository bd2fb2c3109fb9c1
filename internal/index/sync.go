package index

import (
	"database/sql"
	"os"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// Entry is one cached thread row.
type Entry struct {
	Path         string `json:"path"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Desc         string `json:"desc"`
	Status       string `json:"status"`
	Mtime        int64  `json:"-"`
	OpenTodos    int    `json:"open_todos"`
	NextDeadline string `json:"next_deadline,omitempty"`
}

// SyncStats reports what a Sync pass did.
type SyncStats struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
	Errors  int `json:"errors"`
}

// Sync brings the cache up to date with the thread files under root.
// Files whose mtime matches the cached row are left alone; changed or new
// files are reparsed; rows for vanished files are deleted. A parse failure
// on one file is counted and skipped, never fatal for the batch.
func Sync(db *sql.DB, root string) (SyncStats, error) {
	var stats SyncStats

	files, err := workspace.FindAll(root)
	if err != nil {
		return stats, err
	}

	cached, err := cachedMtimes(db)
	if err != nil {
		return stats, err
	}

	seen := make(map[string]bool, len(files))
	for _, path := range files {
		stats.Scanned++
		seen[path] = true

		info, statErr := os.Stat(path)
		if statErr != nil {
			stats.Errors++
			continue
		}
		mtime := info.ModTime().Unix()
		if prev, ok := cached[path]; ok && prev == mtime {
			continue
		}

		t, parseErr := thread.Parse(path)
		if parseErr != nil {
			stats.Errors++
			continue
		}

		if upsertErr := upsert(db, entryFromThread(t, mtime)); upsertErr != nil {
			stats.Errors++
			continue
		}
		stats.Updated++
	}

	for path := range cached {
		if seen[path] {
			continue
		}
		if _, delErr := db.Exec(`DELETE FROM threads WHERE path = ?`, path); delErr != nil {
			stats.Errors++
			continue
		}
		stats.Removed++
	}

	return stats, nil
}

// entryFromThread derives a cache row from a parsed thread.
func entryFromThread(t *thread.Thread, mtime int64) Entry {
	open := 0
	for _, td := range t.TodoItems() {
		if !td.Done {
			open++
		}
	}

	next := ""
	for _, d := range t.Deadlines() {
		if next == "" || d.Date < next {
			next = d.Date
		}
	}

	name := t.Name()
	if name == "" {
		name = thread.ExtractNameFromPath(t.Path)
	}

	return Entry{
		Path:         t.Path,
		ID:           t.ID(),
		Name:         name,
		Desc:         t.Frontmatter.Desc,
		Status:       t.Status(),
		Mtime:        mtime,
		OpenTodos:    open,
		NextDeadline: next,
	}
}

// cachedMtimes loads path -> mtime for all cached rows.
func cachedMtimes(db *sql.DB) (map[string]int64, error) {
	rows, err := db.Query(`SELECT path, mtime FROM threads`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, errors.NewInternal(err)
		}
		out[path] = mtime
	}
	return out, rows.Err()
}

// upsert inserts or replaces a cache row.
func upsert(db *sql.DB, e Entry) error {
	var nextDeadline sql.NullString
	if e.NextDeadline != "" {
		nextDeadline = sql.NullString{String: e.NextDeadline, Valid: true}
	}

	query := `
		INSERT INTO threads (path, id, name, desc, status, mtime, open_todos, next_deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
		  id = excluded.id,
		  name = excluded.name,
		  desc = excluded.desc,
		  status = excluded.status,
		  mtime = excluded.mtime,
		  open_todos = excluded.open_todos,
		  next_deadline = excluded.next_deadline
	`
	if _, err := db.Exec(query, e.Path, e.ID, e.Name, e.Desc, e.Status, e.Mtime, e.OpenTodos, nextDeadline); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

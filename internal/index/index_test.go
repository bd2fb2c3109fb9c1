package index

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/workspace"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func writeThreadFile(t *testing.T, root, filename, content string) string {
	t.Helper()
	dir := filepath.Join(root, workspace.ThreadsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

const alphaContent = `---
id: abc123
name: alpha
status: active
todo:
    - text: Open one
      done: false
      hash: aa11
    - text: Done one
      done: true
      hash: bb22
deadlines:
    - date: "2026-09-15"
      text: Later
      hash: cc33
    - date: "2026-09-01"
      text: Sooner
      hash: dd44
---

## Body
`

const betaContent = `---
id: def456
name: beta
status: resolved
---

## Body
`

func TestInit(t *testing.T) {
	baseDir := t.TempDir()
	db, err := Init(baseDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	version, err := GetUserVersion(db)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}

	// Reopening an existing database must not rerun migrations destructively
	db2, err := Init(baseDir)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	db2.Close()
}

func TestSync(t *testing.T) {
	db := openDB(t)
	root := t.TempDir()
	alpha := writeThreadFile(t, root, "abc123-alpha.md", alphaContent)
	writeThreadFile(t, root, "def456-beta.md", betaContent)

	stats, err := Sync(db, root)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if stats.Scanned != 2 || stats.Updated != 2 || stats.Removed != 0 || stats.Errors != 0 {
		t.Errorf("stats = %+v", stats)
	}

	entry, err := GetByID(db, "abc123")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if entry.Name != "alpha" || entry.OpenTodos != 1 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.NextDeadline != "2026-09-01" {
		t.Errorf("NextDeadline = %q, want earliest date", entry.NextDeadline)
	}

	// Unchanged files are skipped on the next pass
	stats, err = Sync(db, root)
	if err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if stats.Updated != 0 {
		t.Errorf("unchanged files reparsed: %+v", stats)
	}

	// A touched file with new content is picked up
	updated := "---\nid: abc123\nname: alpha-renamed\nstatus: active\n---\n\n## Body\n"
	if err := os.WriteFile(alpha, []byte(updated), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	os.Chtimes(alpha, future, future)

	stats, err = Sync(db, root)
	if err != nil {
		t.Fatalf("third Sync failed: %v", err)
	}
	if stats.Updated != 1 {
		t.Errorf("stats = %+v, want 1 update", stats)
	}
	entry, _ = GetByID(db, "abc123")
	if entry.Name != "alpha-renamed" {
		t.Errorf("name = %q, want alpha-renamed", entry.Name)
	}
}

func TestSync_RemovesVanished(t *testing.T) {
	db := openDB(t)
	root := t.TempDir()
	alpha := writeThreadFile(t, root, "abc123-alpha.md", alphaContent)
	writeThreadFile(t, root, "def456-beta.md", betaContent)

	if _, err := Sync(db, root); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	os.Remove(alpha)

	stats, err := Sync(db, root)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if stats.Removed != 1 {
		t.Errorf("stats = %+v, want 1 removal", stats)
	}
	if _, err := GetByID(db, "abc123"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetByID after removal = %v, want NOT_FOUND", err)
	}
}

func TestSync_CountsParseErrors(t *testing.T) {
	db := openDB(t)
	root := t.TempDir()
	writeThreadFile(t, root, "abc123-alpha.md", alphaContent)
	writeThreadFile(t, root, "bad123-broken.md", "no header at all\n")

	stats, err := Sync(db, root)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if stats.Errors != 1 || stats.Updated != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestList(t *testing.T) {
	db := openDB(t)
	root := t.TempDir()
	writeThreadFile(t, root, "abc123-alpha.md", alphaContent)
	writeThreadFile(t, root, "def456-beta.md", betaContent)
	blocked := `---
id: fed789
name: gamma
status: blocked (waiting on review)
---

## Body
`
	writeThreadFile(t, root, "fed789-gamma.md", blocked)

	if _, err := Sync(db, root); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	// Default: open threads only, name order
	entries, err := List(db, ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "alpha" || entries[1].Name != "gamma" {
		t.Errorf("entries = %+v", entries)
	}

	// The base-status filter sees through the reason suffix
	entries, err = List(db, ListOptions{Status: "blocked"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "fed789" {
		t.Errorf("entries = %+v", entries)
	}

	entries, err = List(db, ListOptions{IncludeClosed: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %+v, want all three", entries)
	}

	entries, err = List(db, ListOptions{IncludeClosed: true, Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "alpha" {
		t.Errorf("entries = %+v", entries)
	}
}

package ops

import (
	"database/sql"
	"testing"

	"github.com/strandhq/strand/internal/index"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := index.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestList(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	seedThread(t, root, "abc123-alpha.md", modernFixture)
	seedThread(t, root, "def456-beta.md", legacyFixture)
	closed := "---\nid: fed789\nname: gamma\nstatus: resolved\n---\n\n## Body\n"
	seedThread(t, root, "fed789-gamma.md", closed)

	out, err := List(db, root, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Stats.Scanned != 3 || out.Stats.Updated != 3 {
		t.Errorf("stats = %+v", out.Stats)
	}
	if len(out.Threads) != 2 {
		t.Fatalf("threads = %+v", out.Threads)
	}
	if out.Threads[0].Name != "alpha" || out.Threads[0].OpenTodos != 1 {
		t.Errorf("threads[0] = %+v", out.Threads[0])
	}

	out, err = List(db, root, ListInput{Status: "planning"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Threads) != 1 || out.Threads[0].ID != "def456" {
		t.Errorf("threads = %+v", out.Threads)
	}

	out, err = List(db, root, ListInput{All: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Threads) != 3 {
		t.Errorf("threads = %+v", out.Threads)
	}

	out, err = List(db, root, ListInput{All: true, Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Threads) != 2 {
		t.Errorf("threads = %+v", out.Threads)
	}
}

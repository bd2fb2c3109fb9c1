package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/strandhq/strand/internal/config"
	"github.com/strandhq/strand/internal/index"
	"github.com/strandhq/strand/internal/workspace"
)

const threadFixture = `---
id: abc123
name: alpha
status: active
notes:
    - text: A web-visible note
      hash: ab12
todo:
    - text: Open item
      done: false
      hash: cd34
---

## Body

Intro text.
`

func setupTest(t *testing.T) *Handlers {
	t.Helper()
	database, err := index.Init(t.TempDir())
	if err != nil {
		t.Fatalf("index.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}

	return &Handlers{
		db:       database,
		cfg:      config.DefaultConfig(),
		root:     t.TempDir(),
		renderer: NewRenderer(templateSub, "test"),
	}
}

// seedThread writes a thread file into the handler's workspace.
func seedThread(t *testing.T, h *Handlers, filename, content string) {
	t.Helper()
	dir := filepath.Join(h.root, workspace.ThreadsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestHandleList(t *testing.T) {
	h := setupTest(t)
	seedThread(t, h, "abc123-alpha.md", threadFixture)

	req := httptest.NewRequest("GET", "/threads", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alpha") {
		t.Error("expected thread name 'alpha' in response")
	}
	if !strings.Contains(body, "Threads") {
		t.Error("expected page title 'Threads' in response")
	}
}

func TestHandleList_StatusFilter(t *testing.T) {
	h := setupTest(t)
	seedThread(t, h, "abc123-alpha.md", threadFixture)
	closed := "---\nid: def456\nname: beta\nstatus: resolved\n---\n\n## Body\n"
	seedThread(t, h, "def456-beta.md", closed)

	req := httptest.NewRequest("GET", "/threads?status=active", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "alpha") || strings.Contains(body, "beta") {
		t.Errorf("filtered list wrong:\n%s", body)
	}

	// all=true brings the closed thread back
	req = httptest.NewRequest("GET", "/threads?all=true", nil)
	rec = httptest.NewRecorder()
	h.HandleList(rec, req)
	if !strings.Contains(rec.Body.String(), "beta") {
		t.Error("closed thread missing with all=true")
	}
}

func TestHandleDetail(t *testing.T) {
	h := setupTest(t)
	seedThread(t, h, "abc123-alpha.md", threadFixture)

	req := httptest.NewRequest("GET", "/threads/abc123", nil)
	req.SetPathValue("id", "abc123")
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"alpha", "A web-visible note", "Open item", "Intro text."} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in response", want)
		}
	}
}

func TestHandleDetail_NotFound(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/threads/zzz999", nil)
	req.SetPathValue("id", "zzz999")
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	securityHeaders(inner).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options header")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy header")
	}
}

package web

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/strandhq/strand/internal/config"
	"github.com/strandhq/strand/internal/ops"
	"github.com/strandhq/strand/internal/thread"
	"github.com/strandhq/strand/internal/workspace"
)

// Handlers contains HTTP route handlers for the thread viewer.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	root     string
	renderer *Renderer
}

// HandleList handles GET /threads — list threads in the workspace.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	all := parseBoolParam(r, "all")

	result, err := ops.List(h.db, h.root, ops.ListInput{
		Status: status,
		All:    all,
		Limit:  parseIntParam(r, "limit", 0),
	})
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, http.StatusOK, "list", ListPageData{
		PageData: PageData{Title: "Threads", Version: h.renderer.version},
		Threads:  result.Threads,
		Status:   status,
		All:      all,
	})
}

// HandleDetail handles GET /threads/{id} — render one thread.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("id")

	path, err := workspace.FindByRef(h.root, ref)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}
	t, err := thread.Parse(path)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	rendered, err := renderMarkdown(ops.ExportMarkdown(t))
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	name := t.Name()
	if name == "" {
		name = thread.ExtractNameFromPath(t.Path)
	}

	h.renderer.renderPage(w, http.StatusOK, "thread", DetailPageData{
		PageData: PageData{Title: name, Version: h.renderer.version},
		ID:       t.ID(),
		Name:     name,
		Status:   t.Status(),
		Rendered: rendered,
	})
}

// parseIntParam reads an integer query parameter with a fallback.
func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// parseBoolParam reads a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}

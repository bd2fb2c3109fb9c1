package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/index"
)

// markdown renders thread content for the detail page. GFM gives task-list
// rendering for todo checkboxes.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
}

// ListPageData is the template data for the thread list page.
type ListPageData struct {
	PageData
	Threads []index.Entry
	Status  string
	All     bool
}

// DetailPageData is the template data for the thread detail page.
type DetailPageData struct {
	PageData
	ID       string
	Name     string
	Status   string
	Rendered template.HTML
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	Code    string
	Message string
}

// Renderer executes page templates against the shared layout.
type Renderer struct {
	pages   map[string]*template.Template
	version string
}

// NewRenderer parses the embedded templates. Each page template is paired
// with the layout so blocks resolve per page.
func NewRenderer(fsys fs.FS, version string) *Renderer {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"list", "thread", "error"} {
		pages[name] = template.Must(template.ParseFS(fsys, "layout.html", name+".html"))
	}
	return &Renderer{pages: pages, version: version}
}

// renderPage renders a full page with the given status code.
func (rd *Renderer) renderPage(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so a template failure doesn't emit a torn page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template %s: %v", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderError shows the error page with a status derived from the error code.
func (rd *Renderer) renderError(w http.ResponseWriter, err error) {
	code := "INTERNAL"
	message := err.Error()
	status := http.StatusInternalServerError

	if sErr, ok := err.(*errors.Error); ok {
		code = string(sErr.Code)
		message = sErr.Message
		status = httpStatus(sErr.Code)
	}

	rd.renderPage(w, status, "error", ErrorPageData{
		PageData: PageData{Title: "Error", Version: rd.version},
		Code:     code,
		Message:  message,
	})
}

// httpStatus maps an error code to an HTTP status.
func httpStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrNotFound, errors.ErrItemNotFound:
		return http.StatusNotFound
	case errors.ErrInvalidRequest, errors.ErrAmbiguousHash, errors.ErrUnknownField:
		return http.StatusBadRequest
	case errors.ErrMissingDelimiter, errors.ErrUnclosedHeader, errors.ErrHeaderParse:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// renderMarkdown converts a markdown document to an HTML fragment.
func renderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", errors.NewInternal(err)
	}
	return template.HTML(buf.String()), nil
}

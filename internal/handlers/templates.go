package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
	"runtime/debug"
	"time"

	"github.com/vaughan-dsouza/yatube/internal/middleware"
	"github.com/vaughan-dsouza/yatube/internal/models"
	"github.com/vaughan-dsouza/yatube/internal/paginator"
	"github.com/vaughan-dsouza/yatube/internal/posts"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLData is the context handed to every page template.
type HTMLData struct {
	Title       string
	Path        string
	CurrentUser *models.User

	Page   paginator.Page[models.Post]
	Group  *models.Group
	Author *models.User
	Post   *models.Post

	CanEdit    bool
	IsEdit     bool
	Form       posts.PostForm
	FormErrors map[string]string
	FormError  string
	FormData   map[string]string
	Groups     []models.Group
	Next       string
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"truncate": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "…"
	},
}

type renderer struct {
	pages    map[string]*template.Template
	errorLog *log.Logger
}

// newRenderer parses every *.page.html together with the layout and partials.
func newRenderer(errorLog *log.Logger) (*renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.page.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		ts, err := template.New("").Funcs(functions).ParseFS(templateFS,
			"templates/base.layout.html",
			"templates/*.partial.html",
			name,
		)
		if err != nil {
			return nil, fmt.Errorf("templates: %s: %w", name, err)
		}
		pages[path.Base(name)] = ts
	}

	return &renderer{pages: pages, errorLog: errorLog}, nil
}

func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}
	data.Path = r.URL.Path
	if data.CurrentUser == nil {
		data.CurrentUser = middleware.CurrentUser(r)
	}

	ts, ok := rd.pages[page]
	if !ok {
		rd.serverError(w, fmt.Errorf("templates: page %q does not exist", page))
		return
	}

	// render into a buffer so a template error never sends a half page
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		rd.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (rd *renderer) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (rd *renderer) notFound(w http.ResponseWriter, r *http.Request) {
	rd.render(w, r, http.StatusNotFound, "404.page.html", nil)
}

func (rd *renderer) serverError(w http.ResponseWriter, err error) {
	rd.errorLog.Output(2, fmt.Sprintf("%s\n%s", err.Error(), debug.Stack()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

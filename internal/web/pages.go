package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/exammail/pkg/dispatch"
	"github.com/dmitrymomot/exammail/pkg/workspace"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"index":  page("index.html"),
	"upload": page("upload.html"),
	"result": page("result.html"),
}

func page(name string) *template.Template {
	return template.Must(template.New("layout").ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

type indexPage struct {
	Error       string
	MaxUploadMB int64
}

type uploadPage struct {
	Upload   *workspace.Upload
	Error    string
	Sender   string
	TestMode bool
}

type resultPage struct {
	Upload   *workspace.Upload
	Result   *dispatch.Result
	Error    string
	Progress []dispatch.Progress
	TestMode bool
}

// render executes the page into a buffer first so a template error still
// yields a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

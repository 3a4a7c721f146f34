package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pages maps a page name to its parsed template set (layout + content
// block). Parsed once at package init; a broken template is a programmer
// error and panics immediately.
var pages = func() map[string]*template.Template {
	out := make(map[string]*template.Template)
	for _, name := range []string{"home", "blog_index", "blogpost", "about"} {
		out[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return out
}()

// render executes the named page into w. Execution failures after the
// header is written can only be logged.
func render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := pages[name]
	if !ok {
		panic(fmt.Sprintf("web: unknown template %q", name))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("template execute failed", slog.String("page", name), slog.String("error", err.Error()))
	}
}

// staticHandler serves the embedded stylesheet and friends under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

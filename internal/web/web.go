package web

import (
	"embed"
	"html/template"
	"strconv"
	"time"
)

//go:embed templates/*.html templates/fragments/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"kg": func(v float64) string {
		return strconv.FormatFloat(v, 'f', 1, 64) + " kg"
	},
	"when": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 15:04 UTC")
	},
	"inc":     func(i int) int { return i + 1 },
	"rowView": NewRowView,
}

// Templates parses every page and fragment template. Each file defines a
// named template that handlers render through gin's c.HTML.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html", "templates/fragments/*.html")
}

// MustTemplates is Templates for program start-up.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

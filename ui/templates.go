package ui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"statcalc/internal"
	"statcalc/internal/engine"

	"github.com/gomarkdown/markdown"
)

//go:embed templates/*.html
var templateFiles embed.FS

var fieldLabels = map[engine.Field]string{
	engine.FieldData:       "Datos",
	engine.FieldPopulation: "Población (N)",
	engine.FieldMargin:     "Margen de error",
	engine.FieldConfidence: "Nivel de confianza",
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"fieldLabel": func(f engine.Field) string {
			if label, ok := fieldLabels[f]; ok {
				return label
			}
			return string(f)
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
}

// FormulasHTML renders the formulas reference to HTML.
func FormulasHTML() template.HTML {
	return template.HTML(markdown.ToHTML([]byte(engine.ReferenceMarkdown()), nil, nil))
}

// formulasPage is the data for formulas.html.
type formulasPage struct {
	Title string
	Body  template.HTML
}

func newFormulasPage() formulasPage {
	return formulasPage{Title: "Fórmulas", Body: FormulasHTML()}
}

// renderTemplate executes a template into a buffer first so a failing
// template never leaves a partial response behind.
func renderTemplate(w http.ResponseWriter, templates *template.Template, logger *internal.Logger, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("template error for %s: %v (data %T)", name, err, data)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("error writing template response: %v", err)
	}
}

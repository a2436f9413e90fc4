package page

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer over the embedded page templates.
//
// Templates are parsed once and only read afterwards, so a Renderer is
// safe for concurrent use.
type Renderer struct {
	templates map[Template]*template.Template
}

// NewRenderer parses the layout together with every page in Templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[Template]*template.Template, len(Templates))}

	for _, name := range Templates {
		tmpl, err := template.ParseFS(files, layoutFile, "templates/"+string(name)+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse page template %s", name)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

// Has reports whether name was parsed.
func (r *Renderer) Has(name Template) bool {
	_, ok := r.templates[name]
	return ok
}

// Render executes the named page into w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.templates[Template(name)]
	if !ok {
		return errors.Errorf("unknown page template %s", name)
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return errors.Wrapf(err, "failed to execute page template %s", name)
	}

	return nil
}

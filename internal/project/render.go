package project

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names, relative to the embedded templates directory.
const (
	tmplMakefile       = "Makefile.tmpl"
	tmplCMakeLists     = "CMakeLists.txt.tmpl"
	tmplMainCMakeLists = "main_CMakeLists.txt.tmpl"
	tmplComponentGatt  = "component_gatt.mk.tmpl"
	tmplMainCMakeGatt  = "main_CMakeLists_gatt.txt.tmpl"
)

var templateFuncs = template.FuncMap{
	// cmakeList renders file names as a space separated list of quoted
	// CMake arguments.
	"cmakeList": func(items []string) string {
		quoted := make([]string, len(items))
		for i, item := range items {
			quoted[i] = cmakeQuote(item)
		}
		return strings.Join(quoted, " ")
	},
	// comment flattens a value so it cannot escape a single-line comment.
	"comment": func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	},
}

// projectData feeds the top-level Makefile and CMakeLists.txt templates.
type projectData struct {
	Name string
	Tool string
	Date string
}

// componentData feeds the main/CMakeLists.txt template.
type componentData struct {
	Sources []string
}

// gattData feeds both GATT rule blocks.
type gattData struct {
	Name     string
	Compiler string
}

// Renderer executes the embedded build descriptor templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses every embedded template with strict key checking.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("project").
		Funcs(templateFuncs).
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

var cmakeEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// cmakeQuote wraps s in double quotes, escaping the characters CMake
// interprets inside a quoted argument.
func cmakeQuote(s string) string {
	return `"` + cmakeEscaper.Replace(s) + `"`
}

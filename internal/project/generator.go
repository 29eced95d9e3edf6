package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/btstack-tools/espgen/internal/config"
	"github.com/btstack-tools/espgen/internal/platform"
	"github.com/rs/zerolog"
)

// Fixed names inside the port's template directory and the generated projects.
const (
	SdkconfigFile   = "sdkconfig"
	SetPortScript   = "set_port.sh"
	MakefileFile    = "Makefile"
	CMakeListsFile  = "CMakeLists.txt"
	MainDir         = "main"
	MainSource      = "main.c"
	ComponentMKFile = "component.mk"
)

// Layout locates the port directory and the variant being generated.
type Layout struct {
	// Root is the ESP32 port directory holding template/.
	Root string
	// Suffix selects template/sdkconfig<suffix> and example<suffix>/.
	Suffix string
}

// OutputRoot returns <root>/example<suffix>.
func (l Layout) OutputRoot() string {
	return filepath.Join(l.Root, "example"+l.Suffix)
}

// ProjectDir returns the output directory for one example.
func (l Layout) ProjectDir(name string) string {
	return filepath.Join(l.OutputRoot(), name)
}

// RequiredTemplates lists the template files a run with this suffix reads,
// relative to the template directory.
func (l Layout) RequiredTemplates() []string {
	return []string{
		SdkconfigFile + l.Suffix,
		SetPortScript,
		filepath.Join(MainDir, MainSource),
		filepath.Join(MainDir, ComponentMKFile),
	}
}

// Result describes one generated project.
type Result struct {
	Example   Example
	OutputDir string
	// Files lists every written file relative to OutputDir, in write order.
	Files []string
	// Sources are the build inputs registered in main/CMakeLists.txt.
	Sources []string
}

// Report summarizes a full run.
type Report struct {
	OutputRoot string
	Projects   []*Result
}

// Option configures a Generator.
type Option func(*Generator)

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(g *Generator) { g.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithClock overrides the time source used for generation timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator creates example projects for one layout.
type Generator struct {
	layout   Layout
	rules    *config.Rules
	out      io.Writer
	logger   zerolog.Logger
	now      func() time.Time
	renderer *Renderer
}

// New returns a Generator. Progress output is discarded and logging is
// disabled unless options say otherwise.
func New(layout Layout, rules *config.Rules, opts ...Option) (*Generator, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		layout:   layout,
		rules:    rules,
		out:      io.Discard,
		logger:   zerolog.Nop(),
		now:      time.Now,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ExamplesDir returns the directory examples are read from.
func (g *Generator) ExamplesDir() string {
	return g.rules.ExamplesPath(g.layout.Root)
}

// Examples lists the examples the generator would build.
func (g *Generator) Examples() ([]Example, error) {
	return Discover(g.ExamplesDir(), g.rules)
}

// Generate builds a project for every qualifying example. The first
// filesystem error aborts the run.
func (g *Generator) Generate() (*Report, error) {
	outRoot := g.layout.OutputRoot()

	fmt.Fprintln(g.out, "Creating examples folder")
	if err := os.MkdirAll(outRoot, dirPerm); err != nil {
		return nil, fmt.Errorf("creating examples folder: %w", err)
	}

	examples, err := g.Examples()
	if err != nil {
		return nil, err
	}
	g.logger.Debug().
		Str("examples_dir", g.ExamplesDir()).
		Str("output", outRoot).
		Int("count", len(examples)).
		Msg("discovered examples")

	fmt.Fprintln(g.out, "Creating examples in examples folder")

	report := &Report{OutputRoot: outRoot}
	for _, ex := range examples {
		result, err := g.GenerateExample(ex)
		if err != nil {
			return report, err
		}
		report.Projects = append(report.Projects, result)

		if ex.HasGatt {
			fmt.Fprintf(g.out, "- %s including GATT DB compilation rules\n", ex.Name)
		} else {
			fmt.Fprintf(g.out, "- %s\n", ex.Name)
		}
	}
	return report, nil
}

// GenerateExample rebuilds the project directory of a single example.
func (g *Generator) GenerateExample(ex Example) (*Result, error) {
	if err := ValidateName(ex.Name); err != nil {
		return nil, err
	}

	dir := g.layout.ProjectDir(ex.Name)
	if err := resetDir(dir); err != nil {
		return nil, err
	}

	w := &projectWriter{dir: dir, logger: g.logger.With().Str("example", ex.Name).Logger()}
	tmplDir := g.rules.TemplatePath(g.layout.Root)
	examplesDir := g.ExamplesDir()

	// Port support files.
	if err := w.copy(filepath.Join(tmplDir, SdkconfigFile+g.layout.Suffix), SdkconfigFile); err != nil {
		return nil, err
	}
	if err := w.copy(filepath.Join(tmplDir, SetPortScript), SetPortScript); err != nil {
		return nil, err
	}
	if err := platform.MakeExecutable(filepath.Join(dir, SetPortScript)); err != nil {
		return nil, fmt.Errorf("marking %s executable: %w", SetPortScript, err)
	}

	// Top-level build descriptors.
	pd := projectData{
		Name: ex.Name,
		Tool: g.layout.Root,
		Date: g.now().Format(time.ANSIC),
	}
	if err := w.render(g.renderer, tmplMakefile, pd, MakefileFile); err != nil {
		return nil, err
	}
	if err := w.render(g.renderer, tmplCMakeLists, pd, CMakeListsFile); err != nil {
		return nil, err
	}

	// main component.
	if err := os.MkdirAll(filepath.Join(dir, MainDir), dirPerm); err != nil {
		return nil, fmt.Errorf("creating %s folder: %w", MainDir, err)
	}
	if err := w.copy(filepath.Join(tmplDir, MainDir, MainSource), filepath.Join(MainDir, MainSource)); err != nil {
		return nil, err
	}

	exampleSource := ex.Name + g.rules.SourceExt
	sources := []string{MainSource, exampleSource}
	if err := w.copy(ex.SourcePath, filepath.Join(MainDir, exampleSource)); err != nil {
		return nil, err
	}

	if ex.HasAudio {
		for _, companion := range g.rules.Companions {
			if err := w.copy(filepath.Join(examplesDir, companion), filepath.Join(MainDir, companion)); err != nil {
				return nil, err
			}
		}
		sources = append(sources, g.rules.CompanionSources()...)
	}

	componentMK := filepath.Join(MainDir, ComponentMKFile)
	if err := w.copy(filepath.Join(tmplDir, MainDir, ComponentMKFile), componentMK); err != nil {
		return nil, err
	}

	mainCMake := filepath.Join(MainDir, CMakeListsFile)
	if err := w.render(g.renderer, tmplMainCMakeLists, componentData{Sources: sources}, mainCMake); err != nil {
		return nil, err
	}

	if ex.HasGatt {
		gattFile := ex.Name + g.rules.GattExt
		if err := w.copy(ex.GattPath, filepath.Join(MainDir, gattFile)); err != nil {
			return nil, err
		}
		gd := gattData{Name: ex.Name, Compiler: g.rules.GattCompiler}
		if err := w.appendRendered(g.renderer, tmplComponentGatt, gd, componentMK); err != nil {
			return nil, err
		}
		if err := w.appendRendered(g.renderer, tmplMainCMakeGatt, gd, mainCMake); err != nil {
			return nil, err
		}
	}

	return &Result{
		Example:   ex,
		OutputDir: dir,
		Files:     w.files,
		Sources:   sources,
	}, nil
}

// projectWriter writes files below one project directory and records them.
type projectWriter struct {
	dir    string
	files  []string
	logger zerolog.Logger
}

func (w *projectWriter) copy(src, rel string) error {
	if err := copyFile(src, filepath.Join(w.dir, rel)); err != nil {
		return fmt.Errorf("copying %s: %w", rel, err)
	}
	w.logger.Debug().Str("src", src).Str("dst", rel).Msg("copied")
	w.files = append(w.files, filepath.ToSlash(rel))
	return nil
}

func (w *projectWriter) render(r *Renderer, tmpl string, data any, rel string) error {
	content, err := r.Render(tmpl, data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(w.dir, rel), content, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	w.logger.Debug().Str("template", tmpl).Str("dst", rel).Msg("rendered")
	w.files = append(w.files, filepath.ToSlash(rel))
	return nil
}

func (w *projectWriter) appendRendered(r *Renderer, tmpl string, data any, rel string) error {
	content, err := r.Render(tmpl, data)
	if err != nil {
		return err
	}
	if err := appendFile(filepath.Join(w.dir, rel), content); err != nil {
		return fmt.Errorf("appending to %s: %w", rel, err)
	}
	w.logger.Debug().Str("template", tmpl).Str("dst", rel).Msg("appended")
	return nil
}

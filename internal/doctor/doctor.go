// Package doctor runs the pre-flight checks behind "espgen doctor": are the
// port templates in place, are there examples to generate, is the rules file
// valid and is the ESP-IDF installation recent enough to build the result.
package doctor

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/btstack-tools/espgen/internal/config"
	"github.com/btstack-tools/espgen/internal/idf"
	"github.com/btstack-tools/espgen/internal/project"
	"github.com/btstack-tools/espgen/internal/ui"
)

// Options selects what the checks look at.
type Options struct {
	Layout project.Layout
	Rules  *config.Rules
	// IDFPath overrides $IDF_PATH when set.
	IDFPath string
}

// Summary counts problems found across all checks.
type Summary struct {
	Failures int
	Warnings int
}

// Run executes every check and writes the report to w.
func Run(w io.Writer, opts Options) *Summary {
	p := ui.NewPrinter(w)

	CheckTemplates(p, opts.Layout, opts.Rules)
	CheckExamples(p, opts.Layout, opts.Rules)
	CheckConfig(p, opts.Rules)
	CheckIDF(p, opts.IDFPath, opts.Rules)
	CheckGattCompiler(p, opts.Layout, opts.Rules)

	return &Summary{
		Failures: p.Count(ui.Fail) + p.Count(ui.Miss),
		Warnings: p.Count(ui.Warn),
	}
}

// CheckTemplates verifies every template file the layout's suffix needs.
func CheckTemplates(p *ui.Printer, layout project.Layout, rules *config.Rules) {
	p.Section("Templates check:")
	dir := rules.TemplatePath(layout.Root)
	for _, rel := range layout.RequiredTemplates() {
		path := filepath.Join(dir, rel)
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			p.Line(ui.Miss, "%s not found", filepath.ToSlash(rel))
			p.Detail("looked in %s", dir)
		case err != nil:
			p.Line(ui.Fail, "%s: %v", filepath.ToSlash(rel), err)
		case !info.Mode().IsRegular():
			p.Line(ui.Fail, "%s is not a regular file", filepath.ToSlash(rel))
		default:
			p.Line(ui.OK, "%s", filepath.ToSlash(rel))
		}
	}
}

// CheckExamples verifies the examples directory and reports what qualifies.
func CheckExamples(p *ui.Printer, layout project.Layout, rules *config.Rules) {
	p.Section("Examples check:")
	dir := rules.ExamplesPath(layout.Root)
	examples, err := project.Discover(dir, rules)
	if err != nil {
		p.Line(ui.Fail, "%v", err)
		return
	}
	if len(examples) == 0 {
		p.Line(ui.Warn, "no examples found in %s", dir)
		return
	}

	var gatt, audio int
	for _, ex := range examples {
		if ex.HasGatt {
			gatt++
		}
		if ex.HasAudio {
			audio++
		}
	}
	p.Line(ui.OK, "%d examples in %s (%d with GATT DB, %d audio)", len(examples), dir, gatt, audio)

	if audio > 0 {
		for _, companion := range rules.Companions {
			if _, err := os.Stat(filepath.Join(dir, companion)); err != nil {
				p.Line(ui.Fail, "audio companion %s missing", companion)
			}
		}
	}
}

// CheckConfig reports where the rules came from.
func CheckConfig(p *ui.Printer, rules *config.Rules) {
	p.Section("Config check:")
	if rules.File == "" {
		p.Line(ui.Info, "no config file, using built-in rules")
		return
	}
	result, err := config.ValidateFile(rules.File)
	if err != nil {
		p.Line(ui.Fail, "%v", err)
		return
	}
	if !result.Valid {
		p.Line(ui.Fail, "%s has %d validation issue(s)", rules.File, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				p.Detail("- %s: %s", issue.Path, issue.Message)
			} else {
				p.Detail("- %s", issue.Message)
			}
		}
		return
	}
	p.Line(ui.OK, "%s is valid", rules.File)
}

// CheckIDF verifies the ESP-IDF installation against the minimum version.
func CheckIDF(p *ui.Printer, idfPath string, rules *config.Rules) {
	p.Section("ESP-IDF check:")
	if idfPath == "" {
		var err error
		idfPath, err = idf.PathFromEnv()
		if err != nil {
			p.Line(ui.Warn, "%v", err)
			p.Detail("run ESP-IDF's export.sh before building the generated projects")
			return
		}
	}
	if _, err := os.Stat(idfPath); err != nil {
		p.Line(ui.Fail, "%s: %v", idfPath, err)
		return
	}

	v, err := idf.DetectVersion(idfPath)
	if err != nil {
		p.Line(ui.Warn, "could not determine IDF version: %v", err)
		return
	}
	ok, err := idf.Satisfies(v, rules.MinIDFVersion)
	if err != nil {
		p.Line(ui.Fail, "%v", err)
		return
	}
	if !ok {
		p.Line(ui.Fail, "ESP-IDF %s does not satisfy %q", v, rules.MinIDFVersion)
		return
	}
	p.Line(ui.OK, "ESP-IDF %s at %s", v, idfPath)
}

// CheckGattCompiler verifies the tool the generated GATT rules invoke.
func CheckGattCompiler(p *ui.Printer, layout project.Layout, rules *config.Rules) {
	p.Section("GATT compiler check:")
	path := rules.ToolPath(layout.Root)
	if _, err := os.Stat(path); err != nil {
		p.Line(ui.Warn, "%s not found", path)
		p.Detail("examples with a .gatt file will fail to build")
		return
	}
	p.Line(ui.OK, "%s", path)
}

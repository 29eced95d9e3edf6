package config

import (
	"path/filepath"
	"slices"
	"strings"
)

// Built-in rule values for the BTstack ESP32 port.
const (
	DefaultSourceExt     = ".c"
	DefaultGattExt       = ".gatt"
	DefaultExamplesDir   = "../../example"
	DefaultTemplateDir   = "template"
	DefaultMinIDFVersion = ">= 4.0.0"
	DefaultGattCompiler  = "compile_gatt.py"
)

// DefaultExcluded are example-directory sources that are not standalone examples.
var DefaultExcluded = []string{"panu_demo.c", "sco_demo_util.c", "ant_test.c"}

// DefaultAudioExamples need the SCO demo helper compiled in.
var DefaultAudioExamples = []string{"hfp_ag_demo", "hfp_hf_demo", "hsp_ag_demo", "hsp_hs_demo"}

// DefaultCompanions are copied next to every audio example.
var DefaultCompanions = []string{"sco_demo_util.c", "sco_demo_util.h"}

// Rules is the effective generator configuration.
type Rules struct {
	SourceExt     string   `mapstructure:"source_ext" yaml:"source_ext"`
	GattExt       string   `mapstructure:"gatt_ext" yaml:"gatt_ext"`
	ExamplesDir   string   `mapstructure:"examples_dir" yaml:"examples_dir"`
	TemplateDir   string   `mapstructure:"template_dir" yaml:"template_dir"`
	Excluded      []string `mapstructure:"excluded" yaml:"excluded"`
	AudioExamples []string `mapstructure:"audio_examples" yaml:"audio_examples"`
	Companions    []string `mapstructure:"companions" yaml:"companions"`
	MinIDFVersion string   `mapstructure:"min_idf_version" yaml:"min_idf_version"`
	GattCompiler  string   `mapstructure:"gatt_compiler" yaml:"gatt_compiler"`

	// File is the config file the rules were read from, empty for defaults only.
	File string `mapstructure:"-" yaml:"-"`
}

// Defaults returns the built-in rules.
func Defaults() *Rules {
	return &Rules{
		SourceExt:     DefaultSourceExt,
		GattExt:       DefaultGattExt,
		ExamplesDir:   DefaultExamplesDir,
		TemplateDir:   DefaultTemplateDir,
		Excluded:      slices.Clone(DefaultExcluded),
		AudioExamples: slices.Clone(DefaultAudioExamples),
		Companions:    slices.Clone(DefaultCompanions),
		MinIDFVersion: DefaultMinIDFVersion,
		GattCompiler:  DefaultGattCompiler,
	}
}

// IsExcluded reports whether a source file name is on the exclusion list.
func (r *Rules) IsExcluded(fileName string) bool {
	return slices.Contains(r.Excluded, fileName)
}

// IsAudio reports whether an example needs the audio companion files.
func (r *Rules) IsAudio(example string) bool {
	return slices.Contains(r.AudioExamples, example)
}

// IsSource reports whether a file name carries the example source extension.
func (r *Rules) IsSource(fileName string) bool {
	return len(fileName) > len(r.SourceExt) && strings.HasSuffix(fileName, r.SourceExt)
}

// CompanionSources returns the companions that are build inputs.
func (r *Rules) CompanionSources() []string {
	var out []string
	for _, c := range r.Companions {
		if r.IsSource(c) {
			out = append(out, c)
		}
	}
	return out
}

// ExamplesPath resolves the examples directory against the port root.
func (r *Rules) ExamplesPath(root string) string {
	return resolve(root, r.ExamplesDir)
}

// TemplatePath resolves the template directory against the port root.
func (r *Rules) TemplatePath(root string) string {
	return resolve(root, r.TemplateDir)
}

// ToolPath returns the location of the GATT compiler inside the stack's
// tool directory, a sibling of the examples directory.
func (r *Rules) ToolPath(root string) string {
	return filepath.Join(filepath.Dir(r.ExamplesPath(root)), "tool", r.GattCompiler)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/btstack-tools/espgen/internal/config"
)

// namePattern accepts names that can appear unquoted in Make targets and
// CMake project() calls.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.+-]*$`)

// Example is a standalone demo source found in the examples directory.
type Example struct {
	// Name is the source file name without extension, e.g. "gap_inquiry".
	Name       string `json:"name"`
	SourcePath string `json:"source"`
	// HasAudio is set for demos that need the SCO companion sources.
	HasAudio bool `json:"audio"`
	// HasGatt is set when a <name>.gatt file sits beside the source.
	HasGatt  bool   `json:"gatt"`
	GattPath string `json:"gatt_path,omitempty"`
}

// Discover lists the examples in dir, sorted by name. Files without the
// source extension, directories and excluded names are skipped.
func Discover(dir string, rules *config.Rules) ([]Example, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading examples directory: %w", err)
	}

	var examples []Example
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !rules.IsSource(fileName) || rules.IsExcluded(fileName) {
			continue
		}

		name := strings.TrimSuffix(fileName, rules.SourceExt)
		if err := ValidateName(name); err != nil {
			return nil, err
		}

		ex := Example{
			Name:       name,
			SourcePath: filepath.Join(dir, fileName),
			HasAudio:   rules.IsAudio(name),
		}

		gattPath := filepath.Join(dir, name+rules.GattExt)
		if info, err := os.Stat(gattPath); err == nil && info.Mode().IsRegular() {
			ex.HasGatt = true
			ex.GattPath = gattPath
		}

		examples = append(examples, ex)
	}

	slices.SortFunc(examples, func(a, b Example) int {
		return strings.Compare(a.Name, b.Name)
	})
	return examples, nil
}

// ValidateName rejects example names that would need quoting in the
// generated build files.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w %q: must match pattern %s", ErrInvalidExampleName, name, namePattern)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btstack-tools/espgen/internal/branding"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// InvalidConfigError is returned by Load when the config file does not
// satisfy the rules schema.
type InvalidConfigError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			msgs = append(msgs, issue.Path+": "+issue.Message)
		} else {
			msgs = append(msgs, issue.Message)
		}
	}
	return fmt.Sprintf("config %s has %d validation issue(s): %s", e.Path, len(e.Issues), strings.Join(msgs, "; "))
}

// FilePath returns the default rules file location inside a port root.
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigFile())
}

// Resolve returns the config file that Load would read. An explicit file
// must exist; the default file is optional and found is false when absent.
func Resolve(root, explicit string) (path string, found bool, err error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", false, fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, true, nil
	}
	path = FilePath(root)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("config file %s: %w", path, err)
	}
	return path, true, nil
}

// Load builds the effective rules for a port root. Precedence, highest
// first: ESPGEN_* environment variables, the config file, built-in defaults.
func Load(root, explicit string) (*Rules, error) {
	path, found, err := Resolve(root, explicit)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Defaults())
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if found {
		result, err := ValidateFile(path)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, &InvalidConfigError{Path: path, Issues: result.Issues}
		}

		v.SetConfigFile(path)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	rules := &Rules{}
	if err := v.Unmarshal(rules); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	if found {
		rules.File = path
	}
	return rules, nil
}

func setDefaults(v *viper.Viper, d *Rules) {
	v.SetDefault("source_ext", d.SourceExt)
	v.SetDefault("gatt_ext", d.GattExt)
	v.SetDefault("examples_dir", d.ExamplesDir)
	v.SetDefault("template_dir", d.TemplateDir)
	v.SetDefault("excluded", d.Excluded)
	v.SetDefault("audio_examples", d.AudioExamples)
	v.SetDefault("companions", d.Companions)
	v.SetDefault("min_idf_version", d.MinIDFVersion)
	v.SetDefault("gatt_compiler", d.GattCompiler)
}

package idf

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// EnvPath is the environment variable ESP-IDF's export scripts set.
const EnvPath = "IDF_PATH"

const (
	versionTxt   = "version.txt"
	versionCMake = "tools/cmake/version.cmake"
)

// ErrNotConfigured is returned when IDF_PATH is unset.
var ErrNotConfigured = errors.New(EnvPath + " is not set")

var cmakeVersionLine = regexp.MustCompile(`^\s*set\s*\(\s*IDF_VERSION_(MAJOR|MINOR|PATCH)\s+(\d+)\s*\)`)

// PathFromEnv returns the IDF installation named by IDF_PATH.
func PathFromEnv() (string, error) {
	p := os.Getenv(EnvPath)
	if p == "" {
		return "", ErrNotConfigured
	}
	return p, nil
}

// DetectVersion reads the IDF release of the installation at idfPath.
// Release archives carry version.txt ("v5.1.2"); git checkouts are read
// from tools/cmake/version.cmake.
func DetectVersion(idfPath string) (*semver.Version, error) {
	data, err := os.ReadFile(filepath.Join(idfPath, versionTxt))
	if err == nil {
		return ParseVersion(strings.TrimSpace(string(data)))
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", versionTxt, err)
	}
	return versionFromCMake(filepath.Join(idfPath, filepath.FromSlash(versionCMake)))
}

// ParseVersion parses an IDF version string, tolerating a leading "v".
func ParseVersion(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing IDF version %q: %w", version, err)
	}
	return v, nil
}

// Satisfies reports whether v meets constraint. Pre-release and build
// suffixes of development checkouts are ignored.
func Satisfies(v *semver.Version, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}
	core := semver.New(v.Major(), v.Minor(), v.Patch(), "", "")
	return c.Check(core), nil
}

func versionFromCMake(path string) (*semver.Version, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading IDF version: %w", err)
	}
	defer f.Close()

	parts := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := cmakeVersionLine.FindStringSubmatch(scanner.Text()); m != nil {
			parts[m[1]] = m[2]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	major, ok := parts["MAJOR"]
	if !ok {
		return nil, fmt.Errorf("no IDF_VERSION_MAJOR in %s", path)
	}
	minor := parts["MINOR"]
	if minor == "" {
		minor = "0"
	}
	patch := parts["PATCH"]
	if patch == "" {
		patch = "0"
	}
	return ParseVersion(major + "." + minor + "." + patch)
}

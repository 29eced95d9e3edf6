package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/btstack-tools/espgen/internal/config"
)

// fixedTime is the generation timestamp used by every test generator.
var fixedTime = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// testTree is a synthetic BTstack checkout with an ESP32 port.
type testTree struct {
	StackRoot   string // <tmp>/btstack
	PortRoot    string // <tmp>/btstack/port/esp32
	ExamplesDir string // <tmp>/btstack/example
}

// setupTree creates a minimal stack layout: the port templates, a handful of
// examples (plain, GATT, audio), the companion files and the excluded files.
func setupTree(t *testing.T) *testTree {
	t.Helper()

	stack := filepath.Join(t.TempDir(), "btstack")
	tree := &testTree{
		StackRoot:   stack,
		PortRoot:    filepath.Join(stack, "port", "esp32"),
		ExamplesDir: filepath.Join(stack, "example"),
	}

	tmpl := filepath.Join(tree.PortRoot, "template")
	writeFile(t, filepath.Join(tmpl, "sdkconfig"), "CONFIG_BT_ENABLED=y\n")
	writeFile(t, filepath.Join(tmpl, "sdkconfig.esp32c3"), "CONFIG_IDF_TARGET=\"esp32c3\"\n")
	writeFile(t, filepath.Join(tmpl, "set_port.sh"), "#!/bin/sh\necho port\n")
	writeFile(t, filepath.Join(tmpl, "main", "main.c"), "int app_main(void){ return 0; }\n")
	writeFile(t, filepath.Join(tmpl, "main", "component.mk"), "#\n# Main component makefile.\n#\n")

	ex := tree.ExamplesDir
	writeFile(t, filepath.Join(ex, "gap_inquiry.c"), "/* gap_inquiry */\n")
	writeFile(t, filepath.Join(ex, "le_counter.c"), "/* le_counter */\n")
	writeFile(t, filepath.Join(ex, "le_counter.gatt"), "PRIMARY_SERVICE, GAP_SERVICE\n")
	writeFile(t, filepath.Join(ex, "hfp_ag_demo.c"), "/* hfp_ag_demo */\n")
	writeFile(t, filepath.Join(ex, "sco_demo_util.c"), "/* sco util */\n")
	writeFile(t, filepath.Join(ex, "sco_demo_util.h"), "/* sco util header */\n")
	writeFile(t, filepath.Join(ex, "panu_demo.c"), "/* excluded */\n")
	writeFile(t, filepath.Join(ex, "ant_test.c"), "/* excluded */\n")
	writeFile(t, filepath.Join(ex, "btstack_config.h"), "/* not a source */\n")
	writeFile(t, filepath.Join(ex, "orphan.gatt"), "/* gatt without source */\n")
	if err := os.MkdirAll(filepath.Join(ex, "sm_pairing_central.c"), 0755); err != nil {
		t.Fatal(err)
	}

	return tree
}

func (tt *testTree) generator(t *testing.T, suffix string, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	g, err := New(Layout{Root: tt.PortRoot, Suffix: suffix}, config.Defaults(), opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readGenerated(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// listTree returns every regular file below dir as a sorted slash path list.
func listTree(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", dir, err)
	}
	sort.Strings(files)
	return files
}

// snapshot maps every file below dir to its content.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, rel := range listTree(t, dir) {
		out[rel] = readGenerated(t, dir, rel)
	}
	return out
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}

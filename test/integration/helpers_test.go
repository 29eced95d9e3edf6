//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testStack holds paths into an isolated BTstack checkout.
type testStack struct {
	Root        string // <tmp>/btstack
	PortDir     string // port/esp32, holds template/
	ExamplesDir string // example/, read by the generator
	ToolDir     string // tool/, holds the GATT compiler
}

// setupStack creates a BTstack checkout shaped like the real one: an ESP32
// port with its templates and an example folder mixing classic, LE, audio
// and excluded demos.
func setupStack(t *testing.T) *testStack {
	t.Helper()

	root := filepath.Join(t.TempDir(), "btstack")
	s := &testStack{
		Root:        root,
		PortDir:     filepath.Join(root, "port", "esp32"),
		ExamplesDir: filepath.Join(root, "example"),
		ToolDir:     filepath.Join(root, "tool"),
	}

	tmpl := filepath.Join(s.PortDir, "template")
	writeFile(t, filepath.Join(tmpl, "sdkconfig"), "CONFIG_BT_ENABLED=y\nCONFIG_BTDM_CTRL_MODE_BTDM=y\n")
	writeFile(t, filepath.Join(tmpl, "sdkconfig.esp32c3"), "CONFIG_IDF_TARGET=\"esp32c3\"\nCONFIG_BT_ENABLED=y\n")
	writeFile(t, filepath.Join(tmpl, "set_port.sh"), "#!/bin/sh\nexport BTSTACK_PORT=esp32\n")
	writeFile(t, filepath.Join(tmpl, "main", "main.c"), "#include \"btstack_port_esp32.h\"\nint app_main(void){ return 0; }\n")
	writeFile(t, filepath.Join(tmpl, "main", "component.mk"), "#\n# \"main\" pseudo-component makefile.\n#\n")

	for _, name := range []string{
		"gap_inquiry", "spp_counter", "le_counter", "gatt_battery_query",
		"hfp_hf_demo", "hsp_ag_demo", "a2dp_sink_demo",
	} {
		writeFile(t, filepath.Join(s.ExamplesDir, name+".c"), "/* "+name+" */\n")
	}
	writeFile(t, filepath.Join(s.ExamplesDir, "le_counter.gatt"), "PRIMARY_SERVICE, GAP_SERVICE\n")
	writeFile(t, filepath.Join(s.ExamplesDir, "sco_demo_util.c"), "/* sco_demo_util */\n")
	writeFile(t, filepath.Join(s.ExamplesDir, "sco_demo_util.h"), "/* sco_demo_util.h */\n")
	writeFile(t, filepath.Join(s.ExamplesDir, "panu_demo.c"), "/* excluded */\n")
	writeFile(t, filepath.Join(s.ExamplesDir, "ant_test.c"), "/* excluded */\n")
	writeFile(t, filepath.Join(s.ExamplesDir, "btstack_config.h"), "")
	writeFile(t, filepath.Join(s.ExamplesDir, "Makefile.inc"), "")
	writeFile(t, filepath.Join(s.ToolDir, "compile_gatt.py"), "#!/usr/bin/env python\n")

	return s
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s unexpectedly contains %q.\nContents:\n%s", path, substr, string(data))
	}
}

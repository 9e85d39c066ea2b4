package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/treestat/internal/pathsep"
)

func makeTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]int{
		"a.txt":                       10,
		"b.jpg":                       20,
		filepath.Join("sub", "c.txt"): 5,
	}

	for name, size := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}

		if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := New("test").Command()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

type jsonResult struct {
	Mode  string `json:"mode"`
	Total int64  `json:"total"`
	Files int64  `json:"files"`
	Bytes int64  `json:"bytes"`
}

func decode(t *testing.T, out string) jsonResult {
	t.Helper()

	var result jsonResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}

	return result
}

func TestCountCommand(t *testing.T) {
	root := makeTree(t)

	out, _, err := execute(t, "count", "-x", "txt", "-o", "json", root)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	result := decode(t, out)
	if result.Mode != "count" || result.Total != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	out, _, err = execute(t, "count", "-x", "txt", "--recursive=false", "-o", "json", root)
	if err != nil {
		t.Fatalf("count top level: %v", err)
	}

	if result := decode(t, out); result.Total != 1 {
		t.Fatalf("top-level total = %d, want 1", result.Total)
	}
}

func TestSizeCommand(t *testing.T) {
	root := makeTree(t)

	out, _, err := execute(t, "size", "--ext", "txt", "--output", "json", root)
	if err != nil {
		t.Fatalf("size: %v", err)
	}

	result := decode(t, out)
	if result.Mode != "size" || result.Total != 15 || result.Bytes != 15 || result.Files != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSizeCommandTable(t *testing.T) {
	root := makeTree(t)

	out, _, err := execute(t, "size", root)
	if err != nil {
		t.Fatalf("size: %v", err)
	}

	for _, want := range []string{"Total files:", "3", "Total size:", "35 B (35 bytes)", "Complete:", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEnvironmentSuppliesDefaults(t *testing.T) {
	root := makeTree(t)
	t.Setenv("TREESTAT_RECURSIVE", "false")
	t.Setenv("TREESTAT_OUTPUT", "json")

	out, _, err := execute(t, "count", root)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if result := decode(t, out); result.Total != 2 {
		t.Fatalf("total = %d, want 2", result.Total)
	}
}

func TestEnvironmentExtensionList(t *testing.T) {
	root := makeTree(t)

	for _, value := range []string{"txt,jpg", "txt jpg", "txt, jpg"} {
		t.Setenv("TREESTAT_EXT", value)

		out, _, err := execute(t, "size", "-o", "json", root)
		if err != nil {
			t.Fatalf("size with TREESTAT_EXT=%q: %v", value, err)
		}

		if result := decode(t, out); result.Total != 35 || result.Files != 3 {
			t.Fatalf("TREESTAT_EXT=%q: got %+v, want 3 files / 35 bytes", value, result)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"txt,jpg", " md ", "", "go,"})
	want := []string{"txt", "jpg", "md", "go"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("splitList = %q, want %q", got, want)
	}
}

func TestInvalidFlags(t *testing.T) {
	root := makeTree(t)

	if _, _, err := execute(t, "count", "-o", "yaml", root); err == nil {
		t.Fatalf("expected error for unknown output format")
	}

	if _, _, err := execute(t, "count", "-d", "-1", root); err == nil {
		t.Fatalf("expected error for negative depth")
	}

	if _, _, err := execute(t, "count", filepath.Join(root, "missing")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestSepCommand(t *testing.T) {
	out, _, err := execute(t, "sep", `a/b\c`, "plain")
	if err != nil {
		t.Fatalf("sep: %v", err)
	}

	want := pathsep.Normalize(`a/b\c`) + "\nplain\n"
	if out != want {
		t.Fatalf("sep output = %q, want %q", out, want)
	}
}

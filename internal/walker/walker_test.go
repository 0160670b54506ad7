package walker

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTree creates the given relative files under dir
func writeTree(t *testing.T, dir string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, r)
	}
	return out
}

func TestCollectDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, []string{
		"b.ceres",
		"a.ceres",
		"notes.txt",
		"sub/c.ceres",
		".hidden.ceres",
		".git/d.ceres",
	})

	paths, err := Collect(dir, "*.ceres", false)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"a.ceres", "b.ceres", filepath.Join("sub", "c.ceres")}
	if got := rel(t, dir, paths); !reflect.DeepEqual(got, expected) {
		t.Errorf("Collect = %v, want %v", got, expected)
	}
}

func TestCollectIncludeHidden(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, []string{"a.ceres", ".hidden.ceres", ".sub/b.ceres"})

	paths, err := Collect(dir, "*.ceres", true)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{".hidden.ceres", filepath.Join(".sub", "b.ceres"), "a.ceres"}
	if got := rel(t, dir, paths); !reflect.DeepEqual(got, expected) {
		t.Errorf("Collect = %v, want %v", got, expected)
	}
}

func TestCollectSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, []string{"doc.ceres"})
	file := filepath.Join(dir, "doc.ceres")

	paths, err := Collect(file, "*.ceres", false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(paths, []string{file}) {
		t.Errorf("Collect = %v, want just the file", paths)
	}
}

func TestCollectMissingRoot(t *testing.T) {
	if _, err := Collect(filepath.Join(t.TempDir(), "nope"), "*.ceres", false); err == nil {
		t.Error("expected an error for a missing root")
	}
}

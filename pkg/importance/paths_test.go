package importance

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadPaths_ParsesYAML tests parsing a hand-written path file
func TestLoadPaths_ParsesYAML(t *testing.T) {
	content := `paths:
  - - {id: 0, weight: 0}
    - {id: 3, weight: 1.25}
    - {id: 7, weight: 2.5}
  - - {id: 4, weight: 0}
    - {id: 5, weight: 0.75}
`
	path := filepath.Join(t.TempDir(), "paths.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	paths, err := LoadPaths(path)
	if err != nil {
		t.Fatalf("LoadPaths failed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}
	if len(paths[0]) != 3 || len(paths[1]) != 2 {
		t.Fatalf("Unexpected path lengths: %d, %d", len(paths[0]), len(paths[1]))
	}
	if paths[0][1] != (PathNode{ID: 3, Weight: 1.25}) {
		t.Errorf("Unexpected path entry: %+v", paths[0][1])
	}
	if paths[1][1] != (PathNode{ID: 5, Weight: 0.75}) {
		t.Errorf("Unexpected path entry: %+v", paths[1][1])
	}
}

// TestSaveLoadPaths_RoundTrip tests that SavePaths inverts LoadPaths
func TestSaveLoadPaths_RoundTrip(t *testing.T) {
	want := []Path{
		{{ID: 0, Weight: 0}, {ID: 1, Weight: 1.5}},
		{{ID: 2, Weight: 0}, {ID: 3, Weight: 0.25}, {ID: 4, Weight: 0.5}},
	}

	path := filepath.Join(t.TempDir(), "paths.yaml")
	if err := SavePaths(want, path); err != nil {
		t.Fatalf("SavePaths failed: %v", err)
	}
	got, err := LoadPaths(path)
	if err != nil {
		t.Fatalf("LoadPaths failed: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Expected %d paths, got %d", len(want), len(got))
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("Path %d: expected %d entries, got %d", i, len(want[i]), len(got[i]))
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("Path %d entry %d: expected %+v, got %+v", i, j, want[i][j], got[i][j])
			}
		}
	}
}

// TestLoadPaths_MalformedYAML tests the parse error path
func TestLoadPaths_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("paths: [\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadPaths(path); err == nil {
		t.Fatal("Expected parse error for malformed YAML")
	}
}

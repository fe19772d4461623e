package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScopeCleanupRemovesTrackedFiles(t *testing.T) {
	dir := t.TempDir()
	scope, err := NewScope(dir, nil)
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}

	written, err := scope.WriteFile("prompt", "txt", []byte("hello"))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	allocated := scope.Path("chunk_0", "wav")
	if err := os.WriteFile(allocated, []byte("wav"), 0o644); err != nil {
		t.Fatalf("write allocated path: %v", err)
	}
	derived := filepath.Join(dir, "derived.json")
	if err := os.WriteFile(derived, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write derived: %v", err)
	}
	scope.Track(derived)

	scope.Cleanup()

	for _, path := range []string{written, allocated, derived} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed, stat err = %v", path, err)
		}
	}
}

func TestScopeCleanupIsIdempotent(t *testing.T) {
	scope, err := NewScope(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}
	// Allocated but never created on disk.
	scope.Path("never_written", "wav")
	scope.Cleanup()
	scope.Cleanup()
}

func TestScopePathsAreScopeUnique(t *testing.T) {
	dir := t.TempDir()
	a, err := NewScope(dir, nil)
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}
	b, err := NewScope(dir, nil)
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}
	if a.Path("x", "wav") == b.Path("x", "wav") {
		t.Fatal("two scopes produced colliding paths for the same label")
	}
}

func TestScopeCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "work")
	scope, err := NewScope(dir, nil)
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}
	if scope.Dir() != dir {
		t.Fatalf("unexpected dir %s", scope.Dir())
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected work dir created: %v", err)
	}
}

func TestScopeLabelSanitized(t *testing.T) {
	scope, err := NewScope(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}
	path := scope.Path("a label/with sep", "txt")
	base := filepath.Base(path)
	if strings.ContainsAny(base, " /") {
		t.Fatalf("label not sanitized: %q", base)
	}
}

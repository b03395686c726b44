package testutil

import (
	"path"
	"testing"

	"github.com/arthur-debert/repatch/pkg/filesystem"
	"github.com/arthur-debert/repatch/pkg/types"
)

// MemoryTree returns an in-memory filesystem holding files under root
func MemoryTree(t *testing.T, root string, files map[string]string) types.FS {
	t.Helper()

	fsys := filesystem.NewMemory()
	for rel, content := range files {
		p := path.Join(root, rel)
		if err := fsys.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create memory file %s: %v", p, err)
		}
	}
	return fsys
}

// ReadMemoryFile returns the content of p in fsys, failing the test on error
func ReadMemoryFile(t *testing.T, fsys types.FS, p string) string {
	t.Helper()

	data, err := fsys.ReadFile(p)
	if err != nil {
		t.Fatalf("Failed to read memory file %s: %v", p, err)
	}
	return string(data)
}

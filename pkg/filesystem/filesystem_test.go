// Test Type: Unit Test
// Description: Tests that both FS implementations behave the same for the operations repatch uses

package filesystem_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/repatch/pkg/filesystem"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystems(t *testing.T) {
	impls := map[string]func(t *testing.T) (types.FS, string){
		"os": func(t *testing.T) (types.FS, string) {
			return filesystem.NewOS(), t.TempDir()
		},
		"memory": func(t *testing.T) (types.FS, string) {
			return filesystem.NewMemory(), "/work"
		},
	}

	for name, newFS := range impls {
		t.Run(name, func(t *testing.T) {
			fsys, root := newFS(t)
			path := filepath.Join(root, "a.dart")

			require.NoError(t, fsys.WriteFile(path, []byte("void main() {}\n"), 0644))

			data, err := fsys.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "void main() {}\n", string(data))

			info, err := fsys.Stat(path)
			require.NoError(t, err)
			assert.False(t, info.IsDir())

			linfo, err := fsys.Lstat(path)
			require.NoError(t, err)
			assert.Equal(t, fs.FileMode(0), linfo.Mode()&fs.ModeSymlink)

			entries, err := fsys.ReadDir(root)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "a.dart", entries[0].Name())

			_, err = fsys.Stat(filepath.Join(root, "missing.dart"))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestAferoReadFileOnDirectory(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/dir", 0755))

	_, err := filesystem.NewAferoFS(mem).ReadFile("/dir")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestReadOnlyOS(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.dart")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	fsys := filesystem.NewReadOnlyOS()

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	assert.Error(t, fsys.WriteFile(path, []byte("changed"), 0644))
	assert.Error(t, fsys.WriteFile(path+".bak", []byte("changed"), 0644))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.NoFileExists(t, path+".bak")
}

func TestReadDirSorted(t *testing.T) {
	fsys := filesystem.NewMemory()
	for _, name := range []string{"/d/c.dart", "/d/a.dart", "/d/b.dart"} {
		require.NoError(t, fsys.WriteFile(name, []byte("x"), 0644))
	}

	entries, err := fsys.ReadDir("/d")
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	assert.Equal(t, []string{"a.dart", "b.dart", "c.dart"}, names)
}

package types

import (
	"io/fs"
)

// FS is the subset of filesystem operations a run needs: walking the
// root, reading targets and writing patched files and backups. Paths are
// native OS paths.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow symlinks; backends without links may Stat
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

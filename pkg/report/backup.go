package report

import (
	"os"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/types"
)

// BackupPath returns the sibling path that holds a file's original content
func BackupPath(path, suffix string) string {
	if suffix == "" {
		suffix = types.DefaultBackupSuffix
	}
	return path + suffix
}

// Commit writes updated over path. The first time a file is modified its
// original content is saved to BackupPath; an existing backup is never
// overwritten, so it always holds the content from before the first run.
// It reports whether a backup was created by this call.
func Commit(fs types.FS, path, original, updated, suffix string) (bool, error) {
	logger := logging.GetLogger("report.commit")

	mode := os.FileMode(0644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	backup := BackupPath(path, suffix)
	created := false
	if _, err := fs.Lstat(backup); err != nil {
		if !os.IsNotExist(err) {
			return false, errors.Wrapf(err, errors.ErrBackup, "cannot check backup %s", backup).
				WithDetail("path", path)
		}
		if err := fs.WriteFile(backup, []byte(original), mode); err != nil {
			return false, errors.Wrapf(err, errors.ErrBackup, "cannot write backup %s", backup).
				WithDetail("path", path)
		}
		created = true
		logger.Debug().Str("backup", backup).Msg("Backup created")
	}

	if err := fs.WriteFile(path, []byte(updated), mode); err != nil {
		return created, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}
	logger.Debug().Str("path", path).Bool("backupCreated", created).Msg("File written")
	return created, nil
}

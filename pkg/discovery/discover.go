// Package discovery enumerates the files a patch run applies to.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/filesystem"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/matchers"
	"github.com/arthur-debert/repatch/pkg/types"
)

// DefaultExtensions are the source extensions collected when none are configured
var DefaultExtensions = []string{".dart"}

// Target is a file selected for patching
type Target struct {
	// Path is the root-joined path used for I/O
	Path string
	// Rel is the forward-slash path relative to the root, as matched
	Rel string
}

// Options configures a collection pass
type Options struct {
	Root       string
	Matchers   matchers.Set
	Extensions []string
	FS         types.FS
}

// Collect walks root recursively and returns the files accepted by any
// matcher. Symbolic links are never followed or returned. A missing root
// yields an empty result.
func Collect(opts Options) ([]Target, error) {
	logger := logging.GetLogger("discovery")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	extensions := normalizeExtensions(opts.Extensions)

	info, err := fsys.Stat(opts.Root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("root", opts.Root).Msg("Root does not exist, nothing to collect")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat root %s", opts.Root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "root %s is not a directory", opts.Root)
	}

	w := &walker{
		fs:         fsys,
		root:       opts.Root,
		matchers:   opts.Matchers,
		extensions: extensions,
	}
	if err := w.walk(opts.Root, ""); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", opts.Root).
		Int("scanned", w.scanned).
		Int("matched", len(w.targets)).
		Msg("Collected target files")

	return w.targets, nil
}

// Sort orders targets by relative path for deterministic processing
func Sort(targets []Target) {
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Rel < targets[j].Rel
	})
}

type walker struct {
	fs         types.FS
	root       string
	matchers   matchers.Set
	extensions []string
	targets    []Target
	scanned    int
}

func (w *walker) walk(dir, rel string) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read root %s", dir)
		}
		logger := logging.GetLogger("discovery")
		logger.Warn().
			Err(err).
			Str("dir", dir).
			Msg("Skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		childPath := filepath.Join(dir, entry.Name())
		childRel := entry.Name()
		if rel != "" {
			childRel = rel + "/" + entry.Name()
		}

		if entry.IsDir() {
			if err := w.walk(childPath, childRel); err != nil {
				return err
			}
			continue
		}

		// Some FS backends only report link bits through Lstat.
		if info, err := w.fs.Lstat(childPath); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			continue
		}

		w.scanned++
		if !w.hasExtension(entry.Name()) {
			continue
		}
		if w.matchers.Matches(childRel) {
			w.targets = append(w.targets, Target{Path: childPath, Rel: childRel})
		}
	}
	return nil
}

func (w *walker) hasExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return DefaultExtensions
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

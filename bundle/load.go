package bundle

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Maximum number of files read at once when loading from disk
const readConcurrency = 10

// Load reads an entire directory tree from disk into a bundle.
//
// Directories are walked serially, while file contents are read
// concurrently.  Symbolic links are followed.  Entries that are neither
// regular files nor directories (sockets, devices, etc) are skipped.
func Load(dir string) (*Dir, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not calculate absolute path of %s", dir)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load bundle from %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("could not load bundle from %s, not a directory", root)
	}

	b := NewBuilder()
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(readConcurrency)

	err = fsWalk(root, func(ospath string, de *godirwalk.Dirent) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if ospath == root {
			return nil
		}

		rel, err := filepath.Rel(root, ospath)
		if err != nil {
			return errors.Wrapf(err, "could not relativize %s", ospath)
		}
		rel = filepath.ToSlash(rel)

		mode, err := modeOf(ospath, de)
		if err != nil {
			return err
		}

		switch {
		case mode.IsDir():
			return b.AddDir(rel)
		case mode.IsRegular():
			g.Go(func() error {
				contents, err := os.ReadFile(ospath)
				if err != nil {
					return errors.Wrapf(err, "could not read %s", ospath)
				}
				return b.AddFile(rel, contents)
			})
		}

		return nil
	})

	// Always wait, so no reads are left running.  A failed read cancels the
	// walk, so the group's error is the cause whenever there is one.
	if werr := g.Wait(); werr != nil {
		err = werr
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not load bundle from %s", root)
	}

	return b.Build()
}

// Symbolic links need a stat to find out what they point to
func modeOf(ospath string, de *godirwalk.Dirent) (fs.FileMode, error) {
	if !de.IsSymlink() {
		return de.ModeType(), nil
	}

	info, err := os.Stat(ospath)
	if err != nil {
		return 0, errors.Wrapf(err, "could not follow symbolic link %s", ospath)
	}

	return info.Mode(), nil
}

func fsWalk(dir string, f godirwalk.WalkFunc) error {
	return godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(ospath string, dirent *godirwalk.Dirent) error {
			err := f(ospath, dirent)
			if err != nil {
				return errors.Wrap(err, "terminating walk due to error")
			}
			return nil
		},
		ErrorCallback: func(ospath string, err error) godirwalk.ErrorAction {
			return godirwalk.Halt
		},
		Unsorted:            true,
		FollowSymbolicLinks: true,
	})
}

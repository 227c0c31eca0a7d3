package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/birkland/servefs"
	"github.com/birkland/servefs/fspath"
	"github.com/pkg/errors"
)

// Driver serves the files underneath a directory on the local filesystem.
type Driver struct {
	root string
}

// NewDriver initializes a new filesystem driver serving the given directory.
//
// The directory is canonicalized once (made absolute, with symbolic links
// resolved), and the canonical path is the containment boundary for every
// request.  It is an error if the directory does not exist, cannot be
// resolved, or is not a directory.
func NewDriver(dir string) (*Driver, error) {
	root, err := Canonicalize(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not initialize driver for %s", dir)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat root %s", root)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Driver{root: root}, nil
}

// Root returns the canonical root directory
func (d *Driver) Root() string {
	return d.root
}

// Resolve maps a request segment onto a file underneath the root directory.
//
// Segments that would land outside the root after normalization are
// Forbidden; no file is read for them.  Otherwise the file is read, and its
// contents returned, or NotFound if there is no such file.
func (d *Driver) Resolve(ctx context.Context, segment string) (servefs.Content, error) {
	candidate, contained := fspath.Candidate(d.root, segment)
	if !contained {
		return servefs.Denied(), nil
	}

	return ReadFile(ctx, candidate)
}

// Canonicalize returns the absolute form of the given path, with all
// symbolic links resolved.  The path must exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not calculate absolute path of %s", path)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, "could not canonicalize %s", abs)
	}

	return canonical, nil
}

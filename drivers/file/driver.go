package file

import (
	"context"

	"github.com/birkland/servefs"
	"github.com/birkland/servefs/drivers/fs"
	"github.com/pkg/errors"
)

// Driver serves a single file
type Driver struct {
	path string
}

// NewDriver initializes a driver for the file at the given path.  The path is
// canonicalized once, here; it is an error if that is not possible.
func NewDriver(path string) (*Driver, error) {
	canonical, err := fs.Canonicalize(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not initialize driver for %s", path)
	}

	return &Driver{path: canonical}, nil
}

// Path returns the canonical path of the served file
func (d *Driver) Path() string {
	return d.path
}

// Resolve reads the served file.  The segment is ignored.
func (d *Driver) Resolve(ctx context.Context, _ string) (servefs.Content, error) {
	return fs.ReadFile(ctx, d.path)
}

package bundle

import (
	"io/fs"

	"github.com/pkg/errors"
)

// FromFS copies the tree rooted at root within fsys into a bundle.  This is the
// usual way to serve files compiled into the binary:
//
//	//go:embed static
//	var static embed.FS
//
//	tree, err := bundle.FromFS(static, "static")
//
// An empty root, or ".", copies all of fsys.
func FromFS(fsys fs.FS, root string) (*Dir, error) {
	if root != "" && root != "." {
		sub, err := fs.Sub(fsys, root)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open %s", root)
		}
		fsys = sub
	}

	info, err := fs.Stat(fsys, ".")
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat bundle root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("bundle root %s is not a directory", root)
	}

	b := NewBuilder()
	err = fs.WalkDir(fsys, ".", func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if p == "." {
			return nil
		}

		if de.IsDir() {
			return b.AddDir(p)
		}

		if !de.Type().IsRegular() {
			return nil
		}

		contents, err := fs.ReadFile(fsys, p)
		if err != nil {
			return errors.Wrapf(err, "could not read %s", p)
		}

		return b.AddFile(p, contents)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not load bundle from %s", root)
	}

	return b.Build()
}

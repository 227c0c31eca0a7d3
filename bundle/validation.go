package bundle

import (
	"fmt"
	"path"
	"strings"
)

// Validate verifies that a tree is internally consistent.  Trees produced by a
// Builder always are; Validate exists for trees assembled by other means,
// and as a check on loaders.
//
// Internally consistent means:
//
// Every name is non-empty, is neither "." nor "..", and contains no solidus.
//
// The path of every child is its parent's path joined with its name.
//
// No name appears twice within a directory, whether as a file or directory.
//
// Children are sorted by name.
func (d *Dir) Validate() error {
	seen := make(map[string]bool, len(d.dirs)+len(d.files))

	check := func(p string, i int, prev string) error {
		name := path.Base(p)
		if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
			return fmt.Errorf("invalid name in %q", p)
		}

		if p != join(d.path, name) {
			return fmt.Errorf("%q is not a child of %q", p, d.path)
		}

		if seen[name] {
			return fmt.Errorf("duplicate name %q in %q", name, d.path)
		}
		seen[name] = true

		if i > 0 && prev >= p {
			return fmt.Errorf("%q is out of order in %q", p, d.path)
		}

		return nil
	}

	for i, sub := range d.dirs {
		var prev string
		if i > 0 {
			prev = d.dirs[i-1].path
		}
		if err := check(sub.path, i, prev); err != nil {
			return err
		}
	}

	for i, f := range d.files {
		var prev string
		if i > 0 {
			prev = d.files[i-1].path
		}
		if err := check(f.path, i, prev); err != nil {
			return err
		}
	}

	for _, sub := range d.dirs {
		if err := sub.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

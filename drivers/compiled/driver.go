package compiled

import (
	"context"

	"github.com/birkland/servefs"
	"github.com/birkland/servefs/bundle"
	"github.com/birkland/servefs/fspath"
)

// Driver serves the files in a bundle.  Drivers are small values; copies
// share the same underlying tree.
type Driver struct {
	tree      *bundle.Dir
	indexFile string
}

// New creates a driver serving the given (non-nil) tree, without an index
// file.
func New(tree *bundle.Dir) Driver {
	return Driver{tree: tree}
}

// WithIndexFile returns a copy of the driver that answers requests for a
// directory with the file of the given name directly inside it, if present.
// An empty name disables index files.  The receiver is not modified.
func (d Driver) WithIndexFile(name string) Driver {
	d.indexFile = name
	return d
}

// IndexFile returns the configured index file name, if any
func (d Driver) IndexFile() string {
	return d.indexFile
}

// Tree returns the served tree
func (d Driver) Tree() *bundle.Dir {
	return d.tree
}

// Lookup finds the entry at the given bundle path.  The empty path is the root
// of the tree.  A directory at the path takes precedence over a file.
func (d Driver) Lookup(path string) (bundle.Entry, bool) {
	if path == "" {
		return bundle.DirEntry(d.tree), true
	}

	if dir, ok := d.tree.GetDir(path); ok {
		return bundle.DirEntry(dir), true
	}

	if file, ok := d.tree.GetFile(path); ok {
		return bundle.FileEntry(file), true
	}

	return bundle.Entry{}, false
}

// Resolve serves the file at the given segment, or the index file of the
// directory at that segment.  Anything else is NotFound.  The error is
// always nil.
func (d Driver) Resolve(_ context.Context, segment string) (servefs.Content, error) {
	entry, ok := d.Lookup(fspath.TrimSeparators(segment))
	if !ok {
		return servefs.Missing(), nil
	}

	switch entry.Type {
	case servefs.File:
		return serve(entry.File), nil
	case servefs.Dir:
		if d.indexFile == "" {
			return servefs.Missing(), nil
		}
		if index, ok := entry.Dir.File(d.indexFile); ok {
			return serve(index), nil
		}
	}

	return servefs.Missing(), nil
}

// Bodies share the bundle's bytes; the capacity is capped so that appending to
// one cannot write into the bundle.
func serve(f *bundle.File) servefs.Content {
	body := f.Contents()
	return servefs.Found(body[:len(body):len(body)], servefs.ContentType(f.Path()))
}

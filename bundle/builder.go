package bundle

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"
)

// Builder assembles a bundle.  It is safe for concurrent use, so loaders may
// add files from several goroutines.  A builder produces exactly one tree;
// once Build has been called, further additions fail.
type Builder struct {
	mu    sync.Mutex
	root  *Dir
	dirs  map[string]*Dir
	files map[string]*File
	built bool
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	root := &Dir{}
	return &Builder{
		root:  root,
		dirs:  map[string]*Dir{"": root},
		files: make(map[string]*File),
	}
}

// AddDir adds a directory at the given path, along with any missing parents.
// Adding a directory that already exists is not an error.
func (b *Builder) AddDir(p string) error {
	if err := checkPath(p); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return fmt.Errorf("bundle already built, cannot add %s", p)
	}

	_, err := b.mkdirs(p)
	return err
}

// AddFile adds a file at the given path, along with any missing parent
// directories.  The builder takes ownership of contents.  It is an error to
// add the same file twice, or a file where a directory already is.
func (b *Builder) AddFile(p string, contents []byte) error {
	if err := checkPath(p); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return fmt.Errorf("bundle already built, cannot add %s", p)
	}

	if _, exists := b.files[p]; exists {
		return fmt.Errorf("duplicate file %s", p)
	}

	if _, exists := b.dirs[p]; exists {
		return fmt.Errorf("cannot add file %s, it is a directory", p)
	}

	parent, err := b.mkdirs(path.Dir(p))
	if err != nil {
		return err
	}

	f := &File{path: p, contents: contents}
	parent.files = append(parent.files, f)
	b.files[p] = f

	return nil
}

// Build finishes the bundle and returns its root directory.
func (b *Builder) Build() (*Dir, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return nil, fmt.Errorf("bundle already built")
	}
	b.built = true

	for _, d := range b.dirs {
		sort.Slice(d.dirs, func(i, j int) bool { return d.dirs[i].path < d.dirs[j].path })
		sort.Slice(d.files, func(i, j int) bool { return d.files[i].path < d.files[j].path })
	}

	return b.root, nil
}

// Creates the directory p and any missing parents, returning p.
// Must be called with the lock held.
func (b *Builder) mkdirs(p string) (*Dir, error) {
	if p == "." {
		p = ""
	}

	if d, ok := b.dirs[p]; ok {
		return d, nil
	}

	if _, isFile := b.files[p]; isFile {
		return nil, fmt.Errorf("cannot add directory %s, it is a file", p)
	}

	parent, err := b.mkdirs(path.Dir(p))
	if err != nil {
		return nil, err
	}

	d := &Dir{path: p}
	parent.dirs = append(parent.dirs, d)
	b.dirs[p] = d

	return d, nil
}

// Paths must be relative, solidus delimited, and free of ".", ".." and empty
// elements
func checkPath(p string) error {
	if p == "." || !fs.ValidPath(p) {
		return fmt.Errorf("invalid bundle path %q", p)
	}

	return nil
}

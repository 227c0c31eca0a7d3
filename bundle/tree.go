package bundle

import (
	"path"
	"sort"
	"strings"

	"github.com/birkland/servefs"
)

// File is a file within a bundle, with its contents resident in memory.
type File struct {
	path     string
	contents []byte
}

// Path returns the bundle relative path of the file
func (f *File) Path() string {
	return f.path
}

// Name returns the last element of the file's path
func (f *File) Name() string {
	return path.Base(f.path)
}

// Contents returns the file's bytes.  The returned slice is shared by every
// reader of the bundle and must not be modified.
func (f *File) Contents() []byte {
	return f.contents
}

// Dir is a directory within a bundle.  Children are kept sorted by name.
type Dir struct {
	path  string
	dirs  []*Dir
	files []*File
}

// Path returns the bundle relative path of the directory; the root's path is
// empty.
func (d *Dir) Path() string {
	return d.path
}

// Name returns the last element of the directory's path, or the empty string
// for the root.
func (d *Dir) Name() string {
	if d.path == "" {
		return ""
	}
	return path.Base(d.path)
}

// Dirs returns the immediate subdirectories, sorted by name
func (d *Dir) Dirs() []*Dir {
	return append([]*Dir(nil), d.dirs...)
}

// Files returns the immediate files, sorted by name
func (d *Dir) Files() []*File {
	return append([]*File(nil), d.files...)
}

// Dir finds an immediate subdirectory by name
func (d *Dir) Dir(name string) (*Dir, bool) {
	i := sort.Search(len(d.dirs), func(i int) bool { return d.dirs[i].Name() >= name })
	if i < len(d.dirs) && d.dirs[i].Name() == name {
		return d.dirs[i], true
	}
	return nil, false
}

// File finds an immediate file by name
func (d *Dir) File(name string) (*File, bool) {
	i := sort.Search(len(d.files), func(i int) bool { return d.files[i].Name() >= name })
	if i < len(d.files) && d.files[i].Name() == name {
		return d.files[i], true
	}
	return nil, false
}

// GetDir finds a directory anywhere beneath d, given its path relative to d.
//
// Each solidus delimited element of the path must match a directory name
// exactly.  Empty elements are ignored, while "." and ".." are treated as
// literal names, and therefore never match.  A path with no elements finds
// nothing.
func (d *Dir) GetDir(p string) (*Dir, bool) {
	elements := split(p)
	if len(elements) == 0 {
		return nil, false
	}

	return d.descend(elements)
}

// GetFile finds a file anywhere beneath d, given its path relative to d.
// Path elements are matched as in GetDir.
func (d *Dir) GetFile(p string) (*File, bool) {
	elements := split(p)
	if len(elements) == 0 {
		return nil, false
	}

	parent, ok := d.descend(elements[:len(elements)-1])
	if !ok {
		return nil, false
	}

	return parent.File(elements[len(elements)-1])
}

func (d *Dir) descend(elements []string) (*Dir, bool) {
	dir := d
	for _, name := range elements {
		next, ok := dir.Dir(name)
		if !ok {
			return nil, false
		}
		dir = next
	}
	return dir, true
}

// Entries returns the immediate children of d: directories first, then files,
// each sorted by name.
func (d *Dir) Entries() []Entry {
	entries := make([]Entry, 0, len(d.dirs)+len(d.files))
	for _, sub := range d.dirs {
		entries = append(entries, DirEntry(sub))
	}
	for _, f := range d.files {
		entries = append(entries, FileEntry(f))
	}
	return entries
}

// Walk visits d and everything beneath it, parents before their children.
// Walking stops at the first error returned by f, which is then returned.
func (d *Dir) Walk(f func(Entry) error) error {
	if err := f(DirEntry(d)); err != nil {
		return err
	}

	for _, sub := range d.dirs {
		if err := sub.Walk(f); err != nil {
			return err
		}
	}

	for _, file := range d.files {
		if err := f(FileEntry(file)); err != nil {
			return err
		}
	}

	return nil
}

// Entry is either a File or a Dir, as indicated by its Type.  Only the field
// matching the type is set.
type Entry struct {
	Type servefs.Type
	Dir  *Dir
	File *File
}

// DirEntry wraps a directory as an Entry
func DirEntry(d *Dir) Entry {
	return Entry{Type: servefs.Dir, Dir: d}
}

// FileEntry wraps a file as an Entry
func FileEntry(f *File) Entry {
	return Entry{Type: servefs.File, File: f}
}

// Path returns the bundle relative path of the entry
func (e Entry) Path() string {
	switch e.Type {
	case servefs.Dir:
		return e.Dir.Path()
	case servefs.File:
		return e.File.Path()
	default:
		return ""
	}
}

func split(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

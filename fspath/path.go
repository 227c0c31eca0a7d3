package fspath

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	curDir    = "."
	parentDir = ".."
)

func isSeparator(r rune) bool {
	return r == '/' || (r < 0x80 && os.IsPathSeparator(uint8(r)))
}

// TrimSeparators removes any leading separators from a path segment.
// Routers commonly hand over wildcard values with a leading solidus intact.
func TrimSeparators(segment string) string {
	return strings.TrimLeftFunc(segment, isSeparator)
}

// Components splits a path segment into its components.  Both the solidus and
// the host separator delimit components; empty components (as in "a//b" or a
// trailing separator) are dropped.
func Components(segment string) []string {
	return strings.FieldsFunc(segment, isSeparator)
}

// Join symbolically applies a request segment to root, without touching the
// filesystem.  "." components are skipped, ".." pops the last element of the
// working path, and anything else is appended.  Popping is not bounded by
// root: the result may lie anywhere, and callers must check it with Contains.
func Join(root, segment string) string {
	p := root
	for _, c := range Components(TrimSeparators(segment)) {
		switch {
		case c == curDir:
			continue
		case c == parentDir:
			p = filepath.Dir(p)
		case filepath.VolumeName(c) != "":
			// A volume replaces everything before it
			p = c
		default:
			p = filepath.Join(p, c)
		}
	}
	return p
}

// Contains reports whether p is root, or has root as a component-wise prefix.
// Both are expected to be clean, absolute paths.
func Contains(root, p string) bool {
	if p == root {
		return true
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(p, prefix)
}

// Candidate joins segment onto root and checks that the result is contained
// in root.  The check is made against the final path only, so a segment that
// wanders above root and comes back is acceptable.
func Candidate(root, segment string) (candidate string, contained bool) {
	candidate = Join(root, segment)
	return candidate, Contains(root, candidate)
}

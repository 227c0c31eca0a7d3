// Package fspath contains the path arithmetic used to map untrusted request
// segments onto locations beneath a filesystem root.
//
// Nothing here touches the filesystem.  Segments are normalized symbolically
// (see Join), and containment is decided by a final prefix check against the
// root (see Contains) that does not depend on how the working path moved while
// the segment was being applied.
package fspath

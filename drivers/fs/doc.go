// Package fs provides a driver serving files from a directory on the local
// filesystem.
//
// Request segments are normalized against the canonical root directory, and
// anything that would land outside of it is refused before the filesystem is
// consulted.  Files are read on every request; nothing is cached.
package fs

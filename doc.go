// Package servefs resolves request paths to static content held in a directory
// on disk, a single file, or an in-memory bundle of files.
//
// Content is provided by one of several Resolver implementations.  See the
// individual drivers under drivers/ for more information.  Every resolver maps
// a relative, untrusted path segment to a Content value carrying one of the
// OK, NotFound or Forbidden statuses, and returns an error only for unexpected
// I/O failures.
package servefs

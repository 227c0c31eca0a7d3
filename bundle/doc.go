// Package bundle contains an immutable, in-memory tree of files and
// directories: the content served by the compiled driver.
//
// Trees are put together with a Builder, either directly or by one of the
// loaders (FromFS for embed.FS and other fs.FS implementations, Load for a
// directory on disk, or the s3bundle subpackage).  Once built, no entry is ever
// added, removed or changed, so a single tree can be shared by reference between
// any number of readers without locking.
//
// Paths within a bundle are relative, solidus delimited, and never contain "."
// or ".." elements.  The root directory has the empty path.
package bundle

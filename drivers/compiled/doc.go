// Package compiled provides a driver serving an in-memory bundle of files,
// typically one compiled into the binary with go:embed and loaded once at
// start-up.
//
// Lookups never touch the filesystem and never fail with an error.  Unlike
// the fs driver, request segments are not normalized: "." and ".." are
// literal names that match nothing, so there is no way to address anything
// outside of the bundle and no containment check is needed.
package compiled

// Package resolv is responsible for invoking the correct driver for a kind of location.
// Callers describe what they want served (a directory, a single file, a bundle on disk, or
// a bundle in S3) and get back a servefs.Resolver, without needing to know about the drivers.
package resolv

// Package file provides a driver that serves one fixed file for every
// request, whatever path was asked for.
package file

// Package resolv parses the textual location and mount references given on the
// command line.
package resolv

import (
	"fmt"
	"strings"

	"github.com/birkland/servefs/resolv"
)

// Location is a parsed KIND:LOCATION reference
type Location struct {
	Kind resolv.Kind
	Path string
}

// Mount places a location under a URL route
type Mount struct {
	Route string
	Location
}

// ParseLocation parses a KIND:LOCATION reference, e.g. dir:/srv/static or
// s3:bucket/prefix.  Only the first colon separates the kind, so locations
// may contain colons themselves.
func ParseLocation(ref string) (Location, error) {
	kind, path, ok := strings.Cut(ref, ":")
	if !ok {
		return Location{}, fmt.Errorf("location '%s' is not of the form KIND:LOCATION", ref)
	}

	k, err := resolv.ParseKind(kind)
	if err != nil {
		return Location{}, err
	}

	if path == "" {
		return Location{}, fmt.Errorf("no location given in '%s'", ref)
	}

	return Location{Kind: k, Path: path}, nil
}

// ParseMount parses a ROUTE=KIND:LOCATION reference, e.g. /static=dir:/srv/static.
// Routes are normalized to start with, and never end in, a solidus; the
// root route is "/".
func ParseMount(ref string) (Mount, error) {
	route, loc, ok := strings.Cut(ref, "=")
	if !ok {
		return Mount{}, fmt.Errorf("mount '%s' is not of the form ROUTE=KIND:LOCATION", ref)
	}

	if strings.ContainsAny(route, "*{}") {
		return Mount{}, fmt.Errorf("route '%s' may not contain patterns", route)
	}

	location, err := ParseLocation(loc)
	if err != nil {
		return Mount{}, err
	}

	return Mount{
		Route:    normalizeRoute(route),
		Location: location,
	}, nil
}

func normalizeRoute(route string) string {
	return "/" + strings.Trim(route, "/")
}

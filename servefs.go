package servefs

import (
	"context"
	"strings"
)

// Status names the outcome of resolving a path
type Status int

// Resolution outcomes.  Unknown is never produced by a resolver.
const (
	Unknown Status = iota
	OK
	NotFound
	Forbidden
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case NotFound:
		return "NotFound"
	case Forbidden:
		return "Forbidden"
	default:
		return "Unknown"
	}
}

// ParseStatus parses the string form of a Status, ignoring case.
// Unrecognized values parse as Unknown.
func ParseStatus(s string) Status {
	for _, st := range []Status{OK, NotFound, Forbidden} {
		if strings.EqualFold(s, st.String()) {
			return st
		}
	}
	return Unknown
}

// Type is the kind of an entry in a virtual file tree
type Type int

// Entry types
const (
	_ Type = iota
	File
	Dir
)

func (t Type) String() string {
	switch t {
	case File:
		return "file"
	case Dir:
		return "dir"
	default:
		return "unknown"
	}
}

// ParseType parses the string form of a Type, ignoring case.
// Unrecognized values parse as the zero Type.
func ParseType(s string) Type {
	switch strings.ToLower(s) {
	case "file":
		return File
	case "dir":
		return Dir
	default:
		return 0
	}
}

// Content is the result of resolving a path.  Body and ContentType are only
// meaningful when Status is OK; an empty ContentType means none could be
// inferred.
//
// Body may be shared with the resolver (the compiled driver hands out the
// bundle's own bytes), and must not be modified.
type Content struct {
	Status      Status
	Body        []byte
	ContentType string
}

// Found returns OK content
func Found(body []byte, contentType string) Content {
	return Content{
		Status:      OK,
		Body:        body,
		ContentType: contentType,
	}
}

// Missing returns NotFound content
func Missing() Content {
	return Content{Status: NotFound}
}

// Denied returns Forbidden content
func Denied() Content {
	return Content{Status: Forbidden}
}

// Resolver maps a relative path segment onto content.
//
// Statuses cover every expected outcome, including requests that try to
// escape the resolver's root.  A non-nil error means an unexpected I/O failure
// that the caller should treat as fatal for the request.
//
// Resolvers are immutable once constructed and safe for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, segment string) (Content, error)
}

// ResolverFunc is a function that can be used to satisfy the Resolver interface
type ResolverFunc func(ctx context.Context, segment string) (Content, error)

// Resolve calls f(ctx, segment)
func (f ResolverFunc) Resolve(ctx context.Context, segment string) (Content, error) {
	return f(ctx, segment)
}

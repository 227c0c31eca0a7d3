package resolv

import (
	"context"
	"fmt"
	"strings"

	"github.com/birkland/servefs"
	"github.com/birkland/servefs/bundle"
	"github.com/birkland/servefs/bundle/s3bundle"
	"github.com/birkland/servefs/drivers/compiled"
	"github.com/birkland/servefs/drivers/file"
	"github.com/birkland/servefs/drivers/fs"
	"github.com/pkg/errors"
)

// Kind is the kind of location a resolver serves from
type Kind int

// Location kinds
const (
	_ Kind = iota

	// Dir serves files under a directory, read on every request
	Dir

	// File serves a single file for every segment
	File

	// Bundle serves a directory loaded into memory once
	Bundle

	// S3 serves objects under an S3 bucket/prefix, loaded into memory once
	S3
)

var kinds = map[Kind]string{
	Dir:    "dir",
	File:   "file",
	Bundle: "bundle",
	S3:     "s3",
}

func (k Kind) String() string {
	if name, ok := kinds[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind parses a kind from its name, ignoring case
func ParseKind(name string) (Kind, error) {
	for k, n := range kinds {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown location kind '%s'", name)
}

// Config describes a resolver to open
type Config struct {
	Kind     Kind
	Location string

	// IndexFile is served for directories of a Bundle or S3 location.  Empty disables
	// index files.
	IndexFile string

	// S3 is the client used for S3 locations
	S3 s3bundle.Client
}

// Open builds the resolver for the configured location.  Bundles are loaded
// entirely before Open returns.
func Open(ctx context.Context, cfg Config) (servefs.Resolver, error) {
	switch cfg.Kind {
	case Dir:
		d, err := fs.NewDriver(cfg.Location)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open directory %s", cfg.Location)
		}
		return d, nil
	case File:
		d, err := file.NewDriver(cfg.Location)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open file %s", cfg.Location)
		}
		return d, nil
	case Bundle:
		tree, err := bundle.Load(cfg.Location)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load bundle %s", cfg.Location)
		}
		return compiled.New(tree).WithIndexFile(cfg.IndexFile), nil
	case S3:
		if cfg.S3 == nil {
			return nil, fmt.Errorf("no S3 client given for %s", cfg.Location)
		}
		bucket, prefix, err := SplitBucket(cfg.Location)
		if err != nil {
			return nil, err
		}
		tree, err := s3bundle.Load(ctx, cfg.S3, bucket, prefix)
		if err != nil {
			return nil, err
		}
		return compiled.New(tree).WithIndexFile(cfg.IndexFile), nil
	default:
		return nil, fmt.Errorf("cannot open location of kind %s", cfg.Kind)
	}
}

// SplitBucket splits an S3 location of the form bucket[/prefix] into its
// bucket and key prefix.  A leading s3:// is allowed.
func SplitBucket(location string) (bucket, prefix string, err error) {
	location = strings.TrimPrefix(location, "s3://")
	bucket, prefix, _ = strings.Cut(location, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("no bucket in S3 location '%s'", location)
	}
	return bucket, prefix, nil
}

// Package s3bundle loads bundles from objects stored in S3, or an S3
// compatible service.
//
// Every object under a key prefix becomes a file in the bundle, at its key
// relative to the prefix.  Keys ending in a solidus (as created by most
// consoles for "folders") become directories.
package s3bundle

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/birkland/servefs/bundle"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Maximum number of objects fetched at once
const fetchConcurrency = 10

// Client is the subset of *s3.Client used for loading bundles
type Client interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Load reads every object under prefix in the given bucket into a bundle.
// Listing is paged; object contents are fetched concurrently.  Any failure,
// including a key that cannot be represented as a bundle path, fails the
// entire load.
func Load(ctx context.Context, client Client, bucket, prefix string) (*bundle.Dir, error) {
	prefix = normalizePrefix(prefix)

	b := bundle.NewBuilder()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	pages := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	err := func() error {
		for pages.HasMorePages() {
			page, err := pages.NextPage(gctx)
			if err != nil {
				return errors.Wrapf(err, "could not list s3://%s/%s", bucket, prefix)
			}

			for _, obj := range page.Contents {
				key := aws.ToString(obj.Key)
				rel := strings.TrimPrefix(key, prefix)

				switch {
				case rel == "":
					continue
				case strings.HasSuffix(rel, "/"):
					if err := b.AddDir(strings.TrimSuffix(rel, "/")); err != nil {
						return errors.Wrapf(err, "could not add directory for key %s", key)
					}
				default:
					g.Go(func() error {
						return fetch(gctx, client, b, bucket, key, rel)
					})
				}
			}
		}
		return nil
	}()

	// Always wait, so no fetches are left running.  A failed fetch cancels
	// the listing, so the group's error is the cause whenever there is one.
	if werr := g.Wait(); werr != nil {
		err = werr
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not load bundle from s3://%s/%s", bucket, prefix)
	}

	return b.Build()
}

func fetch(ctx context.Context, client Client, b *bundle.Builder, bucket, key, rel string) error {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrapf(err, "could not get s3://%s/%s", bucket, key)
	}
	defer out.Body.Close()

	contents, err := io.ReadAll(out.Body)
	if err != nil {
		return errors.Wrapf(err, "could not read s3://%s/%s", bucket, key)
	}

	return errors.Wrapf(b.AddFile(rel, contents), "could not add file for key %s", key)
}

// Prefixes are taken as directories: "site" and "/site/" both mean "site/"
func normalizePrefix(prefix string) string {
	prefix = strings.TrimLeft(prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

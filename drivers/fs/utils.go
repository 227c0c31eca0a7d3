package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/birkland/servefs"
	"github.com/pkg/errors"
)

// ReadFile reads the file at the given path into OK content, inferring its
// content type from the file extension.
//
// A file that does not exist is NotFound, as is a path naming a directory, or
// running through a regular file as if it were a directory.  Any other
// failure is returned as an error.  A context that is already done stops the
// read before the filesystem is touched.
func ReadFile(ctx context.Context, path string) (servefs.Content, error) {
	if err := ctx.Err(); err != nil {
		return servefs.Content{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		if isNotExist(err) {
			return servefs.Missing(), nil
		}
		return servefs.Content{}, errors.Wrapf(err, "could not open %s", path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return servefs.Content{}, errors.Wrapf(err, "could not stat %s", path)
	}

	if info.IsDir() {
		return servefs.Missing(), nil
	}

	body, err := io.ReadAll(file)
	if err != nil {
		return servefs.Content{}, errors.Wrapf(err, "could not read %s", path)
	}

	return servefs.Found(body, servefs.ContentType(filepath.Base(path))), nil
}

// We expect a "not found" error when there is no such file.  ENOTDIR
// means some parent component is a regular file, which amounts to the same.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

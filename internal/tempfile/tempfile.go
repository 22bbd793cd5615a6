// Package tempfile creates temporary files and uses them to replace files
// atomically.
package tempfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const allRWX = 0o777

type request struct {
	filename      string
	dir           string
	perm          fs.FileMode
	keepExtension bool
	existingDir   bool
}

type Opts func(*request)

// WithName sets the filename of the temporary file.
func WithName(filename string) Opts {
	return func(tf *request) {
		tf.filename = filename
	}
}

// WithDir sets the directory to contain the temporary file. If dir is
// absolute, it will be used as-is, otherwise it will be taken relative to the
// system temporary directory ([os.TempDir]).
func WithDir(dir string) Opts {
	return func(tf *request) {
		tf.dir = dir
	}
}

// WithPerms sets the permissions of the temporary file.
func WithPerms(perms fs.FileMode) Opts {
	return func(tf *request) {
		tf.perm = perms
	}
}

// KeepingExtension ensures the extension of the filename is preserved when
// creating the temporary file. It has no effect if `WithName` is not also used.
func KeepingExtension() Opts {
	return func(tf *request) {
		tf.keepExtension = true
	}
}

// InExistingDir makes New fail when the directory is missing, instead of
// creating it.
func InExistingDir() Opts {
	return func(tf *request) {
		tf.existingDir = true
	}
}

// New creates a temporary file with the provided options.
func New(opts ...Opts) (*os.File, error) {
	req := &request{}

	for _, opt := range opts {
		opt(req)
	}

	dir := os.TempDir()
	if req.dir != "" {
		if filepath.IsAbs(req.dir) {
			dir = filepath.Clean(req.dir)
		} else {
			dir = filepath.Join(dir, req.dir)
		}
	}

	if !req.existingDir {
		// umask will make perms more reasonable
		if err := os.MkdirAll(dir, allRWX); err != nil {
			return nil, fmt.Errorf("failed to create temporary directory %q: %w", dir, err)
		}
	}

	pattern := req.filename
	if req.keepExtension {
		extension := filepath.Ext(req.filename)
		pattern = strings.TrimSuffix(req.filename, extension) + "-*" + extension
	}

	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file %q: %w", req.filename, err)
	}

	if req.perm != 0 {
		if err := f.Chmod(req.perm); err != nil {
			return nil, errors.Join(
				fmt.Errorf("failed to chmod temporary file %q: %w", f.Name(), err),
				f.Close(),
				os.Remove(f.Name()),
			)
		}
	}

	return f, nil
}

// WriteFile replaces the file at path with whatever write produces. The
// content is written to a temporary file next to path, which is renamed over
// path only once write and the close both succeed, so readers never see a
// partly written file. On failure path is left untouched. The directory of
// path must already exist.
func WriteFile(path string, perm fs.FileMode, write func(io.Writer) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", path, err)
	}

	f, err := New(
		WithDir(filepath.Dir(abs)),
		WithName("."+filepath.Base(abs)),
		KeepingExtension(),
		WithPerms(perm),
		InExistingDir(),
	)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		return errors.Join(err, f.Close(), os.Remove(f.Name()))
	}

	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("closing %q: %w", f.Name(), err), os.Remove(f.Name()))
	}

	if err := os.Rename(f.Name(), abs); err != nil {
		return errors.Join(fmt.Errorf("renaming %q to %q: %w", f.Name(), abs, err), os.Remove(f.Name()))
	}

	return nil
}

// Package blobstore keeps uploaded proof images in a flat directory.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"topup/internal/core/ports"
	"topup/internal/pkg/errs"
)

const tempPrefix = ".upload-"

// FilesystemStore implements ports.BlobStore on a single directory. Blob names
// are plain filenames; anything with a path component is rejected.
type FilesystemStore struct {
	dir string
}

// NewFilesystemStore creates dir if needed.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("blob directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &FilesystemStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *FilesystemStore) Dir() string {
	return s.dir
}

// Save writes to a temporary file and renames it over the target, so readers
// never observe a half-written blob.
func (s *FilesystemStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func (s *FilesystemStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewObjectNotFoundErrorWithCause("blob", name, err)
	}
	return data, err
}

func (s *FilesystemStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.path(name)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	default:
		return info.Mode().IsRegular(), nil
	}
}

func (s *FilesystemStore) Stat(ctx context.Context, name string) (ports.BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return ports.BlobInfo{}, err
	}
	path, err := s.path(name)
	if err != nil {
		return ports.BlobInfo{}, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return ports.BlobInfo{}, errs.NewObjectNotFoundError("blob", name)
	}
	if err != nil {
		return ports.BlobInfo{}, err
	}
	return ports.BlobInfo{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Delete removes the blob; a missing blob is not an error.
func (s *FilesystemStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns regular files in the directory, skipping in-flight uploads.
func (s *FilesystemStore) List(ctx context.Context) ([]ports.BlobInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	blobs := make([]ports.BlobInfo, 0, len(entries))
	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, infoErr := entry.Info()
		if errors.Is(infoErr, fs.ErrNotExist) {
			continue
		}
		if infoErr != nil {
			return nil, infoErr
		}
		blobs = append(blobs, ports.BlobInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return blobs, nil
}

func (s *FilesystemStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) ||
		strings.HasPrefix(name, tempPrefix) {
		return "", errs.NewValueIsInvalidErrorWithCause("blob name", fmt.Errorf("%q is not a plain filename", name))
	}
	return filepath.Join(s.dir, name), nil
}

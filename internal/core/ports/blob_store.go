package ports

import (
	"context"
	"time"
)

// BlobInfo describes one stored blob.
type BlobInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// BlobStore keeps uploaded proof images in a flat namespace keyed by filename.
type BlobStore interface {
	// Save writes data under name, replacing any existing blob.
	Save(ctx context.Context, name string, data []byte) error

	// Read returns the blob content or errs.ErrObjectNotFound.
	Read(ctx context.Context, name string) ([]byte, error)

	// Exists reports whether a blob with that name is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Stat describes one blob or returns errs.ErrObjectNotFound.
	Stat(ctx context.Context, name string) (BlobInfo, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns every stored blob.
	List(ctx context.Context) ([]BlobInfo, error)
}
